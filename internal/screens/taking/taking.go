package taking

import (
	"context"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abiral/quizforge/internal/feedback"
	"github.com/abiral/quizforge/internal/flow"
	"github.com/abiral/quizforge/internal/grader"
	"github.com/abiral/quizforge/internal/quiz"
	"github.com/abiral/quizforge/internal/router"
	"github.com/abiral/quizforge/internal/screen"
	"github.com/abiral/quizforge/internal/screens/results"
	"github.com/abiral/quizforge/internal/store"
	"github.com/abiral/quizforge/internal/ui/components"
	"github.com/abiral/quizforge/internal/ui/layout"
)

// gradedMsg carries the outcome of a grading request.
type gradedMsg struct {
	Token  string
	Result *quiz.GradedResult
	Err    error
}

// TakingScreen walks the user through the questions of an active attempt.
type TakingScreen struct {
	session  *flow.Session
	grader   grader.Grader
	feedback *feedback.Cache
	store    *store.Store

	options     components.OptionList
	confirmQuit bool
	quitButtons []components.Button
	quitFocus   int
}

var _ screen.Screen = (*TakingScreen)(nil)
var _ screen.KeyHintProvider = (*TakingScreen)(nil)
var _ screen.StatusProvider = (*TakingScreen)(nil)

// New creates the taking screen for the session's active attempt.
func New(session *flow.Session, grd grader.Grader, fb *feedback.Cache, st *store.Store) *TakingScreen {
	t := &TakingScreen{
		session:  session,
		grader:   grd,
		feedback: fb,
		store:    st,
	}
	t.syncOptions()
	return t
}

func (t *TakingScreen) Init() tea.Cmd {
	return nil
}

func (t *TakingScreen) Title() string {
	if q := t.session.Quiz(); q != nil {
		return q.Topic
	}
	return "Quiz"
}

// Status shows answer progress in the header.
func (t *TakingScreen) Status() string {
	nav := t.session.Navigator()
	ledger := t.session.Ledger()
	if nav == nil || ledger == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d answered", ledger.AnsweredCount(), nav.Count())
}

func (t *TakingScreen) KeyHints() []layout.KeyHint {
	if t.confirmQuit {
		return []layout.KeyHint{
			{Key: "←→", Description: "Select"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if t.session.Phase() == flow.PhaseError {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry"},
			{Key: "Esc", Description: "Back to quiz"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
		{Key: "←→", Description: "Question"},
	}
	nav := t.session.Navigator()
	if nav != nil && nav.ReadyToSubmit() {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Submit"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Abandon"})
	return hints
}

// syncOptions rebuilds the option list for the current question, restoring
// any answer already in the ledger.
func (t *TakingScreen) syncOptions() {
	nav := t.session.Navigator()
	ledger := t.session.Ledger()
	if nav == nil || ledger == nil {
		return
	}
	q := nav.Current()
	if q == nil {
		return
	}
	chosen, _ := ledger.Get(q.ID)
	t.options = components.NewOptionList(q.Options, chosen)
}

func (t *TakingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradedMsg:
		return t.handleGraded(msg)
	case tea.KeyMsg:
		return t.handleKey(msg)
	}
	return t, nil
}

func (t *TakingScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if t.confirmQuit {
		switch key {
		case "y", "Y":
			return t, t.abandon()
		case "n", "N", "esc":
			return t, t.keepGoing()
		case "left", "right", "tab", "h", "l":
			t.setQuitFocus(1 - t.quitFocus)
			return t, nil
		}
		var cmd tea.Cmd
		t.quitButtons[t.quitFocus], cmd = t.quitButtons[t.quitFocus].Update(msg)
		return t, cmd
	}

	switch t.session.Phase() {
	case flow.PhaseSubmitting:
		// Grading in flight, ignore input.
		return t, nil

	case flow.PhaseError:
		switch key {
		case "enter":
			return t.submit()
		case "esc":
			t.session.Recover()
		}
		return t, nil
	}

	nav := t.session.Navigator()
	if nav == nil {
		return t, nil
	}

	switch key {
	case "esc":
		t.openQuitConfirm()
		return t, nil

	case "enter":
		if id, ok := t.options.Choose(); ok {
			if q := nav.Current(); q != nil {
				t.session.Ledger().Select(q.ID, id)
			}
		}
		return t, nil

	case "right", "l", "n":
		if nav.Next() {
			t.syncOptions()
		}
		return t, nil

	case "left", "h", "p":
		if nav.Previous() {
			t.syncOptions()
		}
		return t, nil

	case "s", "S":
		if nav.ReadyToSubmit() {
			return t.submit()
		}
		return t, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		if nav.JumpTo(n - 1) {
			t.syncOptions()
		}
		return t, nil
	}

	var cmd tea.Cmd
	t.options, cmd = t.options.Update(msg)
	return t, cmd
}

// openQuitConfirm builds the abandon dialog with "keep going" focused.
func (t *TakingScreen) openQuitConfirm() {
	t.confirmQuit = true
	t.quitButtons = []components.Button{
		components.NewButton("Yes, abandon", false, t.abandon),
		components.NewButton("No, keep going", true, t.keepGoing),
	}
	t.quitFocus = 1
}

func (t *TakingScreen) setQuitFocus(i int) {
	t.quitFocus = i
	for j := range t.quitButtons {
		t.quitButtons[j].Active = j == i
	}
}

func (t *TakingScreen) abandon() tea.Cmd {
	t.session.Abandon()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (t *TakingScreen) keepGoing() tea.Cmd {
	t.confirmQuit = false
	return nil
}

func (t *TakingScreen) submit() (screen.Screen, tea.Cmd) {
	token, answers, err := t.session.BeginSubmission()
	if err != nil {
		return t, nil
	}

	grd := t.grader
	quizID := t.session.Quiz().ID
	return t, func() tea.Msg {
		result, gradeErr := grd.Grade(context.Background(), quizID, answers)
		return gradedMsg{Token: token, Result: result, Err: gradeErr}
	}
}

func (t *TakingScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	if !t.session.CompleteSubmission(msg.Token, msg.Result, msg.Err) {
		return t, nil
	}

	if t.session.Phase() != flow.PhaseResults {
		return t, nil
	}

	next := results.New(t.session, t.feedback, t.store)
	return t, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
