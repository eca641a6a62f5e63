package results

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abiral/quizforge/internal/feedback"
	"github.com/abiral/quizforge/internal/flow"
	"github.com/abiral/quizforge/internal/quiz"
	"github.com/abiral/quizforge/internal/router"
	"github.com/abiral/quizforge/internal/screen"
	"github.com/abiral/quizforge/internal/store"
	"github.com/abiral/quizforge/internal/ui/layout"
)

// feedbackReadyMsg carries the outcome of a feedback request.
type feedbackReadyMsg struct {
	Token  string
	Result *feedback.Result
	Err    error
}

// savedMsg confirms the quiz was stored in the saved registry.
type savedMsg struct {
	Err error
}

// ResultsScreen shows the graded outcome with per-question review and
// model-written explanations for the missed questions.
type ResultsScreen struct {
	session  *flow.Session
	feedback *feedback.Cache
	store    *store.Store

	scroll    int
	saved     bool
	saveErr   error
	fbPending bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen for the session's graded attempt.
func New(session *flow.Session, fb *feedback.Cache, st *store.Store) *ResultsScreen {
	return &ResultsScreen{
		session:  session,
		feedback: fb,
		store:    st,
	}
}

// Init kicks off the feedback request for missed questions.
func (r *ResultsScreen) Init() tea.Cmd {
	return r.requestFeedback()
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
	}
	if !r.saved {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Save quiz"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
	return hints
}

func (r *ResultsScreen) requestFeedback() tea.Cmd {
	if r.feedback == nil {
		return nil
	}
	token, graded, err := r.session.BeginFeedback()
	if err != nil {
		return nil
	}

	fb := r.feedback
	r.fbPending = true
	return func() tea.Msg {
		res, fbErr := fb.Feedback(context.Background(), graded)
		return feedbackReadyMsg{Token: token, Result: res, Err: fbErr}
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackReadyMsg:
		r.fbPending = false
		r.session.CompleteFeedback(msg.Token, msg.Result, msg.Err)
		return r, nil

	case savedMsg:
		if msg.Err != nil {
			r.saveErr = msg.Err
			r.saved = false
		}
		return r, nil

	case tea.KeyMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *ResultsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		r.session.Abandon()
		return r, func() tea.Msg { return router.PopScreenMsg{} }

	case "up", "k":
		if r.scroll > 0 {
			r.scroll--
		}
		return r, nil

	case "down", "j":
		r.scroll++
		return r, nil

	case "s", "S":
		return r.save()
	}
	return r, nil
}

func (r *ResultsScreen) save() (screen.Screen, tea.Cmd) {
	if r.saved || r.store == nil {
		return r, nil
	}
	q := r.session.Quiz()
	if q == nil {
		return r, nil
	}

	r.saved = true
	r.saveErr = nil
	st := r.store
	sum := quiz.Summary{ID: q.ID, Topic: q.Topic, CreatedAt: q.CreatedAt}
	return r, func() tea.Msg {
		return savedMsg{Err: st.SaveSummary(context.Background(), sum)}
	}
}
