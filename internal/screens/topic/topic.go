package topic

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiral/quizforge/internal/feedback"
	"github.com/abiral/quizforge/internal/flow"
	"github.com/abiral/quizforge/internal/grader"
	"github.com/abiral/quizforge/internal/quiz"
	"github.com/abiral/quizforge/internal/quizgen"
	"github.com/abiral/quizforge/internal/router"
	"github.com/abiral/quizforge/internal/screen"
	"github.com/abiral/quizforge/internal/screens/taking"
	"github.com/abiral/quizforge/internal/store"
	"github.com/abiral/quizforge/internal/ui/components"
	"github.com/abiral/quizforge/internal/ui/layout"
	"github.com/abiral/quizforge/internal/ui/theme"
)

// quizReadyMsg carries the outcome of a generation request.
type quizReadyMsg struct {
	Token string
	Quiz  *quiz.Quiz
	Err   error
}

// spinnerTickMsg animates the generating indicator.
type spinnerTickMsg time.Time

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TopicScreen asks the user what the quiz should be about and runs the
// generation request.
type TopicScreen struct {
	session   *flow.Session
	generator quizgen.Generator
	grader    grader.Grader
	feedback  *feedback.Cache
	store     *store.Store

	input        components.TextInput
	spinnerFrame int
}

var _ screen.Screen = (*TopicScreen)(nil)
var _ screen.KeyHintProvider = (*TopicScreen)(nil)

// New creates a topic entry screen.
func New(session *flow.Session, generator quizgen.Generator, grd grader.Grader, fb *feedback.Cache, st *store.Store) *TopicScreen {
	return &TopicScreen{
		session:   session,
		generator: generator,
		grader:    grd,
		feedback:  fb,
		store:     st,
		input:     components.NewTextInput("e.g. The Roman Empire", quiz.MaxTopicLength),
	}
}

func (t *TopicScreen) Init() tea.Cmd {
	return t.input.Init()
}

func (t *TopicScreen) Title() string {
	return "New Quiz"
}

func (t *TopicScreen) KeyHints() []layout.KeyHint {
	if t.session.Phase() == flow.PhaseGenerating {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return t.handleQuizReady(msg)

	case spinnerTickMsg:
		if t.session.Phase() != flow.PhaseGenerating {
			return t, nil
		}
		t.spinnerFrame = (t.spinnerFrame + 1) % len(spinnerFrames)
		return t, spinnerTick()

	case tea.KeyMsg:
		return t.handleKey(msg)
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TopicScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	generating := t.session.Phase() == flow.PhaseGenerating

	switch msg.String() {
	case "esc":
		t.session.Abandon()
		return t, func() tea.Msg { return router.PopScreenMsg{} }

	case "enter":
		if generating {
			return t, nil
		}
		return t.startGeneration()
	}

	if generating {
		return t, nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TopicScreen) startGeneration() (screen.Screen, tea.Cmd) {
	topic := strings.TrimSpace(t.input.Value())
	if err := quiz.ValidateTopic(topic); err != nil {
		t.input.SetError(err.Error())
		return t, nil
	}

	token, err := t.session.BeginGeneration()
	if err != nil {
		return t, nil
	}

	gen := t.generator
	return t, tea.Batch(
		func() tea.Msg {
			q, genErr := gen.GenerateQuiz(context.Background(), topic)
			return quizReadyMsg{Token: token, Quiz: q, Err: genErr}
		},
		spinnerTick(),
	)
}

func (t *TopicScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if !t.session.CompleteGeneration(msg.Token, msg.Quiz, msg.Err) {
		// A completion from an abandoned attempt.
		return t, nil
	}

	if t.session.Phase() != flow.PhaseTaking {
		return t, nil
	}

	next := taking.New(t.session, t.grader, t.feedback, t.store)
	return t, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (t *TopicScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Width(width).Render("What should the quiz be about?"))
	b.WriteString("\n\n")

	if t.session.Phase() == flow.PhaseGenerating {
		spinner := spinnerFrames[t.spinnerFrame]
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(spinner + " Generating your quiz..."))
		return b.String()
	}

	inputLine := lipgloss.PlaceHorizontal(width, lipgloss.Center, t.input.View())
	b.WriteString(inputLine)
	b.WriteString("\n\n")

	if t.session.Phase() == flow.PhaseError && t.session.Err() != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Generation failed: " + t.session.Err().Error()))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press Enter to try again."))
	} else {
		b.WriteString(theme.Subtitle.Width(width).Render("Five questions, four choices each."))
	}

	return b.String()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
