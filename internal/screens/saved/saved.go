package saved

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiral/quizforge/internal/feedback"
	"github.com/abiral/quizforge/internal/flow"
	"github.com/abiral/quizforge/internal/grader"
	"github.com/abiral/quizforge/internal/quiz"
	"github.com/abiral/quizforge/internal/router"
	"github.com/abiral/quizforge/internal/screen"
	"github.com/abiral/quizforge/internal/screens/taking"
	"github.com/abiral/quizforge/internal/store"
	"github.com/abiral/quizforge/internal/ui/layout"
	"github.com/abiral/quizforge/internal/ui/theme"
)

// listLoadedMsg carries the saved registry entries with their attempt
// history.
type listLoadedMsg struct {
	Summaries []quiz.Summary
	Attempts  map[int64][]store.Attempt
	Err       error
}

// quizLoadedMsg carries a quiz fetched for retaking.
type quizLoadedMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

// removedMsg confirms a registry deletion.
type removedMsg struct {
	Err error
}

// SavedScreen lists previously saved quizzes for retaking.
type SavedScreen struct {
	session  *flow.Session
	grader   grader.Grader
	feedback *feedback.Cache
	store    *store.Store

	summaries []quiz.Summary
	attempts  map[int64][]store.Attempt
	selected  int
	loading   bool
	errMsg    string
}

var _ screen.Screen = (*SavedScreen)(nil)
var _ screen.KeyHintProvider = (*SavedScreen)(nil)

// New creates the saved quiz list screen.
func New(session *flow.Session, grd grader.Grader, fb *feedback.Cache, st *store.Store) *SavedScreen {
	return &SavedScreen{
		session:  session,
		grader:   grd,
		feedback: fb,
		store:    st,
		loading:  true,
	}
}

func (s *SavedScreen) Init() tea.Cmd {
	return s.loadList()
}

func (s *SavedScreen) Title() string {
	return "Saved Quizzes"
}

func (s *SavedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Retake"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SavedScreen) loadList() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		ctx := context.Background()
		summaries, err := st.ListSummaries(ctx)
		if err != nil {
			return listLoadedMsg{Err: err}
		}

		attempts := make(map[int64][]store.Attempt, len(summaries))
		for _, sum := range summaries {
			history, err := st.ListAttempts(ctx, sum.ID)
			if err != nil {
				continue
			}
			attempts[sum.ID] = history
		}
		return listLoadedMsg{Summaries: summaries, Attempts: attempts}
	}
}

func (s *SavedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.summaries = msg.Summaries
		s.attempts = msg.Attempts
		if s.selected >= len(s.summaries) {
			s.selected = 0
		}
		return s, nil

	case quizLoadedMsg:
		return s.handleQuizLoaded(msg)

	case removedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.loadList()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SavedScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		return s, nil

	case "down", "j":
		if s.selected < len(s.summaries)-1 {
			s.selected++
		}
		return s, nil

	case "enter":
		if s.selected >= len(s.summaries) {
			return s, nil
		}
		st := s.store
		id := s.summaries[s.selected].ID
		return s, func() tea.Msg {
			q, err := st.FetchQuiz(context.Background(), id)
			return quizLoadedMsg{Quiz: q, Err: err}
		}

	case "d", "D":
		if s.selected >= len(s.summaries) {
			return s, nil
		}
		st := s.store
		id := s.summaries[s.selected].ID
		return s, func() tea.Msg {
			return removedMsg{Err: st.RemoveSummary(context.Background(), id)}
		}
	}
	return s, nil
}

func (s *SavedScreen) handleQuizLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if err := s.session.LoadQuiz(msg.Quiz); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	next := taking.New(s.session, s.grader, s.feedback, s.store)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SavedScreen) View(width, height int) string {
	if s.loading {
		return theme.Hint.Width(width).Align(lipgloss.Center).Render("\n\n  Loading saved quizzes...")
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  " + s.errMsg)
	}
	if len(s.summaries) == 0 {
		return theme.Subtitle.Width(width).Render("\n\n  No saved quizzes yet.\n\n  Finish a quiz and press S on the results screen to keep it.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, sum := range s.summaries {
		line := fmt.Sprintf("%s  %s", sum.CreatedAt.Format("2006-01-02"), sum.Topic)
		if i == s.selected {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + line))
		}
		b.WriteString("\n")
		if i == s.selected {
			if hint := s.attemptLine(sum.ID); hint != "" {
				b.WriteString(theme.Hint.Render("      " + hint))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// attemptLine summarizes the attempt history for one quiz.
func (s *SavedScreen) attemptLine(quizID int64) string {
	history := s.attempts[quizID]
	if len(history) == 0 {
		return ""
	}
	best := history[0]
	for _, a := range history {
		if a.Score > best.Score {
			best = a
		}
	}
	latest := history[0]
	return fmt.Sprintf("%d attempt(s), best %d/%d, last %d/%d",
		len(history), best.Score, best.Total, latest.Score, latest.Total)
}
