package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiral/quizforge/internal/feedback"
	"github.com/abiral/quizforge/internal/flow"
	"github.com/abiral/quizforge/internal/grader"
	"github.com/abiral/quizforge/internal/quizgen"
	"github.com/abiral/quizforge/internal/router"
	"github.com/abiral/quizforge/internal/screen"
	"github.com/abiral/quizforge/internal/screens/saved"
	"github.com/abiral/quizforge/internal/screens/topic"
	"github.com/abiral/quizforge/internal/store"
	"github.com/abiral/quizforge/internal/ui/components"
	"github.com/abiral/quizforge/internal/ui/theme"
)

const banner = `
  ██████  ██    ██ ██ ███████ ███████  ██████  ██████   ██████  ███████
 ██    ██ ██    ██ ██    ███  ██      ██    ██ ██   ██ ██       ██
 ██    ██ ██    ██ ██   ███   █████   ██    ██ ██████  ██   ███ █████
 ██ ▄▄ ██ ██    ██ ██  ███    ██      ██    ██ ██   ██ ██    ██ ██
  ██████   ██████  ██ ███████ ██       ██████  ██   ██  ██████  ███████
     ▀▀`

// HomeScreen is the entry screen with the main menu.
type HomeScreen struct {
	menu       components.Menu
	llmMissing bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. A nil generator disables quiz creation but
// leaves saved quizzes available, since retaking needs no model.
func New(session *flow.Session, generator quizgen.Generator, grd grader.Grader, fb *feedback.Cache, st *store.Store) *HomeScreen {
	items := []components.MenuItem{
		{
			Label:    "START A QUIZ",
			Disabled: generator == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: topic.New(session, generator, grd, fb, st)}
				}
			},
		},
		{
			Label: "SAVED QUIZZES",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: saved.New(session, grd, fb, st)}
				}
			},
		},
		{
			Label: "QUIT",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		llmMissing: generator == nil,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Render(banner))

	sections = append(sections, theme.Subtitle.
		Width(width).
		Render("Quizzes on anything, written while you wait."))

	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	if h.llmMissing {
		sections = append(sections, theme.Hint.
			Width(width).
			Align(lipgloss.Center).
			Render("No LLM provider configured. Set QUIZFORGE_GEMINI_API_KEY (or another provider key) to create quizzes."))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
