package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiral/quizforge/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with QuizForge styling.
type TextInput struct {
	Model    textinput.Model
	errMsg   string
	hasError bool
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Any keystroke clears a previous validation error.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.hasError = false
		t.errMsg = ""
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input with any validation error underneath.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.hasError {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(t.errMsg)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetError shows a validation message under the input.
func (t *TextInput) SetError(msg string) {
	t.hasError = true
	t.errMsg = msg
}
