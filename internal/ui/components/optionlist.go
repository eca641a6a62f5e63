package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abiral/quizforge/internal/quiz"
	"github.com/abiral/quizforge/internal/ui/theme"
)

// OptionList shows the answer choices for one question. The highlight moves
// with the cursor, and the chosen option keeps a persistent check marker so
// the answer stays visible when the user navigates away and back.
type OptionList struct {
	Options []quiz.Option

	// Highlighted is the cursor position.
	Highlighted int

	// ChosenID is the id of the selected option, or 0 when unanswered.
	ChosenID int64
}

// NewOptionList creates an option list for a question, restoring the cursor
// onto a previously chosen option if there is one.
func NewOptionList(options []quiz.Option, chosenID int64) OptionList {
	highlighted := 0
	for i, opt := range options {
		if opt.ID == chosenID {
			highlighted = i
			break
		}
	}
	return OptionList{
		Options:     options,
		Highlighted: highlighted,
		ChosenID:    chosenID,
	}
}

// Update handles cursor movement and selection.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Highlighted > 0 {
			o.Highlighted--
		}
	case "down", "j":
		if o.Highlighted < len(o.Options)-1 {
			o.Highlighted++
		}
	case "a", "b", "c", "d":
		letter := strings.ToUpper(kmsg.String())
		for i, opt := range o.Options {
			if opt.Letter == letter {
				o.Highlighted = i
				break
			}
		}
	}

	return o, nil
}

// Choose marks the highlighted option as the answer. Re-choosing simply
// replaces the previous selection.
func (o *OptionList) Choose() (optionID int64, ok bool) {
	if o.Highlighted < 0 || o.Highlighted >= len(o.Options) {
		return 0, false
	}
	o.ChosenID = o.Options[o.Highlighted].ID
	return o.ChosenID, true
}

// View renders the options with cursor and selection markers.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		cursor := "  "
		if i == o.Highlighted {
			cursor = "▸ "
		}
		check := " "
		if opt.ID == o.ChosenID && o.ChosenID != 0 {
			check = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", cursor, check, opt.Letter, opt.Text)

		switch {
		case i == o.Highlighted:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case opt.ID == o.ChosenID && o.ChosenID != 0:
			s += theme.Answered.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
