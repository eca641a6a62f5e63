package taking

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abiral/quizforge/internal/flow"
	"github.com/abiral/quizforge/internal/ui/components"
	"github.com/abiral/quizforge/internal/ui/theme"
)

func (t *TakingScreen) View(width, height int) string {
	if t.confirmQuit {
		return t.renderQuitConfirm(width)
	}

	switch t.session.Phase() {
	case flow.PhaseSubmitting:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Grading your answers...")

	case flow.PhaseError:
		errMsg := "something went wrong"
		if t.session.Err() != nil {
			errMsg = t.session.Err().Error()
		}
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Submission failed: %s\n\n  Your answers are safe. Press Enter to retry.", errMsg))
	}

	nav := t.session.Navigator()
	ledger := t.session.Ledger()
	if nav == nil || nav.Current() == nil {
		return ""
	}
	q := nav.Current()

	var b strings.Builder

	// Progress strip.
	markers := components.QuestionMarkers(nav.Count(), nav.Index(), func(i int) bool {
		questions := t.session.Quiz().Questions
		_, answered := ledger.Get(questions[i].ID)
		return answered
	})
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, markers))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Question text.
	question := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Q%d. %s", nav.Index()+1, q.Text))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")

	// Options.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, t.options.View()))
	b.WriteString("\n")

	// Guidance line.
	var hint string
	switch {
	case nav.ReadyToSubmit():
		hint = "All answered. Press S to submit."
	case !nav.CanNext() && !nav.AtLast():
		hint = "Answer this question to move on."
	default:
		hint = fmt.Sprintf("Question %d of %d", nav.Index()+1, nav.Count())
	}
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(hint))

	return b.String()
}

func (t *TakingScreen) renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Abandon this quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your answers will be lost."))
	b.WriteString("\n\n")

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		t.quitButtons[0].View(), "   ", t.quitButtons[1].View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))

	return b.String()
}
