package results

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abiral/quizforge/internal/quiz"
	"github.com/abiral/quizforge/internal/ui/theme"
)

func (r *ResultsScreen) View(width, height int) string {
	result := r.session.Result()
	if result == nil {
		return ""
	}

	var lines []string

	// Score banner.
	scoreStyle := theme.Correct
	if result.Score < result.TotalQuestions {
		scoreStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	banner := scoreStyle.Render(fmt.Sprintf("You scored %d / %d  (%.2f%%)",
		result.Score, result.TotalQuestions, result.Percentage))
	lines = append(lines, "", lipgloss.PlaceHorizontal(width, lipgloss.Center, banner), "")

	if r.saved && r.saveErr == nil {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Success).Render("Saved to your quiz list.")), "")
	}
	if r.saveErr != nil {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Save failed: "+r.saveErr.Error())), "")
	}

	if fb := r.session.Feedback(); fb != nil && fb.Fallback {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Couldn't fetch explanations. Showing quick recaps instead.")), "")
	}

	// Per-question review.
	explanations := r.explanationsByQuestion()
	bodyWidth := min(width-8, 76)
	for i, item := range result.Review {
		lines = append(lines, r.renderReviewItem(i, item, explanations[item.QuestionID], bodyWidth, width)...)
	}

	if r.fbPending {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Fetching explanations...")))
	}

	// Scroll window.
	if r.scroll > len(lines)-1 {
		r.scroll = len(lines) - 1
	}
	visible := lines[r.scroll:]
	if len(visible) > height {
		visible = visible[:height]
	}
	return strings.Join(visible, "\n")
}

func (r *ResultsScreen) renderReviewItem(i int, item quiz.ReviewItem, explanation string, bodyWidth, width int) []string {
	var b strings.Builder

	mark := theme.Correct.Render("✓")
	if !item.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	b.WriteString(fmt.Sprintf("%s Q%d. %s\n", mark, i+1,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(item.QuestionText)))

	if item.Correct {
		b.WriteString(theme.Correct.Render(fmt.Sprintf("   Your answer: %s. %s", item.UserLabel, item.UserText)))
	} else {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("   Your answer: %s. %s", item.UserLabel, item.UserText)))
		b.WriteString("\n")
		b.WriteString(theme.Correct.Render(fmt.Sprintf("   Correct:     %s. %s", item.CorrectLabel, item.CorrectText)))
		if explanation != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(bodyWidth).
				Foreground(theme.TextDim).
				PaddingLeft(3).
				Render(explanation))
		}
	}

	block := lipgloss.NewStyle().Width(bodyWidth).Render(b.String())
	out := strings.Split(lipgloss.PlaceHorizontal(width, lipgloss.Center, block), "\n")
	return append(out, "")
}

// explanationsByQuestion maps feedback items onto their question ids.
func (r *ResultsScreen) explanationsByQuestion() map[int64]string {
	out := make(map[int64]string)
	fb := r.session.Feedback()
	if fb == nil {
		return out
	}
	for _, item := range fb.Items {
		out[item.QuestionID] = item.Explanation
	}
	return out
}
