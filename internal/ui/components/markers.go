package components

import (
	"fmt"
	"strings"

	"github.com/abiral/quizforge/internal/ui/theme"
)

// QuestionMarkers renders the per-question progress strip shown while
// taking a quiz: one numbered marker per question, filled when answered,
// with the current question highlighted.
//
//	[1●] [2●] (3○) [4○] [5○]
func QuestionMarkers(total, current int, answered func(index int) bool) string {
	parts := make([]string, 0, total)
	for i := 0; i < total; i++ {
		dot := "○"
		if answered(i) {
			dot = "●"
		}

		if i == current {
			parts = append(parts, theme.MarkerCurrent.Render(fmt.Sprintf("(%d%s)", i+1, dot)))
			continue
		}
		if answered(i) {
			parts = append(parts, theme.MarkerAnswered.Render(fmt.Sprintf("[%d%s]", i+1, dot)))
		} else {
			parts = append(parts, theme.MarkerBlank.Render(fmt.Sprintf("[%d%s]", i+1, dot)))
		}
	}
	return strings.Join(parts, " ")
}
