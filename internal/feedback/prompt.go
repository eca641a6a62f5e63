package feedback

import (
	"fmt"
	"strings"

	"github.com/abiral/quizforge/internal/quiz"
)

const feedbackSystemPrompt = `You are an instructor. For each question below, explain in 2-3 short sentences why the user-selected answer is incorrect and why the correct answer is right. Use plain language, no hedging, and avoid repeating the full question text.`

func buildFeedbackUserMessage(topic string, misses []quiz.ReviewItem) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\nQuestions:\n", topic))
	for _, item := range misses {
		b.WriteString(fmt.Sprintf("- QID %d: Q='%s' | you='%s. %s' | correct='%s. %s'\n",
			item.QuestionID, item.QuestionText,
			item.UserLabel, item.UserText,
			item.CorrectLabel, item.CorrectText))
	}

	return b.String()
}
