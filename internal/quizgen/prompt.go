package quizgen

import (
	"fmt"
	"strings"

	"github.com/abiral/quizforge/internal/quiz"
)

const quizSystemPrompt = `You are a quiz author. You write factual, educational multiple-choice quizzes on any appropriate topic a learner asks for.`

func buildQuizUserMessage(topic string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate a multiple-choice quiz about %q.\n", topic))

	b.WriteString(fmt.Sprintf(`
Requirements:
- Create exactly %d questions
- Each question has exactly 4 options (A, B, C, D)
- Only one option is correct
- Questions should be factual and educational
- Include a brief explanation for each correct answer
- Vary the difficulty from basic to intermediate
- Use current, accurate information`, quiz.QuestionsPerQuiz))

	return b.String()
}
