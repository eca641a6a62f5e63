package grader

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/abiral/quizforge/internal/quiz"
)

// Grader scores a set of answer bindings against the stored quiz.
type Grader interface {
	Grade(ctx context.Context, quizID int64, answers []quiz.AnswerBinding) (*quiz.GradedResult, error)
}

// SubmissionError reports a failed grading pass for a quiz.
type SubmissionError struct {
	QuizID int64
	Err    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("grade quiz %d: %v", e.QuizID, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// QuizFetcher loads a quiz with its questions and options.
type QuizFetcher interface {
	FetchQuiz(ctx context.Context, id int64) (*quiz.Quiz, error)
}

// AttemptRecorder persists graded scores.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, quizID int64, score, total int) error
}

// Service grades submissions against quizzes in the store.
type Service struct {
	quizzes  QuizFetcher
	attempts AttemptRecorder
}

// NewService creates a grading service. attempts may be nil, in which case
// scores are not recorded.
func NewService(quizzes QuizFetcher, attempts AttemptRecorder) *Service {
	return &Service{quizzes: quizzes, attempts: attempts}
}

// Grade loads the quiz, scores each binding against the correct option, and
// returns the result with a per-question review. Bindings that reference an
// unknown question or option are skipped. The attempt is recorded
// best-effort: a storage failure does not discard the result.
func (s *Service) Grade(ctx context.Context, quizID int64, answers []quiz.AnswerBinding) (*quiz.GradedResult, error) {
	q, err := s.quizzes.FetchQuiz(ctx, quizID)
	if err != nil {
		return nil, &SubmissionError{QuizID: quizID, Err: err}
	}

	result := &quiz.GradedResult{
		QuizID:         q.ID,
		Topic:          q.Topic,
		TotalQuestions: len(q.Questions),
	}

	for _, ans := range answers {
		question := q.QuestionByID(ans.QuestionID)
		if question == nil {
			continue
		}
		selected := question.OptionByID(ans.OptionID)
		if selected == nil {
			continue
		}

		if selected.Correct {
			result.Score++
		}

		item := quiz.ReviewItem{
			QuestionID:   question.ID,
			QuestionText: question.Text,
			UserLabel:    selected.Letter,
			UserText:     selected.Text,
			CorrectLabel: "N/A",
			CorrectText:  "N/A",
			Correct:      selected.Correct,
		}
		if correct := question.CorrectOption(); correct != nil {
			item.CorrectLabel = correct.Letter
			item.CorrectText = correct.Text
		}
		result.Review = append(result.Review, item)
	}

	if result.TotalQuestions > 0 {
		pct := float64(result.Score) / float64(result.TotalQuestions) * 100
		result.Percentage = math.Round(pct*100) / 100
	}

	if s.attempts != nil {
		if err := s.attempts.RecordAttempt(ctx, q.ID, result.Score, result.TotalQuestions); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record attempt: %v\n", err)
		}
	}

	return result, nil
}
