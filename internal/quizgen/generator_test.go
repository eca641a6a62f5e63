package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abiral/quizforge/internal/llm"
	"github.com/abiral/quizforge/internal/quiz"
)

type memoryQuizStore struct {
	nextID int64
	stored []*quiz.Quiz
}

func (m *memoryQuizStore) InsertQuiz(_ context.Context, q *quiz.Quiz) (*quiz.Quiz, error) {
	cp := *q
	m.nextID++
	cp.ID = m.nextID
	var optID int64
	for i := range cp.Questions {
		cp.Questions[i].ID = int64(i + 1)
		for j := range cp.Questions[i].Options {
			optID++
			cp.Questions[i].Options[j].ID = optID
		}
	}
	m.stored = append(m.stored, &cp)
	return &cp, nil
}

func validQuizJSON(topic string) json.RawMessage {
	var questions []string
	for i := 0; i < quiz.QuestionsPerQuiz; i++ {
		questions = append(questions, fmt.Sprintf(`{
			"question": "Question %d?",
			"options": {"A": "first", "B": "second", "C": "third", "D": "fourth"},
			"correct_answer": "B",
			"explanation": "Second is right."
		}`, i+1))
	}
	return json.RawMessage(fmt.Sprintf(`{
		"topic": %q,
		"difficulty_level": "medium",
		"questions": [%s]
	}`, topic, strings.Join(questions, ",")))
}

func TestGenerateQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON("fractions")})
	store := &memoryQuizStore{}
	svc := NewService(mock, store, DefaultConfig())

	q, err := svc.GenerateQuiz(context.Background(), "fractions")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if q.ID == 0 {
		t.Error("expected quiz to carry a store-assigned id")
	}
	if q.Topic != "fractions" {
		t.Errorf("expected topic 'fractions', got %q", q.Topic)
	}
	if len(q.Questions) != quiz.QuestionsPerQuiz {
		t.Fatalf("expected %d questions, got %d", quiz.QuestionsPerQuiz, len(q.Questions))
	}
	for i, question := range q.Questions {
		if question.Order != i {
			t.Errorf("question %d: expected order %d, got %d", i, i, question.Order)
		}
		correct := question.CorrectOption()
		if correct == nil || correct.Letter != "B" {
			t.Errorf("question %d: expected correct option B", i)
		}
		if question.Explanation == "" {
			t.Errorf("question %d: expected explanation", i)
		}
	}
	if len(store.stored) != 1 {
		t.Errorf("expected 1 stored quiz, got %d", len(store.stored))
	}
}

func TestGenerateQuizRejectsInvalidTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, &memoryQuizStore{}, DefaultConfig())

	tests := []string{
		"",
		"   ",
		strings.Repeat("x", quiz.MaxTopicLength+1),
		"adult content",
	}
	for _, topic := range tests {
		_, err := svc.GenerateQuiz(context.Background(), topic)
		var genErr *GenerationError
		if !errors.As(err, &genErr) {
			t.Errorf("topic %q: expected GenerationError, got %v", topic, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no provider calls for invalid topics, got %d", mock.CallCount())
	}
}

func TestGenerateQuizWrongQuestionCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"topic": "primes",
			"difficulty_level": "easy",
			"questions": [{
				"question": "Is 2 prime?",
				"options": {"A": "yes", "B": "no", "C": "maybe", "D": "sometimes"},
				"correct_answer": "A",
				"explanation": "2 is the only even prime."
			}]
		}`),
	})
	store := &memoryQuizStore{}
	svc := NewService(mock, store, DefaultConfig())

	_, err := svc.GenerateQuiz(context.Background(), "primes")
	if err == nil {
		t.Fatal("expected error for wrong question count")
	}
	if len(store.stored) != 0 {
		t.Error("expected nothing stored on validation failure")
	}
}

func TestGenerateQuizProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	svc := NewService(mock, &memoryQuizStore{}, DefaultConfig())

	_, err := svc.GenerateQuiz(context.Background(), "history")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	var rateErr *llm.ErrRateLimit
	if !errors.As(err, &rateErr) {
		t.Errorf("expected wrapped rate limit error, got %v", err)
	}
}

func TestGenerateQuizSendsSchema(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON("space")})
	svc := NewService(mock, &memoryQuizStore{}, DefaultConfig())

	if _, err := svc.GenerateQuiz(context.Background(), "space"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	if mock.Calls[0].Schema != QuizSchema {
		t.Error("expected request to carry the quiz schema")
	}
	if mock.Calls[0].System == "" {
		t.Error("expected a system prompt")
	}
}
