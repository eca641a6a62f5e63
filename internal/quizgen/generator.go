package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abiral/quizforge/internal/llm"
	"github.com/abiral/quizforge/internal/quiz"
)

// Generator produces a persisted quiz for a topic.
type Generator interface {
	GenerateQuiz(ctx context.Context, topic string) (*quiz.Quiz, error)
}

// GenerationError reports a failed quiz generation with the topic attached.
type GenerationError struct {
	Topic string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate quiz for %q: %v", e.Topic, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// QuizStore persists generated quizzes and assigns their ids.
type QuizStore interface {
	InsertQuiz(ctx context.Context, q *quiz.Quiz) (*quiz.Quiz, error)
}

// Config holds generation tuning parameters.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Service generates quizzes through an LLM provider and stores them.
type Service struct {
	provider llm.Provider
	quizzes  QuizStore
	cfg      Config
}

// NewService creates a quiz generation service.
func NewService(provider llm.Provider, quizzes QuizStore, cfg Config) *Service {
	return &Service{provider: provider, quizzes: quizzes, cfg: cfg}
}

type quizOutput struct {
	Topic           string           `json:"topic"`
	DifficultyLevel string           `json:"difficulty_level"`
	Questions       []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

// GenerateQuiz validates the topic, asks the model for a quiz, checks the
// business rules on the output, and persists the result.
func (s *Service) GenerateQuiz(ctx context.Context, topic string) (*quiz.Quiz, error) {
	if err := quiz.ValidateTopic(topic); err != nil {
		return nil, &GenerationError{Topic: topic, Err: err}
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizUserMessage(topic)},
		},
		Schema:      QuizSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Topic: topic, Err: err}
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &GenerationError{Topic: topic, Err: fmt.Errorf("parse quiz response: %w", err)}
	}

	q, err := buildQuiz(topic, out)
	if err != nil {
		return nil, &GenerationError{Topic: topic, Err: err}
	}

	stored, err := s.quizzes.InsertQuiz(ctx, q)
	if err != nil {
		return nil, &GenerationError{Topic: topic, Err: fmt.Errorf("save quiz: %w", err)}
	}
	return stored, nil
}

// buildQuiz converts model output into the domain type and enforces the
// question count and per-question invariants.
func buildQuiz(topic string, out quizOutput) (*quiz.Quiz, error) {
	if len(out.Questions) != quiz.QuestionsPerQuiz {
		return nil, fmt.Errorf("got %d questions, want %d", len(out.Questions), quiz.QuestionsPerQuiz)
	}

	q := &quiz.Quiz{
		Topic:     topic,
		CreatedAt: time.Now(),
	}
	for i, qd := range out.Questions {
		question := quiz.Question{
			Text:        qd.Question,
			Order:       i,
			Explanation: qd.Explanation,
		}
		for _, letter := range quiz.OptionLetters {
			text, ok := qd.Options[letter]
			if !ok {
				return nil, fmt.Errorf("question %d: missing option %s", i+1, letter)
			}
			question.Options = append(question.Options, quiz.Option{
				Text:    text,
				Letter:  letter,
				Correct: letter == qd.CorrectAnswer,
			})
		}
		q.Questions = append(q.Questions, question)
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}
