package feedback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abiral/quizforge/internal/llm"
	"github.com/abiral/quizforge/internal/quiz"
)

// Explainer produces natural-language explanations for missed questions.
type Explainer interface {
	Explain(ctx context.Context, topic string, misses []quiz.ReviewItem) ([]quiz.FeedbackItem, error)
}

// Config holds explanation tuning parameters.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible explanation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}

// LLMExplainer asks the model for explanations.
type LLMExplainer struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMExplainer creates an explainer backed by an LLM provider.
func NewLLMExplainer(provider llm.Provider, cfg Config) *LLMExplainer {
	return &LLMExplainer{provider: provider, cfg: cfg}
}

type feedbackOutput struct {
	Items []quiz.FeedbackItem `json:"items"`
}

// Explain requests one explanation per missed question.
func (e *LLMExplainer) Explain(ctx context.Context, topic string, misses []quiz.ReviewItem) ([]quiz.FeedbackItem, error) {
	if len(misses) == 0 {
		return nil, nil
	}

	ctx = llm.WithPurpose(ctx, "feedback")

	req := llm.Request{
		System: feedbackSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildFeedbackUserMessage(topic, misses)},
		},
		Schema:      FeedbackSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("feedback generation: %w", err)
	}

	var out feedbackOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse feedback response: %w", err)
	}
	return out.Items, nil
}

// FallbackItems builds deterministic explanations from the review itself.
// Used when the model is unavailable so the results screen always has
// something to show.
func FallbackItems(misses []quiz.ReviewItem) []quiz.FeedbackItem {
	items := make([]quiz.FeedbackItem, 0, len(misses))
	for _, m := range misses {
		items = append(items, quiz.FeedbackItem{
			QuestionID: m.QuestionID,
			Explanation: fmt.Sprintf("You chose %s. %s. The correct answer is %s. %s.",
				m.UserLabel, m.UserText, m.CorrectLabel, m.CorrectText),
		})
	}
	return items
}
