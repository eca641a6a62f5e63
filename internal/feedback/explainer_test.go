package feedback

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abiral/quizforge/internal/llm"
	"github.com/abiral/quizforge/internal/quiz"
)

func sampleMisses() []quiz.ReviewItem {
	return []quiz.ReviewItem{
		{
			QuestionID: 3, QuestionText: "Largest ocean?",
			UserLabel: "A", UserText: "Atlantic",
			CorrectLabel: "C", CorrectText: "Pacific",
		},
	}
}

func TestExplain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"items": [{"question_id": 3, "explanation": "The Pacific is by far the largest."}]}`),
	})
	exp := NewLLMExplainer(mock, DefaultConfig())

	items, err := exp.Explain(context.Background(), "oceans", sampleMisses())
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].QuestionID != 3 {
		t.Errorf("expected question id 3, got %d", items[0].QuestionID)
	}
	if items[0].Explanation == "" {
		t.Error("expected non-empty explanation")
	}
}

func TestExplainPromptCarriesReviewDetail(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"items": []}`),
	})
	exp := NewLLMExplainer(mock, DefaultConfig())

	if _, err := exp.Explain(context.Background(), "oceans", sampleMisses()); err != nil {
		t.Fatalf("explain: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}

	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"QID 3", "Atlantic", "Pacific", "Topic: oceans"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected prompt to contain %q, got:\n%s", want, msg)
		}
	}
	if mock.Calls[0].Schema != FeedbackSchema {
		t.Error("expected request to carry the feedback schema")
	}
}

func TestExplainNoMissesNoCall(t *testing.T) {
	mock := llm.NewMockProvider()
	exp := NewLLMExplainer(mock, DefaultConfig())

	items, err := exp.Explain(context.Background(), "oceans", nil)
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if items != nil {
		t.Errorf("expected nil items, got %v", items)
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected zero provider calls, got %d", mock.CallCount())
	}
}
