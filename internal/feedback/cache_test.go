package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/abiral/quizforge/internal/quiz"
)

type memoryKV struct {
	entries map[string][]byte
	getErr  error
	putErr  error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{entries: make(map[string][]byte)}
}

func (m *memoryKV) GetFeedback(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	payload, ok := m.entries[key]
	return payload, ok, nil
}

func (m *memoryKV) PutFeedback(_ context.Context, key string, payload []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	if _, ok := m.entries[key]; ok {
		return nil
	}
	m.entries[key] = payload
	return nil
}

type countingExplainer struct {
	calls int
	items []quiz.FeedbackItem
	err   error
}

func (c *countingExplainer) Explain(_ context.Context, _ string, _ []quiz.ReviewItem) ([]quiz.FeedbackItem, error) {
	c.calls++
	return c.items, c.err
}

func resultWithMisses(quizID int64, missed ...int64) *quiz.GradedResult {
	missedSet := make(map[int64]bool)
	total := int64(5)
	for _, id := range missed {
		missedSet[id] = true
		if id > total {
			total = id
		}
	}
	r := &quiz.GradedResult{QuizID: quizID, Topic: "oceans", TotalQuestions: int(total)}
	for id := int64(1); id <= total; id++ {
		item := quiz.ReviewItem{
			QuestionID:   id,
			QuestionText: "question",
			UserLabel:    "A", UserText: "user pick",
			CorrectLabel: "B", CorrectText: "right answer",
			Correct: !missedSet[id],
		}
		if item.Correct {
			r.Score++
		}
		r.Review = append(r.Review, item)
	}
	return r
}

func TestFeedbackAllCorrectSkipsEverything(t *testing.T) {
	kv := newMemoryKV()
	exp := &countingExplainer{}
	cache := NewCache(kv, exp)

	res, err := cache.Feedback(context.Background(), resultWithMisses(1))
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if len(res.Items) != 0 {
		t.Errorf("expected no items for a perfect result, got %d", len(res.Items))
	}
	if exp.calls != 0 {
		t.Errorf("expected zero explainer calls, got %d", exp.calls)
	}
	if len(kv.entries) != 0 {
		t.Errorf("expected nothing cached, got %d entries", len(kv.entries))
	}
}

func TestFeedbackCachesByMissSet(t *testing.T) {
	kv := newMemoryKV()
	exp := &countingExplainer{items: []quiz.FeedbackItem{
		{QuestionID: 3, Explanation: "because"},
		{QuestionID: 7, Explanation: "also because"},
	}}
	cache := NewCache(kv, exp)

	first, err := cache.Feedback(context.Background(), resultWithMisses(9, 3, 7))
	if err != nil {
		t.Fatalf("first feedback: %v", err)
	}
	if first.FromCache {
		t.Error("expected first lookup to miss the cache")
	}
	if !first.Persisted {
		t.Error("expected first result to be persisted")
	}
	if _, ok := kv.entries["9_3,7"]; !ok {
		t.Fatalf("expected cache entry under key 9_3,7, have %v", kv.entries)
	}

	second, err := cache.Feedback(context.Background(), resultWithMisses(9, 7, 3))
	if err != nil {
		t.Fatalf("second feedback: %v", err)
	}
	if !second.FromCache {
		t.Error("expected second lookup to hit the cache")
	}
	if exp.calls != 1 {
		t.Errorf("expected exactly 1 explainer call, got %d", exp.calls)
	}
	if len(second.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(second.Items))
	}
	if second.Items[0].QuestionID != 3 || second.Items[0].Explanation != "because" {
		t.Errorf("unexpected first cached item: %+v", second.Items[0])
	}
}

func TestFeedbackDistinctMissSetsGetDistinctEntries(t *testing.T) {
	kv := newMemoryKV()
	exp := &countingExplainer{items: []quiz.FeedbackItem{{QuestionID: 1, Explanation: "x"}}}
	cache := NewCache(kv, exp)

	if _, err := cache.Feedback(context.Background(), resultWithMisses(9, 1)); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if _, err := cache.Feedback(context.Background(), resultWithMisses(9, 1, 2)); err != nil {
		t.Fatalf("feedback: %v", err)
	}

	if exp.calls != 2 {
		t.Errorf("expected 2 explainer calls for distinct miss sets, got %d", exp.calls)
	}
	if len(kv.entries) != 2 {
		t.Errorf("expected 2 cache entries, got %d", len(kv.entries))
	}
}

func TestFeedbackFallbackOnExplainerFailure(t *testing.T) {
	kv := newMemoryKV()
	exp := &countingExplainer{err: errors.New("provider down")}
	cache := NewCache(kv, exp)

	res, err := cache.Feedback(context.Background(), resultWithMisses(4, 2))
	if err != nil {
		t.Fatalf("expected fallback, got error %v", err)
	}
	if !res.Fallback {
		t.Error("expected fallback result")
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 fallback item, got %d", len(res.Items))
	}
	want := "You chose A. user pick. The correct answer is B. right answer."
	if res.Items[0].Explanation != want {
		t.Errorf("expected %q, got %q", want, res.Items[0].Explanation)
	}
	// Fallback items are not cached so a later retry can get real feedback.
	if len(kv.entries) != 0 {
		t.Errorf("expected fallback not cached, got %d entries", len(kv.entries))
	}
}

func TestFeedbackSurvivesPutFailure(t *testing.T) {
	kv := newMemoryKV()
	kv.putErr = errors.New("disk full")
	exp := &countingExplainer{items: []quiz.FeedbackItem{{QuestionID: 2, Explanation: "y"}}}
	cache := NewCache(kv, exp)

	res, err := cache.Feedback(context.Background(), resultWithMisses(4, 2))
	if err != nil {
		t.Fatalf("expected result despite put failure, got %v", err)
	}
	if res.Persisted {
		t.Error("expected Persisted=false when the store rejects the write")
	}
	if len(res.Items) != 1 {
		t.Errorf("expected explainer items, got %d", len(res.Items))
	}
}

func TestFeedbackGetFailure(t *testing.T) {
	kv := newMemoryKV()
	kv.getErr = errors.New("corrupt db")
	cache := NewCache(kv, &countingExplainer{})

	_, err := cache.Feedback(context.Background(), resultWithMisses(4, 2))
	var fbErr *FeedbackError
	if !errors.As(err, &fbErr) {
		t.Fatalf("expected FeedbackError, got %v", err)
	}
}
