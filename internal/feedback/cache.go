package feedback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abiral/quizforge/internal/quiz"
)

// KV is the persistence layer behind the cache. Get misses return ok=false,
// and Put is write-once for a given key.
type KV interface {
	GetFeedback(ctx context.Context, key string) ([]byte, bool, error)
	PutFeedback(ctx context.Context, key string, payload []byte) error
}

// FeedbackError reports a failed explanation pass for a quiz.
type FeedbackError struct {
	QuizID int64
	Err    error
}

func (e *FeedbackError) Error() string {
	return fmt.Sprintf("feedback for quiz %d: %v", e.QuizID, e.Err)
}

func (e *FeedbackError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a feedback lookup.
type Result struct {
	Items []quiz.FeedbackItem

	// FromCache is true when the items came from a previous lookup.
	FromCache bool

	// Persisted is true when the items are durably cached. False means the
	// store rejected the write and a retry of the same miss set will call
	// the explainer again.
	Persisted bool

	// Fallback is true when the explainer failed and the items are the
	// deterministic substitutes built from the review.
	Fallback bool
}

// Cache memoizes explanations per quiz and miss set. Identical graded
// outcomes never reach the explainer twice while the cached entry survives.
type Cache struct {
	kv        KV
	explainer Explainer
}

// NewCache creates a feedback cache over the given store and explainer.
// A nil explainer serves fallback items for every cache miss.
func NewCache(kv KV, explainer Explainer) *Cache {
	return &Cache{kv: kv, explainer: explainer}
}

// Feedback returns explanations for the questions missed in result. A fully
// correct result returns an empty Result without touching the store or the
// explainer. Explainer failures degrade to deterministic fallback items,
// which are not cached.
func (c *Cache) Feedback(ctx context.Context, result *quiz.GradedResult) (*Result, error) {
	misses := incorrectItems(result)
	if len(misses) == 0 {
		return &Result{Persisted: true}, nil
	}

	key := CacheKey(result.QuizID, result.IncorrectQuestionIDs())

	payload, ok, err := c.kv.GetFeedback(ctx, key)
	if err != nil {
		return nil, &FeedbackError{QuizID: result.QuizID, Err: err}
	}
	if ok {
		var items []quiz.FeedbackItem
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, &FeedbackError{QuizID: result.QuizID, Err: fmt.Errorf("decode cached feedback: %w", err)}
		}
		return &Result{Items: items, FromCache: true, Persisted: true}, nil
	}

	if c.explainer == nil {
		return &Result{Items: FallbackItems(misses), Fallback: true}, nil
	}

	items, err := c.explainer.Explain(ctx, result.Topic, misses)
	if err != nil || len(items) == 0 {
		return &Result{Items: FallbackItems(misses), Fallback: true}, nil
	}

	res := &Result{Items: items}
	if payload, err := json.Marshal(items); err == nil {
		res.Persisted = c.kv.PutFeedback(ctx, key, payload) == nil
	}
	return res, nil
}

func incorrectItems(result *quiz.GradedResult) []quiz.ReviewItem {
	var misses []quiz.ReviewItem
	for _, item := range result.Review {
		if !item.Correct {
			misses = append(misses, item)
		}
	}
	return misses
}
