package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abiral/quizforge/internal/quiz"
)

// MaxSavedQuizzes caps the saved-quiz registry at the most recent entries.
const MaxSavedQuizzes = 200

// SaveSummary records a quiz in the saved registry. Idempotent by quiz id:
// re-saving refreshes the saved_at timestamp instead of duplicating.
// The registry is trimmed to the MaxSavedQuizzes most recently saved.
func (s *Store) SaveSummary(ctx context.Context, sum quiz.Summary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_quizzes (quiz_id, topic, created_at, saved_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (quiz_id) DO UPDATE SET saved_at = excluded.saved_at`,
		sum.ID, sum.Topic, sum.CreatedAt.Unix(), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("save summary: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM saved_quizzes WHERE quiz_id NOT IN (
			SELECT quiz_id FROM saved_quizzes ORDER BY saved_at DESC LIMIT ?
		)`, MaxSavedQuizzes)
	if err != nil {
		return fmt.Errorf("trim registry: %w", err)
	}
	return nil
}

// ListSummaries returns the saved registry, most recently saved first.
func (s *Store) ListSummaries(ctx context.Context) ([]quiz.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT quiz_id, topic, created_at FROM saved_quizzes ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var out []quiz.Summary
	for rows.Next() {
		var sum quiz.Summary
		var createdAt int64
		if err := rows.Scan(&sum.ID, &sum.Topic, &createdAt); err != nil {
			return nil, err
		}
		sum.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// RemoveSummary deletes a registry entry. Removing an absent id is a no-op.
func (s *Store) RemoveSummary(ctx context.Context, quizID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_quizzes WHERE quiz_id = ?`, quizID)
	if err != nil {
		return fmt.Errorf("remove summary: %w", err)
	}
	return nil
}
