package store

import (
	"context"
	"fmt"
	"time"
)

// Attempt is one graded run of a quiz.
type Attempt struct {
	ID          int64
	QuizID      int64
	Score       int
	Total       int
	AttemptedAt time.Time
}

// RecordAttempt stores a graded result against its quiz.
func (s *Store) RecordAttempt(ctx context.Context, quizID int64, score, total int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_attempts (quiz_id, score, total_questions, attempted_at)
		 VALUES (?, ?, ?, ?)`,
		quizID, score, total, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// ListAttempts returns all attempts for a quiz, newest first.
func (s *Store) ListAttempts(ctx context.Context, quizID int64) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, score, total_questions, attempted_at
		 FROM quiz_attempts WHERE quiz_id = ? ORDER BY attempted_at DESC, id DESC`, quizID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var at int64
		if err := rows.Scan(&a.ID, &a.QuizID, &a.Score, &a.Total, &at); err != nil {
			return nil, err
		}
		a.AttemptedAt = time.Unix(at, 0)
		out = append(out, a)
	}
	return out, rows.Err()
}
