package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetFeedback returns the cached feedback payload for key, or ok=false
// when the key has never been written.
func (s *Store) GetFeedback(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload_json FROM feedback_cache WHERE cache_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get feedback: %w", err)
	}
	return payload, true, nil
}

// PutFeedback stores a feedback payload under key. Entries are write-once:
// an existing key keeps its original payload.
func (s *Store) PutFeedback(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback_cache (cache_key, payload_json, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (cache_key) DO NOTHING`,
		key, payload, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put feedback: %w", err)
	}
	return nil
}
