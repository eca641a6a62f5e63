package store

import (
	"context"
	"fmt"
	"time"
)

// LLMRequest is one recorded call to a language model provider.
type LLMRequest struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestLog receives provider call records for later inspection.
type RequestLog interface {
	AppendLLMRequest(ctx context.Context, data LLMRequest) error
}

// LLMEvent is a stored provider call record.
type LLMEvent struct {
	ID int64
	At time.Time
	LLMRequest
}

// AppendLLMRequest implements RequestLog.
func (s *Store) AppendLLMRequest(ctx context.Context, data LLMRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_events (ts, purpose, model, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), data.Purpose, data.Model,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

// RecentLLMEvents returns up to limit provider call records, newest first.
func (s *Store) RecentLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, purpose, model, input_tokens, output_tokens, latency_ms, success, error_message
		 FROM llm_events ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		var ev LLMEvent
		var ts int64
		if err := rows.Scan(&ev.ID, &ts, &ev.Purpose, &ev.Model,
			&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs,
			&ev.Success, &ev.ErrorMessage); err != nil {
			return nil, err
		}
		ev.At = time.Unix(ts, 0)
		out = append(out, ev)
	}
	return out, rows.Err()
}
