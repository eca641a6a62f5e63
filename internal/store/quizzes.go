package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abiral/quizforge/internal/quiz"
)

// InsertQuiz persists a newly generated quiz. Ids on the quiz, its
// questions, and options are assigned by the database; the returned quiz
// carries them. The input quiz is not modified.
func (s *Store) InsertQuiz(ctx context.Context, q *quiz.Quiz) (*quiz.Quiz, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO quizzes (topic, created_at) VALUES (?, ?)`,
		q.Topic, createdAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("insert quiz: %w", err)
	}
	quizID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	stored := &quiz.Quiz{
		ID:        quizID,
		Topic:     q.Topic,
		CreatedAt: createdAt,
		Questions: make([]quiz.Question, 0, len(q.Questions)),
	}

	for _, question := range q.Questions {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO questions (quiz_id, question_text, question_order, explanation)
			 VALUES (?, ?, ?, ?)`,
			quizID, question.Text, question.Order, question.Explanation)
		if err != nil {
			return nil, fmt.Errorf("insert question: %w", err)
		}
		questionID, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}

		storedQ := quiz.Question{
			ID:          questionID,
			Text:        question.Text,
			Order:       question.Order,
			Explanation: question.Explanation,
			Options:     make([]quiz.Option, 0, len(question.Options)),
		}

		for _, opt := range question.Options {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO question_options (question_id, option_text, option_letter, is_correct)
				 VALUES (?, ?, ?, ?)`,
				questionID, opt.Text, opt.Letter, opt.Correct)
			if err != nil {
				return nil, fmt.Errorf("insert option: %w", err)
			}
			optionID, err := res.LastInsertId()
			if err != nil {
				return nil, err
			}
			storedQ.Options = append(storedQ.Options, quiz.Option{
				ID:      optionID,
				Text:    opt.Text,
				Letter:  opt.Letter,
				Correct: opt.Correct,
			})
		}

		stored.Questions = append(stored.Questions, storedQ)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return stored, nil
}

// FetchQuiz loads a quiz with its questions and options. Questions come
// back in canonical order. Returns a NotFoundError for unknown ids.
func (s *Store) FetchQuiz(ctx context.Context, id int64) (*quiz.Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, topic, created_at FROM quizzes WHERE id = ?`, id)

	q := &quiz.Quiz{}
	var createdAt int64
	if err := row.Scan(&q.ID, &q.Topic, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Kind: "quiz", ID: id}
		}
		return nil, fmt.Errorf("fetch quiz: %w", err)
	}
	q.CreatedAt = time.Unix(createdAt, 0)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question_text, question_order, explanation
		 FROM questions WHERE quiz_id = ? ORDER BY question_order`, id)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var question quiz.Question
		if err := rows.Scan(&question.ID, &question.Text, &question.Order, &question.Explanation); err != nil {
			return nil, err
		}
		q.Questions = append(q.Questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range q.Questions {
		opts, err := s.fetchOptions(ctx, q.Questions[i].ID)
		if err != nil {
			return nil, err
		}
		q.Questions[i].Options = opts
	}

	return q, nil
}

func (s *Store) fetchOptions(ctx context.Context, questionID int64) ([]quiz.Option, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, option_text, option_letter, is_correct
		 FROM question_options WHERE question_id = ? ORDER BY option_letter`, questionID)
	if err != nil {
		return nil, fmt.Errorf("fetch options: %w", err)
	}
	defer rows.Close()

	var opts []quiz.Option
	for rows.Next() {
		var opt quiz.Option
		if err := rows.Scan(&opt.ID, &opt.Text, &opt.Letter, &opt.Correct); err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, rows.Err()
}
