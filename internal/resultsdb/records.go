package resultsdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quizform/internal/forms"
	"quizform/internal/practice"
)

// Attempt is one finished practice session.
type Attempt struct {
	ID         string        `json:"id"`
	SessionID  string        `json:"session_id"`
	Source     string        `json:"source,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    time.Time     `json:"ended_at"`
	Reason     string        `json:"reason"`
	Score      int           `json:"score"`
	Total      int           `json:"total"`
	Unanswered int           `json:"unanswered"`
	Budget     time.Duration `json:"budget_ns"`
	Answers    []string      `json:"answers"`
}

// AttemptFromResult converts a practice result into an Attempt row.
func AttemptFromResult(sessionID, source string, budget time.Duration, result practice.Result) Attempt {
	return Attempt{
		SessionID:  sessionID,
		Source:     source,
		StartedAt:  result.StartedAt,
		EndedAt:    result.EndedAt,
		Reason:     string(result.Reason),
		Score:      result.Score,
		Total:      result.Total,
		Unanswered: result.Unanswered,
		Budget:     budget,
		Answers:    result.Answers,
	}
}

// RecordAttempt inserts an attempt and returns its id. A missing id is
// generated.
func (s *Store) RecordAttempt(ctx context.Context, attempt Attempt) (string, error) {
	if s == nil || s.db == nil {
		return "", errors.New("resultsdb: store is closed")
	}
	if attempt.SessionID == "" {
		return "", errors.New("resultsdb: attempt session id is required")
	}
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	answers, err := encodeAnswers(attempt.Answers)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO attempts
		(attempt_id, session_id, source, started_at, ended_at, reason, score, total, unanswered, budget_seconds, answers_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID,
		attempt.SessionID,
		nullString(attempt.Source),
		attempt.StartedAt.UTC(),
		attempt.EndedAt.UTC(),
		attempt.Reason,
		attempt.Score,
		attempt.Total,
		attempt.Unanswered,
		int(attempt.Budget/time.Second),
		answers,
	)
	if err != nil {
		return "", fmt.Errorf("resultsdb: insert attempt: %w", err)
	}
	return attempt.ID, nil
}

// RecordResponses upserts collected rows for a form in one transaction and
// returns the number of rows written.
func (s *Store) RecordResponses(ctx context.Context, formID string, table forms.Table, total int, collectedAt time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("resultsdb: store is closed")
	}
	if formID == "" {
		return 0, errors.New("resultsdb: form id is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("resultsdb: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	written := 0
	for i, row := range table.Rows {
		responseID := row.ResponseID
		if responseID == "" {
			responseID = fmt.Sprintf("row-%d", i+1)
		}
		answers, err := encodeAnswers(row.Answers)
		if err != nil {
			return 0, err
		}
		var submitted any
		if !row.SubmittedAt.IsZero() {
			submitted = row.SubmittedAt.UTC()
		}
		_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO form_responses
			(form_id, response_id, email, submitted_at, score, total, unanswered, answers_json, collected_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			formID,
			responseID,
			nullString(row.Email),
			submitted,
			row.Score,
			total,
			row.Unanswered,
			answers,
			collectedAt.UTC(),
		)
		if err != nil {
			return 0, fmt.Errorf("resultsdb: upsert response %s: %w", responseID, err)
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("resultsdb: commit: %w", err)
	}
	return written, nil
}

func encodeAnswers(answers []string) (string, error) {
	if answers == nil {
		answers = []string{}
	}
	data, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("resultsdb: encode answers: %w", err)
	}
	return string(data), nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
