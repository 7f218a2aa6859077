package resultsdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// FormScores aggregates the collected responses of one form.
type FormScores struct {
	FormID    string  `json:"form_id"`
	Responses int     `json:"responses"`
	Total     int     `json:"total"`
	AvgScore  float64 `json:"avg_score"`
	BestScore int     `json:"best_score"`
}

// Summary is the JSON document served by the report server.
type Summary struct {
	Attempts       int          `json:"attempts"`
	BestScore      int          `json:"best_score"`
	RecentAttempts []Attempt    `json:"recent_attempts"`
	Forms          []FormScores `json:"forms"`
}

// Summarize reads aggregate results and the most recent attempts.
func (s *Store) Summarize(ctx context.Context, recent int) (Summary, error) {
	if s == nil || s.db == nil {
		return Summary{}, errors.New("resultsdb: store is closed")
	}
	if recent <= 0 {
		recent = 20
	}
	var summary Summary
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(MAX(score), 0) FROM attempts").
		Scan(&summary.Attempts, &summary.BestScore); err != nil {
		return Summary{}, fmt.Errorf("resultsdb: count attempts: %w", err)
	}
	attempts, err := s.recentAttempts(ctx, recent)
	if err != nil {
		return Summary{}, err
	}
	summary.RecentAttempts = attempts
	formScores, err := s.formScores(ctx)
	if err != nil {
		return Summary{}, err
	}
	summary.Forms = formScores
	return summary, nil
}

func (s *Store) recentAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT attempt_id, session_id, source, started_at, ended_at, reason,
		score, total, unanswered, budget_seconds, answers_json
		FROM attempts ORDER BY ended_at DESC, attempt_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("resultsdb: query attempts: %w", err)
	}
	defer rows.Close()

	attempts := []Attempt{}
	for rows.Next() {
		var (
			attempt       Attempt
			source        sql.NullString
			budgetSeconds int
			answersJSON   string
			startedAt     time.Time
			endedAt       time.Time
		)
		if err := rows.Scan(&attempt.ID, &attempt.SessionID, &source, &startedAt, &endedAt, &attempt.Reason,
			&attempt.Score, &attempt.Total, &attempt.Unanswered, &budgetSeconds, &answersJSON); err != nil {
			return nil, fmt.Errorf("resultsdb: scan attempt: %w", err)
		}
		attempt.Source = source.String
		attempt.StartedAt = startedAt.UTC()
		attempt.EndedAt = endedAt.UTC()
		attempt.Budget = time.Duration(budgetSeconds) * time.Second
		if err := json.Unmarshal([]byte(answersJSON), &attempt.Answers); err != nil {
			return nil, fmt.Errorf("resultsdb: decode answers for %s: %w", attempt.ID, err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resultsdb: iterate attempts: %w", err)
	}
	return attempts, nil
}

func (s *Store) formScores(ctx context.Context) ([]FormScores, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT form_id, responses, total, avg_score, best_score
		FROM v_form_scores ORDER BY form_id`)
	if err != nil {
		return nil, fmt.Errorf("resultsdb: query form scores: %w", err)
	}
	defer rows.Close()

	out := []FormScores{}
	for rows.Next() {
		var scores FormScores
		if err := rows.Scan(&scores.FormID, &scores.Responses, &scores.Total, &scores.AvgScore, &scores.BestScore); err != nil {
			return nil, fmt.Errorf("resultsdb: scan form scores: %w", err)
		}
		out = append(out, scores)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resultsdb: iterate form scores: %w", err)
	}
	return out, nil
}
