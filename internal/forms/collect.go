package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"quizform/internal/question"
	"quizform/internal/quizerr"
)

// ScoreColumn is the trailing column of a response table.
const ScoreColumn = "Score"

// Row is one respondent's answers and score.
type Row struct {
	ResponseID  string
	Email       string
	SubmittedAt time.Time
	Answers     []string
	Score       int
	Unanswered  int
}

// Table is the scored export of a form's responses.
type Table struct {
	Header []string
	Rows   []Row
}

// Records returns the header and rows as CSV-ready string slices.
func (t Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, append([]string(nil), t.Header...))
	for _, row := range t.Rows {
		record := append(append([]string(nil), row.Answers...), strconv.Itoa(row.Score))
		records = append(records, record)
	}
	return records
}

// Incomplete returns the rows that left at least one question unanswered.
func (t Table) Incomplete() []Row {
	return lo.Filter(t.Rows, func(row Row, _ int) bool { return row.Unanswered > 0 })
}

// Header builds the Q1..QN plus Score header for n questions.
func Header(n int) []string {
	header := lo.Times(n, func(i int) string { return "Q" + strconv.Itoa(i+1) })
	return append(header, ScoreColumn)
}

// Collect fetches all responses for form and grades them against set.
// Answers are placed by remote question id. Unanswered questions leave an
// empty cell and score zero. No responses yields ErrEmptyResult.
func Collect(ctx context.Context, svc Service, form Published, set question.Set) (Table, error) {
	const op = "collect responses"
	questionIDs, err := resolveQuestionIDs(ctx, svc, form, set)
	if err != nil {
		return Table{}, err
	}
	responses, err := svc.ListResponses(ctx, form.FormID)
	if err != nil {
		return Table{}, quizerr.Upstream(op, fmt.Errorf("list responses: %w", err))
	}
	if len(responses) == 0 {
		return Table{}, quizerr.EmptyResult(op)
	}

	table := Table{Header: Header(set.Len()), Rows: make([]Row, 0, len(responses))}
	for _, resp := range responses {
		answers := make([]string, len(questionIDs))
		for i, id := range questionIDs {
			answers[i] = strings.Join(resp.Answers[id], ", ")
		}
		grade := question.GradeAnswers(set, answers)
		table.Rows = append(table.Rows, Row{
			ResponseID:  resp.ID,
			Email:       resp.Email,
			SubmittedAt: resp.SubmittedAt,
			Answers:     answers,
			Score:       grade.Score,
			Unanswered:  grade.Unanswered,
		})
	}
	return table, nil
}

// resolveQuestionIDs prefers the ids recorded at publish time and falls back
// to reading the form's current item order.
func resolveQuestionIDs(ctx context.Context, svc Service, form Published, set question.Set) ([]string, error) {
	const op = "collect responses"
	if strings.TrimSpace(form.FormID) == "" {
		return nil, quizerr.Inputf(op, "no form has been published for this question set")
	}
	if len(form.QuestionIDs) == set.Len() && !lo.Contains(form.QuestionIDs, "") {
		return form.QuestionIDs, nil
	}
	ids, err := svc.FormQuestions(ctx, form.FormID)
	if err != nil {
		return nil, quizerr.Upstream(op, fmt.Errorf("read form: %w", err))
	}
	if len(ids) != set.Len() {
		return nil, quizerr.Inputf(op, "form %s has %d questions but the question set has %d", form.FormID, len(ids), set.Len())
	}
	return ids, nil
}
