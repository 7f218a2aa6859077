// Package forms publishes question sets as online forms and scores the
// responses they collect.
package forms

import (
	"context"
	"time"

	"quizform/internal/question"
)

// Service is the subset of the remote form API used here.
type Service interface {
	// CreateForm creates an empty form with title.
	CreateForm(ctx context.Context, title string) (Form, error)
	// CreateItems adds every item in a single batch call.
	CreateItems(ctx context.Context, formID string, items []Item) ([]CreatedItem, error)
	// FormQuestions lists the form's question ids in display order.
	FormQuestions(ctx context.Context, formID string) ([]string, error)
	// ListResponses returns every submitted response.
	ListResponses(ctx context.Context, formID string) ([]Response, error)
}

// Form identifies a created remote form.
type Form struct {
	ID           string
	ResponderURL string
}

// Item is one question entry to create on a form.
type Item struct {
	Index    int
	Title    string
	Kind     question.Kind
	Options  []string
	Required bool
}

// CreatedItem is the service's acknowledgement for one created item.
type CreatedItem struct {
	ItemID     string
	QuestionID string
}

// Response is one respondent's submission, keyed by remote question id.
type Response struct {
	ID          string
	Email       string
	SubmittedAt time.Time
	Answers     map[string][]string
}
