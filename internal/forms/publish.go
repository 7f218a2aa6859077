package forms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizform/internal/question"
	"quizform/internal/quizerr"
)

// Published is the handle kept for a form created from a question set.
type Published struct {
	FormID      string    `json:"form_id" yaml:"form_id"`
	URL         string    `json:"url" yaml:"url"`
	Title       string    `json:"title" yaml:"title"`
	QuestionIDs []string  `json:"question_ids" yaml:"question_ids"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// PartialPublishError reports a form that exists remotely but did not get
// all of its items. The form is left in place.
type PartialPublishError struct {
	Form Form
	Err  error
}

// Error names the orphaned form so the user can find it.
func (err *PartialPublishError) Error() string {
	return fmt.Sprintf("form %s was created but its questions were not added: %v", err.Form.ID, err.Err)
}

// Unwrap classifies the failure as an upstream error.
func (err *PartialPublishError) Unwrap() []error {
	return []error{quizerr.ErrUpstream, err.Err}
}

// ViewURL returns the public responder link for a form id.
func ViewURL(formID string) string {
	return "https://docs.google.com/forms/d/" + formID + "/viewform"
}

// ItemsForSet maps every question to a required form item at its own index.
func ItemsForSet(set question.Set) []Item {
	items := make([]Item, 0, set.Len())
	for i, q := range set.Questions {
		item := Item{
			Index:    i,
			Title:    q.DisplayTitle(i),
			Kind:     q.Kind,
			Required: true,
		}
		if q.IsChoice() {
			item.Options = append([]string(nil), q.Options...)
		}
		items = append(items, item)
	}
	return items
}

// Publish creates one form titled title and fills it with one item per
// question in set order, using exactly one create and one batch call.
func Publish(ctx context.Context, svc Service, title string, set question.Set) (Published, error) {
	const op = "publish form"
	title = strings.TrimSpace(title)
	if title == "" {
		return Published{}, quizerr.Inputf(op, "form title is required")
	}
	if set.Len() == 0 {
		return Published{}, quizerr.Inputf(op, "question set is empty")
	}

	form, err := svc.CreateForm(ctx, title)
	if err != nil {
		return Published{}, quizerr.Upstream(op, fmt.Errorf("create form: %w", err))
	}
	items := ItemsForSet(set)
	created, err := svc.CreateItems(ctx, form.ID, items)
	if err != nil {
		return Published{}, &PartialPublishError{Form: form, Err: err}
	}
	if len(created) != len(items) {
		return Published{}, &PartialPublishError{
			Form: form,
			Err:  fmt.Errorf("service acknowledged %d of %d items", len(created), len(items)),
		}
	}

	questionIDs := make([]string, len(created))
	for i, item := range created {
		questionIDs[i] = item.QuestionID
	}
	url := form.ResponderURL
	if url == "" {
		url = ViewURL(form.ID)
	}
	return Published{
		FormID:      form.ID,
		URL:         url,
		Title:       title,
		QuestionIDs: questionIDs,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
