package forms

import (
	"context"
	"fmt"
	"strings"
	"time"

	formsapi "google.golang.org/api/forms/v1"
	"google.golang.org/api/option"

	"quizform/internal/question"
)

// CredentialsEnv names the service-account key file when config omits it.
const CredentialsEnv = "GOOGLE_APPLICATION_CREDENTIALS"

// Scopes are the permissions requested for the service account.
var Scopes = []string{
	"https://www.googleapis.com/auth/forms.body",
	"https://www.googleapis.com/auth/forms.responses.readonly",
	"https://www.googleapis.com/auth/drive.file",
}

// GoogleService implements Service on the Google Forms API.
type GoogleService struct {
	api *formsapi.Service
}

// NewGoogleService authenticates with a service-account key file. Extra
// options are appended after the credentials.
func NewGoogleService(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*GoogleService, error) {
	base := []option.ClientOption{option.WithScopes(Scopes...)}
	if path := strings.TrimSpace(credentialsFile); path != "" {
		base = append(base, option.WithCredentialsFile(path))
	}
	api, err := formsapi.NewService(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create forms client: %w", err)
	}
	return &GoogleService{api: api}, nil
}

// CreateForm creates an empty form.
func (s *GoogleService) CreateForm(ctx context.Context, title string) (Form, error) {
	created, err := s.api.Forms.Create(&formsapi.Form{Info: &formsapi.Info{Title: title}}).Context(ctx).Do()
	if err != nil {
		return Form{}, err
	}
	return Form{ID: created.FormId, ResponderURL: created.ResponderUri}, nil
}

// CreateItems sends every item in one batchUpdate with explicit locations.
func (s *GoogleService) CreateItems(ctx context.Context, formID string, items []Item) ([]CreatedItem, error) {
	requests := make([]*formsapi.Request, 0, len(items))
	for _, item := range items {
		requests = append(requests, &formsapi.Request{
			CreateItem: &formsapi.CreateItemRequest{
				Item: googleItem(item),
				Location: &formsapi.Location{
					Index:           int64(item.Index),
					ForceSendFields: []string{"Index"},
				},
			},
		})
	}
	resp, err := s.api.Forms.BatchUpdate(formID, &formsapi.BatchUpdateFormRequest{Requests: requests}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	created := make([]CreatedItem, 0, len(resp.Replies))
	for _, reply := range resp.Replies {
		if reply == nil || reply.CreateItem == nil {
			continue
		}
		item := CreatedItem{ItemID: reply.CreateItem.ItemId}
		if len(reply.CreateItem.QuestionId) > 0 {
			item.QuestionID = reply.CreateItem.QuestionId[0]
		}
		created = append(created, item)
	}
	return created, nil
}

func googleItem(item Item) *formsapi.Item {
	q := &formsapi.Question{Required: item.Required}
	if item.Kind == question.KindChoice {
		options := make([]*formsapi.Option, 0, len(item.Options))
		for _, value := range item.Options {
			options = append(options, &formsapi.Option{Value: value})
		}
		q.ChoiceQuestion = &formsapi.ChoiceQuestion{Type: "RADIO", Options: options, Shuffle: false}
	} else {
		q.TextQuestion = &formsapi.TextQuestion{Paragraph: false}
	}
	return &formsapi.Item{
		Title:        item.Title,
		QuestionItem: &formsapi.QuestionItem{Question: q},
	}
}

// FormQuestions reads the form and returns question ids in item order.
func (s *GoogleService) FormQuestions(ctx context.Context, formID string) ([]string, error) {
	form, err := s.api.Forms.Get(formID).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(form.Items))
	for _, item := range form.Items {
		if item == nil || item.QuestionItem == nil || item.QuestionItem.Question == nil {
			continue
		}
		ids = append(ids, item.QuestionItem.Question.QuestionId)
	}
	return ids, nil
}

// ListResponses follows page tokens until every response has been read.
func (s *GoogleService) ListResponses(ctx context.Context, formID string) ([]Response, error) {
	var (
		out   []Response
		token string
	)
	for {
		call := s.api.Forms.Responses.List(formID).Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}
		page, err := call.Do()
		if err != nil {
			return nil, err
		}
		for _, resp := range page.Responses {
			if resp == nil {
				continue
			}
			out = append(out, convertResponse(resp))
		}
		token = page.NextPageToken
		if token == "" {
			return out, nil
		}
	}
}

func convertResponse(resp *formsapi.FormResponse) Response {
	converted := Response{
		ID:      resp.ResponseId,
		Email:   resp.RespondentEmail,
		Answers: make(map[string][]string, len(resp.Answers)),
	}
	if submitted, err := time.Parse(time.RFC3339Nano, resp.LastSubmittedTime); err == nil {
		converted.SubmittedAt = submitted
	}
	for id, answer := range resp.Answers {
		if answer.TextAnswers == nil {
			continue
		}
		values := make([]string, 0, len(answer.TextAnswers.Answers))
		for _, text := range answer.TextAnswers.Answers {
			if text != nil {
				values = append(values, text.Value)
			}
		}
		if answer.QuestionId != "" {
			id = answer.QuestionId
		}
		converted.Answers[id] = values
	}
	return converted
}
