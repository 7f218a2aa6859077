package forms

import (
	"context"
	"fmt"
)

// fakeService records calls and serves canned data.
type fakeService struct {
	form          Form
	createErr     error
	itemsErr      error
	dropAcks      int
	listErr       error
	formQuestions []string
	responses     []Response

	createCalls int
	batchCalls  int
	getCalls    int
	items       []Item
}

func (f *fakeService) CreateForm(_ context.Context, title string) (Form, error) {
	f.createCalls++
	if f.createErr != nil {
		return Form{}, f.createErr
	}
	return f.form, nil
}

func (f *fakeService) CreateItems(_ context.Context, formID string, items []Item) ([]CreatedItem, error) {
	f.batchCalls++
	f.items = items
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	created := make([]CreatedItem, 0, len(items))
	for i := range items[:len(items)-f.dropAcks] {
		created = append(created, CreatedItem{ItemID: fmt.Sprintf("item-%d", i), QuestionID: fmt.Sprintf("q-%d", i)})
	}
	return created, nil
}

func (f *fakeService) FormQuestions(context.Context, string) ([]string, error) {
	f.getCalls++
	return f.formQuestions, nil
}

func (f *fakeService) ListResponses(context.Context, string) ([]Response, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.responses, nil
}
