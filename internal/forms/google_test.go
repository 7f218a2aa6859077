package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	formsapi "google.golang.org/api/forms/v1"
	"google.golang.org/api/option"
)

// formsServer mimics the Forms REST endpoints used by GoogleService.
type formsServer struct {
	mu         sync.Mutex
	batchBody  map[string]any
	pageTokens []string
}

func (s *formsServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/v1/forms"):
		fmt.Fprint(w, `{"formId":"form-123","responderUri":"https://docs.google.com/forms/d/e/xyz/viewform","info":{"title":"Quiz"}}`)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/v1/forms/form-123:batchUpdate"):
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		_ = json.Unmarshal(body, &s.batchBody)
		s.mu.Unlock()
		fmt.Fprint(w, `{"replies":[{"createItem":{"itemId":"i0","questionId":["q0"]}},{"createItem":{"itemId":"i1","questionId":["q1"]}}]}`)
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/v1/forms/form-123/responses"):
		token := r.URL.Query().Get("pageToken")
		s.mu.Lock()
		s.pageTokens = append(s.pageTokens, token)
		s.mu.Unlock()
		if token == "" {
			fmt.Fprint(w, `{"responses":[{"responseId":"r1","lastSubmittedTime":"2024-05-01T10:00:00Z","answers":{"q0":{"questionId":"q0","textAnswers":{"answers":[{"value":"Paris"}]}}}}],"nextPageToken":"p2"}`)
			return
		}
		fmt.Fprint(w, `{"responses":[{"responseId":"r2","answers":{"q1":{"questionId":"q1","textAnswers":{"answers":[{"value":"water"}]}}}}]}`)
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/v1/forms/form-123"):
		fmt.Fprint(w, `{"formId":"form-123","items":[{"itemId":"i0","questionItem":{"question":{"questionId":"q0"}}},{"itemId":"t","textItem":{}},{"itemId":"i1","questionItem":{"question":{"questionId":"q1"}}}]}`)
	default:
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	}
}

func newTestGoogleService(t *testing.T) (*GoogleService, *formsServer) {
	t.Helper()
	fake := &formsServer{}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	svc, err := NewGoogleService(context.Background(), "",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, fake
}

func TestGoogleServicePublishAndCollect(t *testing.T) {
	svc, fake := newTestGoogleService(t)
	set := mixedSet()
	set.Questions = set.Questions[:2]

	published, err := Publish(context.Background(), svc, "Quiz", set)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.FormID != "form-123" || published.URL != "https://docs.google.com/forms/d/e/xyz/viewform" {
		t.Fatalf("unexpected published form: %+v", published)
	}
	if !slices.Equal(published.QuestionIDs, []string{"q0", "q1"}) {
		t.Fatalf("unexpected question ids: %v", published.QuestionIDs)
	}

	requests, _ := fake.batchBody["requests"].([]any)
	if len(requests) != 2 {
		t.Fatalf("expected 2 batch requests, got %v", fake.batchBody)
	}
	first := requests[0].(map[string]any)["createItem"].(map[string]any)
	location := first["location"].(map[string]any)
	if index, ok := location["index"]; !ok || index.(float64) != 0 {
		t.Fatalf("index 0 must be sent explicitly, got %v", location)
	}
	item := first["item"].(map[string]any)
	if item["title"] != "1. Capital of France?" {
		t.Fatalf("unexpected title %v", item["title"])
	}
	q := item["questionItem"].(map[string]any)["question"].(map[string]any)
	if q["required"] != true {
		t.Fatalf("question must be required: %v", q)
	}
	choice := q["choiceQuestion"].(map[string]any)
	if choice["type"] != "RADIO" {
		t.Fatalf("unexpected choice type %v", choice["type"])
	}
	second := requests[1].(map[string]any)["createItem"].(map[string]any)
	secondQ := second["item"].(map[string]any)["questionItem"].(map[string]any)["question"].(map[string]any)
	if _, ok := secondQ["textQuestion"]; !ok {
		t.Fatalf("expected text question, got %v", secondQ)
	}

	table, err := Collect(context.Background(), svc, published, set)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected rows from both pages, got %+v", table.Rows)
	}
	if table.Rows[0].Score != 1 || table.Rows[1].Score != 1 {
		t.Fatalf("unexpected scores: %+v", table.Rows)
	}
	if !slices.Equal(fake.pageTokens, []string{"", "p2"}) {
		t.Fatalf("unexpected page tokens %v", fake.pageTokens)
	}
}

func TestGoogleServiceFormQuestionsSkipsNonQuestions(t *testing.T) {
	svc, _ := newTestGoogleService(t)
	ids, err := svc.FormQuestions(context.Background(), "form-123")
	if err != nil {
		t.Fatalf("form questions: %v", err)
	}
	if !slices.Equal(ids, []string{"q0", "q1"}) {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestGoogleServiceSurfacesHTTPErrors(t *testing.T) {
	svc, _ := newTestGoogleService(t)
	if _, err := svc.ListResponses(context.Background(), "missing"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestConvertResponseSkipsNullAnswers(t *testing.T) {
	var resp formsapi.FormResponse
	body := `{"responseId":"r1","answers":{"q0":null,"q1":{"questionId":"q1","textAnswers":{"answers":[{"value":"water"},null]}}}}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	converted := convertResponse(&resp)
	if _, ok := converted.Answers["q0"]; ok {
		t.Fatalf("null answer must be skipped, got %v", converted.Answers)
	}
	if !slices.Equal(converted.Answers["q1"], []string{"water"}) {
		t.Fatalf("unexpected answers %v", converted.Answers)
	}
}
