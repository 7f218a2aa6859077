package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quizform/internal/config"
	"quizform/internal/forms"
	"quizform/internal/llm"
	"quizform/internal/question"
	"quizform/internal/session"
	"quizform/internal/testutil"
)

const testConfig = `version: 1
generation:
  provider: "openrouter"
  model: "test-model"
  timeout_seconds: 5
forms:
  credentials_file: "sa.json"
  responses_file: "out/responses.csv"
results:
  enabled: %t
  db_path: ".quizform/results.duckdb"
`

// writeWorkspace creates a temp workspace and returns its config path.
func writeWorkspace(t *testing.T, results bool) string {
	t.Helper()
	root := t.TempDir()
	path := config.ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(fmt.Sprintf(testConfig, results)), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// seedSession stores a session with the capital questions.
func seedSession(t *testing.T, configPath string, form *forms.Published) session.Context {
	t.Helper()
	store := session.NewStore(filepath.Dir(configPath))
	current, err := store.Create(capitalSet(), time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	if form != nil {
		current, err = store.AttachForm(current, *form)
		if err != nil {
			t.Fatalf("attach form: %v", err)
		}
	}
	return current
}

func loadSession(t *testing.T, configPath string) (session.Context, error) {
	t.Helper()
	return session.NewStore(filepath.Dir(configPath)).Load()
}

func capitalSet() question.Set {
	return question.Set{
		Version: question.CurrentVersion,
		Style:   question.StyleMixed,
		Source:  "notes.txt",
		Questions: []question.Question{
			{Kind: question.KindChoice, Prompt: "Capital of France?", Options: []string{"Paris", "Rome"}, Answer: "Paris"},
			{Kind: question.KindFreeText, Prompt: "H2O is ___", Answer: "water"},
		},
	}
}

// fakeProvider returns a canned reply and records the prompt.
type fakeProvider struct {
	reply  string
	err    error
	prompt string
}

func (p *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	p.prompt = prompt
	return p.reply, p.err
}

// stubProvider swaps the provider seam for the test.
func stubProvider(t *testing.T, provider *fakeProvider) *llm.Settings {
	t.Helper()
	var got llm.Settings
	orig := newProvider
	newProvider = func(settings llm.Settings) (llm.Provider, error) {
		got = settings
		return provider, nil
	}
	t.Cleanup(func() { newProvider = orig })
	return &got
}

// fakeForms is an in-memory form service.
type fakeForms struct {
	itemsErr  error
	responses []forms.Response
	// listUntilDeadline makes ListResponses answer only once the caller's
	// context is done.
	listUntilDeadline bool

	titles []string
	items  []forms.Item
}

func (f *fakeForms) CreateForm(_ context.Context, title string) (forms.Form, error) {
	f.titles = append(f.titles, title)
	return forms.Form{ID: "form-1", ResponderURL: "https://forms.example/form-1"}, nil
}

func (f *fakeForms) CreateItems(_ context.Context, _ string, items []forms.Item) ([]forms.CreatedItem, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	f.items = items
	created := make([]forms.CreatedItem, len(items))
	for i := range items {
		created[i] = forms.CreatedItem{ItemID: fmt.Sprintf("item-%d", i), QuestionID: fmt.Sprintf("q-%d", i)}
	}
	return created, nil
}

func (f *fakeForms) FormQuestions(context.Context, string) ([]string, error) {
	return []string{"q-0", "q-1"}, nil
}

func (f *fakeForms) ListResponses(ctx context.Context, _ string) ([]forms.Response, error) {
	if f.listUntilDeadline {
		<-ctx.Done()
	}
	return f.responses, nil
}

// stubForms swaps the forms seam and records the credentials path.
func stubForms(t *testing.T, svc *fakeForms) *string {
	t.Helper()
	var credentials string
	orig := newFormsService
	newFormsService = func(_ context.Context, credentialsFile string) (forms.Service, error) {
		credentials = credentialsFile
		return svc, nil
	}
	t.Cleanup(func() { newFormsService = orig })
	return &credentials
}

// stubClock pins the command clock to a fake.
func stubClock(t *testing.T, clock *testutil.FakeClock) {
	t.Helper()
	orig := now
	now = clock.Now
	t.Cleanup(func() { now = orig })
}

func runCLI(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func publishedForm() *forms.Published {
	return &forms.Published{
		FormID:      "form-1",
		URL:         "https://forms.example/form-1",
		Title:       "Quiz",
		QuestionIDs: []string{"q-0", "q-1"},
	}
}

func assertContains(t *testing.T, label, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Fatalf("expected %s to contain %q, got %q", label, want, got)
	}
}

func isNoSession(err error) bool {
	return errors.Is(err, session.ErrNoSession)
}
