//go:build cucumber

package reportserver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"quizform/internal/practice"
	"quizform/internal/resultsdb"
)

// TestServeReportScenarios runs the report server feature scenarios.
func TestServeReportScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "report-serve",
		ScenarioInitializer: InitializeServeScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("features", "report-serve.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeServeScenario wires steps for report server feature scenarios.
func InitializeServeScenario(ctx *godog.ScenarioContext) {
	state := &serveScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, err
	})

	ctx.Step(`^a results database with (\d+) practice attempts$`, state.givenResultsDatabase)
	ctx.Step(`^I start the report server$`, state.whenIStartTheReportServer)
	ctx.Step(`^I request "([^"]+)"$`, state.whenIRequest)
	ctx.Step(`^the response status is (\d+)$`, state.thenResponseStatus)
	ctx.Step(`^the response body contains "(.+)"$`, state.thenResponseBodyContains)
	ctx.Step(`^the response body equals the database file bytes$`, state.thenResponseBodyEqualsDB)
}

// serveScenarioState holds scenario state for report server feature tests.
type serveScenarioState struct {
	dir      string
	dbPath   string
	handler  http.Handler
	response *httptest.ResponseRecorder
}

// reset clears scenario state.
func (s *serveScenarioState) reset() {
	s.dir = ""
	s.dbPath = ""
	s.handler = nil
	s.response = nil
}

func (s *serveScenarioState) cleanup() {
	if s.dir != "" {
		_ = os.RemoveAll(s.dir)
	}
}

// givenResultsDatabase records attempts in a fresh DuckDB file.
func (s *serveScenarioState) givenResultsDatabase(attempts int) error {
	dir, err := os.MkdirTemp("", "quizform-report-*")
	if err != nil {
		return err
	}
	s.dir = dir
	s.dbPath = filepath.Join(dir, "results.duckdb")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := resultsdb.Open(ctx, s.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := range attempts {
		result := practice.Result{
			Reason:    practice.ReasonSubmitted,
			Answers:   []string{"Paris"},
			Score:     1,
			Total:     1,
			StartedAt: start.Add(time.Duration(i) * time.Hour),
			EndedAt:   start.Add(time.Duration(i)*time.Hour + time.Minute),
		}
		if _, err := store.RecordAttempt(ctx, resultsdb.AttemptFromResult("session", "notes.txt", time.Minute, result)); err != nil {
			return err
		}
	}
	return nil
}

// whenIStartTheReportServer builds the report handler over the scenario database.
func (s *serveScenarioState) whenIStartTheReportServer() error {
	if s.dbPath == "" {
		return fmt.Errorf("db path is not set")
	}
	dbPath := s.dbPath
	handler, err := NewHandler(Config{
		DBPath: dbPath,
		Summary: func(ctx context.Context) (resultsdb.Summary, error) {
			store, err := resultsdb.Open(ctx, dbPath)
			if err != nil {
				return resultsdb.Summary{}, err
			}
			defer store.Close()
			return store.Summarize(ctx, 10)
		},
	})
	if err != nil {
		return err
	}
	s.handler = handler
	return nil
}

// whenIRequest sends a request to the report handler.
func (s *serveScenarioState) whenIRequest(path string) error {
	if s.handler == nil {
		return fmt.Errorf("handler not initialized")
	}
	req := httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil)
	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, req)
	s.response = recorder
	return nil
}

// thenResponseStatus asserts the HTTP response status code.
func (s *serveScenarioState) thenResponseStatus(expected int) error {
	if s.response == nil {
		return fmt.Errorf("response not recorded")
	}
	if s.response.Code != expected {
		return fmt.Errorf("expected status %d, got %d", expected, s.response.Code)
	}
	return nil
}

// thenResponseBodyContains asserts the response body includes the given substring.
func (s *serveScenarioState) thenResponseBodyContains(snippet string) error {
	if s.response == nil {
		return fmt.Errorf("response not recorded")
	}
	snippet = strings.ReplaceAll(snippet, `\"`, `"`)
	if !strings.Contains(s.response.Body.String(), snippet) {
		return fmt.Errorf("expected response to contain %q, got %s", snippet, s.response.Body.String())
	}
	return nil
}

// thenResponseBodyEqualsDB asserts the response body matches the database bytes.
func (s *serveScenarioState) thenResponseBodyEqualsDB() error {
	if s.response == nil {
		return fmt.Errorf("response not recorded")
	}
	want, err := os.ReadFile(s.dbPath)
	if err != nil {
		return err
	}
	if !bytes.Equal(s.response.Body.Bytes(), want) {
		return fmt.Errorf("response body did not match db bytes")
	}
	return nil
}
