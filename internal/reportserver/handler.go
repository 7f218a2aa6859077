package reportserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quizform/internal/resultsdb"
)

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Quizform Results</title>
  </head>
  <body>
    <h1>Quizform Results</h1>
    <p><a href="/data/results.duckdb">Download the results database</a></p>
    <pre id="summary">Loading summary...</pre>
    <script>
      fetch("/api/summary")
        .then((resp) => resp.json())
        .then((data) => {
          document.getElementById("summary").textContent = JSON.stringify(data, null, 2);
        })
        .catch((err) => {
          document.getElementById("summary").textContent = "Failed to load summary: " + err;
        });
    </script>
  </body>
</html>`

// SummaryFunc reads the current results summary.
type SummaryFunc func(ctx context.Context) (resultsdb.Summary, error)

// NewHandler builds the HTTP handler for serving the results page, the
// DuckDB file, and the JSON summary.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("reportserver: db path is required")
	}
	if cfg.Summary == nil {
		return nil, errors.New("reportserver: summary source is required")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Get("/", serveIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/data/results.duckdb", serveDatabase(cfg.DBPath))
	r.Get("/api/summary", serveSummary(cfg.Summary))
	return r, nil
}

// serveIndex writes the HTML shell for the results page.
func serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

// serveDatabase serves the DuckDB file from disk.
func serveDatabase(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	}
}

// serveSummary encodes the results summary as JSON.
func serveSummary(summary SummaryFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := summary(r.Context())
		if err != nil {
			http.Error(w, "summary unavailable: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(data)
	}
}
