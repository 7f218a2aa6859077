package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quizform/internal/extract"
	"quizform/internal/forms"
	"quizform/internal/generate"
	"quizform/internal/llm"
	"quizform/internal/question"
	"quizform/internal/quizerr"
	"quizform/internal/session"
)

// runGenerate builds the handler for the generate command.
func runGenerate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		common := addCommonFlags(fs)
		file := fs.String("file", "", "Document to read questions from (.pdf, .docx, .txt)")
		count := fs.Int("count", 0, "Number of questions (1-50, default from config)")
		style := fs.String("style", "", "Question style: mcq, blanks, or mixed (default from config)")
		title := fs.String("title", "", "Form title (default from config)")
		noPublish := fs.Bool("no-publish", false, "Keep the questions locally without creating a form")
		out := fs.String("out", "", "Also write the questions to this YAML or JSON file")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		docPath := strings.TrimSpace(*file)
		if docPath == "" {
			fmt.Fprintln(stderr, "--file is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ws, err := loadWorkspace(common, stdout)
		if err != nil {
			return reportFailure(stderr, "Generate", err)
		}
		defer ws.Close()

		req, err := buildGenerateRequest(ws, docPath, *count, *style, stderr)
		if err != nil {
			return reportFailure(stderr, "Generate", err)
		}

		provider, err := newProvider(llm.Settings{
			Provider: ws.cfg.Generation.Provider,
			Model:    ws.cfg.Generation.Model,
			BaseURL:  ws.cfg.Generation.BaseURL,
			APIKey:   ws.secrets.LLMAPIKey,
		})
		if err != nil {
			return reportFailure(stderr, "Generate", quizerr.Input("generate", err))
		}
		generator := &generate.Generator{
			Provider: provider,
			Timeout:  time.Duration(ws.cfg.Generation.TimeoutSeconds) * time.Second,
			Log:      ws.log,
		}
		ws.log.Printf("generate: %s via %s (%d questions, %s)", req.Source, ws.cfg.Generation.Provider, req.Count, req.Style)
		result, err := generator.Generate(context.Background(), req)
		if err != nil {
			return reportFailure(stderr, "Generate", err)
		}
		if result.Mismatch != nil {
			fmt.Fprintf(stderr, "Warning: %s\n", result.Mismatch.String())
		}

		current, err := ws.sessions.Create(result.Set, now())
		if err != nil {
			return reportFailure(stderr, "Generate", err)
		}
		fmt.Fprintf(stdout, "Generated %d questions from %s\n", result.Set.Len(), req.Source)

		if path := strings.TrimSpace(*out); path != "" {
			if err := question.WriteSet(path, result.Set); err != nil {
				return reportFailure(stderr, "Generate", err)
			}
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		}

		if *noPublish {
			fmt.Fprintln(stdout, "Run `quizform publish` to create a form or `quizform practice` to practice.")
			return ExitOK
		}
		if _, err := publishCurrent(ws, current, *title, stdout, stderr); err != nil {
			return reportFailure(stderr, "Publish", err)
		}
		return ExitOK
	}
}

// buildGenerateRequest reads and extracts the document and fills flag
// defaults from the config.
func buildGenerateRequest(ws *workspace, docPath string, count int, style string, warn io.Writer) (generate.Request, error) {
	const op = "read document"
	if !extract.Supported(docPath) {
		return generate.Request{}, quizerr.Inputf(op, "%s: unsupported file type (expected .pdf, .docx, or .txt)", filepath.Base(docPath))
	}
	if count == 0 {
		count = ws.cfg.Generation.DefaultCount
	}
	if count < generate.MinCount || count > generate.MaxCount {
		return generate.Request{}, quizerr.Inputf("generate", "--count must be between %d and %d, got %d", generate.MinCount, generate.MaxCount, count)
	}
	if strings.TrimSpace(style) == "" {
		style = ws.cfg.Generation.DefaultStyle
	}
	parsedStyle, err := question.ParseStyle(style)
	if err != nil {
		return generate.Request{}, quizerr.Input("generate", err)
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return generate.Request{}, quizerr.Input(op, err)
	}
	text, err := extract.Text(docPath, data)
	if err != nil {
		return generate.Request{}, quizerr.Input(op, err)
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintf(warn, "Warning: %s contains no extractable text; questions will not be grounded in it.\n", filepath.Base(docPath))
	}
	ws.log.Printf("extract: %s (%d characters)", docPath, len(text))
	return generate.Request{
		Text:   text,
		Count:  count,
		Style:  parsedStyle,
		Source: filepath.Base(docPath),
	}, nil
}

// publishCurrent creates a form for the session's set and attaches it.
func publishCurrent(ws *workspace, current session.Context, title string, stdout, stderr io.Writer) (session.Context, error) {
	if strings.TrimSpace(title) == "" {
		title = ws.cfg.Forms.DefaultTitle
	}
	ctx, cancel := context.WithTimeout(context.Background(), ws.formsTimeout())
	defer cancel()

	svc, err := ws.formsService(ctx)
	if err != nil {
		return current, err
	}
	ws.log.Printf("forms: publishing %q with %d items", title, current.Set.Len())
	published, err := forms.Publish(ctx, svc, title, current.Set)
	if err != nil {
		var partial *forms.PartialPublishError
		if errors.As(err, &partial) {
			fmt.Fprintf(stderr, "Warning: form %s exists but is incomplete; delete it from Google Drive.\n", partial.Form.ID)
		}
		return current, err
	}
	updated, err := ws.sessions.AttachForm(current, published)
	if err != nil {
		return current, err
	}
	fmt.Fprintf(stdout, "Published %q\n", published.Title)
	fmt.Fprintf(stdout, "Form URL: %s\n", published.URL)
	return updated, nil
}
