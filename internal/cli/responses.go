package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"quizform/internal/config"
	"quizform/internal/forms"
	"quizform/internal/quizerr"
	"quizform/internal/resultsdb"
)

// runResponses builds the handler for the responses command.
func runResponses(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		common := addCommonFlags(fs)
		out := fs.String("out", "", "CSV output path (default from config)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(common, stdout)
		if err != nil {
			return reportFailure(stderr, "Responses", err)
		}
		defer ws.Close()

		current, err := ws.sessions.Load()
		if err != nil {
			return reportFailure(stderr, "Responses", err)
		}
		if !current.HasForm() {
			return reportFailure(stderr, "Responses", quizerr.Inputf("collect responses", "no form has been published; run `quizform publish` first"))
		}

		ctx, cancel := context.WithTimeout(context.Background(), ws.formsTimeout())
		defer cancel()
		svc, err := ws.formsService(ctx)
		if err != nil {
			return reportFailure(stderr, "Responses", err)
		}
		ws.log.Printf("forms: listing responses for %s", current.Form.FormID)
		table, err := forms.Collect(ctx, svc, *current.Form, current.Set)
		if errors.Is(err, quizerr.ErrEmptyResult) {
			fmt.Fprintln(stdout, "No responses yet.")
			return ExitOK
		}
		if err != nil {
			return reportFailure(stderr, "Responses", err)
		}

		path := strings.TrimSpace(*out)
		if path == "" {
			path = config.ResolvePath(ws.root, ws.cfg.Forms.ResponsesFile)
		}
		if err := forms.ExportCSV(path, table); err != nil {
			return reportFailure(stderr, "Responses", err)
		}
		fmt.Fprintf(stdout, "Exported %d responses to %s\n", len(table.Rows), path)
		if incomplete := table.Incomplete(); len(incomplete) > 0 {
			fmt.Fprintf(stderr, "Warning: %d responses left questions unanswered; those cells are empty and score 0.\n", len(incomplete))
		}

		err = ws.withResults(func(ctx context.Context, store *resultsdb.Store) error {
			stored, err := store.RecordResponses(ctx, current.Form.FormID, table, current.Set.Len(), now())
			if err == nil {
				ws.log.Printf("results: stored %d responses", stored)
			}
			return err
		})
		if err != nil {
			fmt.Fprintf(stderr, "Warning: responses were exported but not recorded: %v\n", err)
		}
		return ExitOK
	}
}
