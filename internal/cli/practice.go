package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"quizform/internal/practice"
	"quizform/internal/resultsdb"
	"quizform/internal/ui/quiz"
)

// practiceInput allows tests to override stdin for practice answers.
var practiceInput io.Reader = os.Stdin

// runPractice builds the handler for the practice command.
func runPractice(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		common := addCommonFlags(fs)
		minutes := fs.Int("minutes", 0, "Time budget in minutes (1-120, default from config)")
		uiMode := fs.String("ui", "", "UI mode: auto|live|plain (default from config)")
		noColor := fs.Bool("no-color", false, "Disable colored output in the live UI")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(common, stdout)
		if err != nil {
			return reportFailure(stderr, "Practice", err)
		}
		defer ws.Close()

		mode := *uiMode
		if mode == "" {
			mode = ws.cfg.Practice.UI
		}
		in := practiceInput
		if in == nil {
			in = os.Stdin
		}
		decision, err := resolveUIMode(mode, *common.verbose, in, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		if *minutes == 0 {
			*minutes = ws.cfg.Practice.DefaultMinutes
		}
		budget, err := practice.Budget(*minutes)
		if err != nil {
			return reportFailure(stderr, "Practice", err)
		}

		current, err := ws.sessions.Load()
		if err != nil {
			return reportFailure(stderr, "Practice", err)
		}
		session, err := practice.Start(current.Set, budget, now())
		if err != nil {
			return reportFailure(stderr, "Practice", err)
		}
		ws.log.Printf("practice: %d questions, %s budget", current.Set.Len(), budget)

		var result practice.Result
		if decision.useLive {
			result, err = quiz.Run(session, in, stdout, quiz.Options{NoColor: *noColor, Now: now})
		} else {
			result, err = quiz.RunPlain(session, in, stdout, now)
		}
		if errors.Is(err, quiz.ErrQuit) {
			fmt.Fprintln(stdout, "Practice abandoned; nothing was recorded.")
			return ExitOK
		}
		if err != nil {
			return reportFailure(stderr, "Practice", err)
		}
		if decision.useLive {
			fmt.Fprintf(stdout, "Score: %d/%d (%s)\n", result.Score, result.Total, result.Reason)
		}

		err = ws.withResults(func(ctx context.Context, store *resultsdb.Store) error {
			id, err := store.RecordAttempt(ctx, resultsdb.AttemptFromResult(current.ID, current.Set.Source, budget, result))
			if err == nil {
				ws.log.Printf("results: recorded attempt %s", id)
			}
			return err
		})
		if err != nil {
			fmt.Fprintf(stderr, "Warning: attempt was not recorded: %v\n", err)
		}
		return ExitOK
	}
}
