package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"quizform/internal/config"
	"quizform/internal/reportserver"
	"quizform/internal/resultsdb"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// summaryRecentAttempts caps the attempts listed by /api/summary.
const summaryRecentAttempts = 20

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		common := addCommonFlags(fs)
		addr := fs.String("addr", "", "Address to listen on (default from config)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(common, stdout)
		if err != nil {
			return reportFailure(stderr, "Serve", err)
		}
		defer ws.Close()

		listen := strings.TrimSpace(*addr)
		if listen == "" {
			listen = ws.cfg.Serve.Addr
		}
		dbPath := config.ResolvePath(ws.root, ws.cfg.Results.DBPath)
		if _, err := os.Stat(dbPath); err != nil {
			fmt.Fprintf(stderr, "Database not found: %v\n", err)
			if !ws.cfg.Results.Enabled {
				fmt.Fprintln(stderr, "Set results.enabled: true and run a practice session first.")
			}
			return ExitError
		}

		cfg := reportserver.Config{
			Addr:   listen,
			DBPath: dbPath,
			Summary: func(ctx context.Context) (resultsdb.Summary, error) {
				store, err := resultsdb.Open(ctx, dbPath)
				if err != nil {
					return resultsdb.Summary{}, err
				}
				defer store.Close()
				return store.Summarize(ctx, summaryRecentAttempts)
			},
			Ready: func(bound string) {
				fmt.Fprintf(stdout, "Serving report at http://%s\n", bound)
			},
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := serveReport(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
