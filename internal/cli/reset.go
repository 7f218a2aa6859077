package cli

import (
	"fmt"
	"io"
)

// runReset builds the handler for the reset command.
func runReset(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		common := addCommonFlags(fs)
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(common, stdout)
		if err != nil {
			return reportFailure(stderr, "Reset", err)
		}
		defer ws.Close()

		if err := ws.sessions.Invalidate(); err != nil {
			return reportFailure(stderr, "Reset", err)
		}
		fmt.Fprintln(stdout, "Cleared the current questions and form link.")
		return ExitOK
	}
}
