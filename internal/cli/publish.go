package cli

import (
	"fmt"
	"io"
)

// runPublish builds the handler for the publish command.
func runPublish(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		common := addCommonFlags(fs)
		title := fs.String("title", "", "Form title (default from config)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(common, stdout)
		if err != nil {
			return reportFailure(stderr, "Publish", err)
		}
		defer ws.Close()

		current, err := ws.sessions.Load()
		if err != nil {
			return reportFailure(stderr, "Publish", err)
		}
		if current.HasForm() {
			fmt.Fprintf(stderr, "Warning: replacing the link to form %s; responses stay on the old form.\n", current.Form.FormID)
		}
		if _, err := publishCurrent(ws, current, *title, stdout, stderr); err != nil {
			return reportFailure(stderr, "Publish", err)
		}
		return ExitOK
	}
}
