package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"quizform/internal/forms"
	"quizform/internal/question"
	"quizform/internal/session"
)

// showPayload is the --json rendering of the current session.
type showPayload struct {
	SessionID string           `json:"session_id"`
	Source    string           `json:"source,omitempty"`
	Style     question.Style   `json:"style"`
	Questions []showQuestion   `json:"questions"`
	Form      *forms.Published `json:"form,omitempty"`
}

type showQuestion struct {
	Kind    question.Kind `json:"type"`
	Prompt  string        `json:"question"`
	Options []string      `json:"options,omitempty"`
	Answer  string        `json:"answer,omitempty"`
}

// runShow builds the handler for the show command.
func runShow(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		common := addCommonFlags(fs)
		answers := fs.Bool("answers", false, "Include the answer key")
		asJSON := fs.Bool("json", false, "Print JSON instead of text")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(common, stdout)
		if err != nil {
			return reportFailure(stderr, "Show", err)
		}
		defer ws.Close()

		current, err := ws.sessions.Load()
		if err != nil {
			return reportFailure(stderr, "Show", err)
		}
		if *asJSON {
			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(buildShowPayload(current, *answers)); err != nil {
				return reportFailure(stderr, "Show", err)
			}
			return ExitOK
		}
		printSession(stdout, current, *answers)
		return ExitOK
	}
}

func buildShowPayload(current session.Context, withAnswers bool) showPayload {
	payload := showPayload{
		SessionID: current.ID,
		Source:    current.Set.Source,
		Style:     current.Set.Style,
		Questions: make([]showQuestion, 0, current.Set.Len()),
		Form:      current.Form,
	}
	for _, q := range current.Set.Questions {
		item := showQuestion{Kind: q.Kind, Prompt: q.Prompt, Options: q.Options}
		if withAnswers {
			item.Answer = q.Answer
		}
		payload.Questions = append(payload.Questions, item)
	}
	return payload
}

func printSession(w io.Writer, current session.Context, withAnswers bool) {
	fmt.Fprintf(w, "Questions from %s (%s, %d)\n", current.Set.Source, current.Set.Style, current.Set.Len())
	for i, q := range current.Set.Questions {
		fmt.Fprintf(w, "\n%s\n", q.DisplayTitle(i))
		for j, option := range q.Options {
			fmt.Fprintf(w, "  %d) %s\n", j+1, option)
		}
		if withAnswers {
			fmt.Fprintf(w, "  Answer: %s\n", q.Answer)
		}
	}
	fmt.Fprintln(w)
	if current.HasForm() {
		fmt.Fprintf(w, "Form: %s\n", current.Form.URL)
	} else {
		fmt.Fprintln(w, "Form: not published")
	}
}
