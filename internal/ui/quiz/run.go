package quiz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quizform/internal/practice"
)

// ErrQuit reports that the user left the session without submitting.
var ErrQuit = errors.New("practice abandoned")

// Run drives the session through the Bubble Tea UI until it ends.
func Run(session *practice.Session, stdin io.Reader, stdout io.Writer, opts Options) (practice.Result, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	programOpts := []tea.ProgramOption{tea.WithOutput(stdout)}
	if stdin != nil {
		programOpts = append(programOpts, tea.WithInput(stdin))
	}
	final, err := tea.NewProgram(NewModel(session, opts), programOpts...).Run()
	if err != nil {
		return practice.Result{}, fmt.Errorf("run practice ui: %w", err)
	}
	if model, ok := final.(Model); ok && model.Quit() && !model.Ended() {
		return practice.Result{}, ErrQuit
	}
	if result, ended := session.Result(); ended {
		return result, nil
	}
	return practice.Result{}, ErrQuit
}

// RunPlain asks questions one per line for terminals without TUI support.
// Choice questions accept an option number or the option text. An empty
// line leaves the question unanswered.
func RunPlain(session *practice.Session, stdin io.Reader, stdout io.Writer, now func() time.Time) (practice.Result, error) {
	if now == nil {
		now = time.Now
	}
	reader := bufio.NewReader(stdin)
	total := session.Set().Len()
	for i := range total {
		q, err := session.Present(i, now())
		if errors.Is(err, practice.ErrEnded) {
			fmt.Fprintln(stdout, "Time is up.")
			break
		}
		if err != nil {
			return practice.Result{}, err
		}
		remaining, _ := session.Poll(now())
		fmt.Fprintf(stdout, "\n[%s left] %s\n", FormatRemaining(remaining), q.DisplayTitle(i))
		for j, option := range q.Options {
			fmt.Fprintf(stdout, "  %d) %s\n", j+1, option)
		}
		fmt.Fprint(stdout, "> ")
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return practice.Result{}, fmt.Errorf("read answer: %w", readErr)
		}
		answer := plainAnswer(line, q.Options)
		if err := session.Answer(i, answer, now()); errors.Is(err, practice.ErrEnded) {
			fmt.Fprintln(stdout, "Time is up; the last answer was not recorded.")
			break
		} else if err != nil {
			return practice.Result{}, err
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
	}
	result := session.Submit(now())
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, renderResult(result, session.Set().Questions, true))
	return result, nil
}

// plainAnswer maps a typed line to an answer, resolving option numbers.
func plainAnswer(line string, options []string) string {
	answer := strings.TrimRight(line, "\r\n")
	if len(options) == 0 {
		return answer
	}
	if n, err := strconv.Atoi(strings.TrimSpace(answer)); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return answer
}
