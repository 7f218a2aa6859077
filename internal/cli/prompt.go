package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter asks line-based questions on out and reads answers from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line reads one answer without its line ending. At EOF it returns what
// was read along with io.EOF.
func (p *prompter) line() (string, error) {
	text, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(text), err
}

// String asks for a value, returning fallback on an empty answer.
func (p *prompter) String(label, fallback string) (string, error) {
	for {
		if fallback != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, fallback)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}
		answer, err := p.line()
		switch {
		case answer != "":
			return answer, nil
		case fallback != "":
			return fallback, nil
		case err != nil:
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// YesNo asks a yes/no question. An empty answer picks the default.
func (p *prompter) YesNo(label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, suffix)
		answer, err := p.line()
		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("invalid response %q", answer)
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}
