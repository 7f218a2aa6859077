package cli

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// uiMode selects how practice questions are shown.
type uiMode string

const (
	uiAuto  uiMode = "auto"
	uiLive  uiMode = "live"
	uiPlain uiMode = "plain"
)

func parseUIMode(value string) (uiMode, error) {
	switch mode := uiMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return uiAuto, nil
	case uiAuto, uiLive, uiPlain:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", value)
	}
}

// uiModeDecision captures whether practice runs in the terminal UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a reader or writer is attached to a TTY.
var isTerminal = func(stream any) bool {
	fder, ok := stream.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fder.Fd()))
}

// resolveUIMode picks the terminal UI or plain prompts for practice. The
// terminal UI reads keys, so both stdin and stdout must be TTYs. Verbose
// runs always use plain prompts.
func resolveUIMode(value string, verbose bool, stdin io.Reader, stdout io.Writer) (uiModeDecision, error) {
	mode, err := parseUIMode(value)
	if err != nil {
		return uiModeDecision{}, err
	}
	if verbose || mode == uiPlain {
		return uiModeDecision{}, nil
	}
	interactive := isTerminal(stdin) && isTerminal(stdout)
	if mode == uiLive && !interactive {
		return uiModeDecision{warning: "Live UI needs an interactive terminal; falling back to plain prompts."}, nil
	}
	return uiModeDecision{useLive: interactive}, nil
}
