// Package cli implements the quizform command-line interface.
package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  quizform <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"quizform <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .quizform/config.yml and .env", []string{
		"quizform init [--config <path>] [--yes]",
	}, runInit),
	command("validate", "Validate the config and an optional question file", []string{
		"quizform validate [--config <path>] [--questions <file>]",
	}, runValidate),
	command("generate", "Generate questions from a document and publish a form", []string{
		"quizform generate --file <doc.pdf|doc.docx|doc.txt> [--count 5] [--style mcq|blanks|mixed] [--title <title>]",
		"quizform generate --file <doc> --no-publish [--out questions.yml]",
	}, runGenerate),
	command("publish", "Publish the current questions as a new form", []string{
		"quizform publish [--title <title>]",
	}, runPublish),
	command("responses", "Download, score, and export form responses", []string{
		"quizform responses [--out responses.csv]",
	}, runResponses),
	command("practice", "Take a timed practice quiz in the terminal", []string{
		"quizform practice [--minutes 10] [--ui auto|live|plain] [--no-color]",
	}, runPractice),
	command("show", "Print the current questions and form link", []string{
		"quizform show [--answers] [--json]",
	}, runShow),
	command("reset", "Forget the current questions and form", []string{
		"quizform reset",
	}, runReset),
	command("serve", "Serve the results database over HTTP", []string{
		"quizform serve [--addr 127.0.0.1:8080]",
	}, runServe),
}
