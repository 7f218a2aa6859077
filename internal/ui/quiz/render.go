package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"quizform/internal/practice"
	"quizform/internal/question"
)

// renderHeader renders the position and countdown line.
func renderHeader(current, total int, remaining time.Duration, noColor bool) string {
	line := fmt.Sprintf("Practice | Question %d/%d | %s left", current+1, total, FormatRemaining(remaining))
	color := lipgloss.Color("42")
	if remaining < time.Minute {
		color = lipgloss.Color("196")
	}
	return stylize(line, noColor, color)
}

// renderOptions renders choice options with the selected one marked.
func renderOptions(options []string, selected int, noColor bool) string {
	lines := make([]string, 0, len(options))
	for i, option := range options {
		marker := "( )"
		text := option
		if i == selected {
			marker = "(*)"
			text = stylize(option, noColor, lipgloss.Color("220"))
		}
		lines = append(lines, "  "+marker+" "+text)
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the key bindings for the current question kind.
func renderHelp(choice bool, noColor bool) string {
	line := "tab/shift+tab: move | ctrl+s: submit | esc: quit"
	if choice {
		line = "up/down: choose | " + line
	}
	return stylize(line, noColor, lipgloss.Color("244"))
}

// renderResult renders the final score and per-question marks.
func renderResult(result practice.Result, questions []question.Question, noColor bool) string {
	var b strings.Builder
	headline := fmt.Sprintf("Session ended (%s). Score: %d/%d", result.Reason, result.Score, result.Total)
	b.WriteString(stylize(headline, noColor, lipgloss.Color("33")))
	for i, q := range questions {
		mark := "wrong"
		color := lipgloss.Color("220")
		switch {
		case i < len(result.Correct) && result.Correct[i]:
			mark = "correct"
			color = lipgloss.Color("42")
		case i >= len(result.Answers) || strings.TrimSpace(result.Answers[i]) == "":
			mark = "unanswered"
			color = lipgloss.Color("246")
		}
		b.WriteString("\n")
		b.WriteString(q.DisplayTitle(i))
		b.WriteString(" ")
		b.WriteString(stylize("["+mark+"]", noColor, color))
		if mark != "correct" {
			b.WriteString(" answer: ")
			b.WriteString(q.Answer)
		}
	}
	return b.String()
}

// FormatRemaining renders a countdown as mm:ss.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
