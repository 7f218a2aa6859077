package generate

import (
	"fmt"
	"strings"

	"quizform/internal/question"
)

const choiceFormat = `{
  "questions": [
    {
      "question": "...",
      "options": ["opt1", "opt2", "opt3", "opt4"],
      "answer": "correct option"
    }
  ]
}`

const freeTextFormat = `{
  "questions": [
    {
      "question": "...",
      "answer": "correct answer"
    }
  ]
}`

const mixedFormat = `{
  "questions": [
    {
      "type": "mcq",
      "question": "...",
      "options": ["opt1", "opt2", "opt3", "opt4"],
      "answer": "correct option"
    },
    {
      "type": "blank",
      "question": "...",
      "answer": "correct answer"
    }
  ]
}`

// BuildPrompt constructs the instruction sent to the model for one run.
func BuildPrompt(style question.Style, count int, text string) string {
	var (
		lead   string
		format string
	)
	switch style {
	case question.StyleChoice:
		lead = fmt.Sprintf("Generate %d multiple-choice questions from this text.", count)
		format = choiceFormat
	case question.StyleFreeText:
		lead = fmt.Sprintf("Generate %d fill-in-the-blank questions from this text.", count)
		format = freeTextFormat
	default:
		lead = fmt.Sprintf("Generate %d mixed questions (MCQs + Blanks) from this text.", count)
		format = mixedFormat
	}

	var builder strings.Builder
	builder.WriteString(lead)
	builder.WriteString("\n")
	if style != question.StyleFreeText {
		builder.WriteString("Every answer must be copied exactly from its options.\n")
	}
	builder.WriteString("Output strictly in this JSON format:\n")
	builder.WriteString(format)
	builder.WriteString("\nText: ")
	builder.WriteString(text)
	builder.WriteString("\n")
	return builder.String()
}
