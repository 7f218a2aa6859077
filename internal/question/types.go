package question

import (
	"fmt"
	"strings"
)

// Style selects which kinds of questions a set may contain.
type Style string

const (
	// StyleChoice produces only multiple-choice questions.
	StyleChoice Style = "mcq"
	// StyleFreeText produces only fill-in-the-blank questions.
	StyleFreeText Style = "blanks"
	// StyleMixed lets every question tag its own kind.
	StyleMixed Style = "mixed"
)

// Styles lists the accepted styles in display order.
var Styles = []Style{StyleChoice, StyleFreeText, StyleMixed}

// ParseStyle resolves a user-supplied style name.
func ParseStyle(value string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "mcq", "choice":
		return StyleChoice, nil
	case "blanks", "blank", "freetext", "free-text":
		return StyleFreeText, nil
	case "mixed":
		return StyleMixed, nil
	default:
		return "", fmt.Errorf("unknown question style %q (expected mcq|blanks|mixed)", value)
	}
}

// Kind tags a single question.
type Kind string

const (
	// KindChoice is a single-select question with predefined options.
	KindChoice Kind = "mcq"
	// KindFreeText is a typed-answer question.
	KindFreeText Kind = "blank"
)

// Question is one generated quiz question with its answer key.
type Question struct {
	Kind    Kind     `json:"type" yaml:"type"`
	Prompt  string   `json:"question" yaml:"question"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	Answer  string   `json:"answer" yaml:"answer"`
}

// IsChoice reports whether the question is answered by picking an option.
func (q Question) IsChoice() bool {
	return q.Kind == KindChoice
}

// DisplayTitle renders the 1-based numbered title shared by forms and practice.
func (q Question) DisplayTitle(index int) string {
	return fmt.Sprintf("%d. %s", index+1, q.Prompt)
}

// Set is an ordered, immutable collection of questions.
type Set struct {
	Version   int        `json:"version" yaml:"version"`
	Style     Style      `json:"style" yaml:"style"`
	Source    string     `json:"source,omitempty" yaml:"source,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Len returns the number of questions.
func (s Set) Len() int {
	return len(s.Questions)
}

// AnswerKey returns the correct answers in set order.
func (s Set) AnswerKey() []string {
	key := make([]string, len(s.Questions))
	for i, q := range s.Questions {
		key[i] = q.Answer
	}
	return key
}
