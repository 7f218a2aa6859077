package question

import (
	"fmt"
	"slices"
	"strings"
)

// CurrentVersion is the only supported question set file version.
const CurrentVersion = 1

// Issue captures a validation problem in a question set.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question set validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeSet trims whitespace, resolves question kinds for the set's style,
// and validates every question.
func NormalizeSet(set Set) (Set, error) {
	collector := &issueCollector{}
	if set.Version == 0 {
		collector.add("version", "is required")
	} else if set.Version != CurrentVersion {
		collector.add("version", fmt.Sprintf("unsupported version %d", set.Version))
	}
	style, err := ParseStyle(string(set.Style))
	if err != nil {
		collector.add("style", err.Error())
	} else {
		set.Style = style
	}
	if len(set.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	questions := make([]Question, len(set.Questions))
	for i, question := range set.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		question.Prompt = strings.TrimSpace(question.Prompt)
		question.Answer = strings.TrimSpace(question.Answer)
		question.Options = normalizeStringSlice(question.Options)

		kind, ok := resolveKind(set.Style, question)
		if !ok {
			collector.add(prefix+".type", fmt.Sprintf("unknown type %q", question.Kind))
		}
		question.Kind = kind
		if kind == KindFreeText {
			question.Options = nil
		}

		if question.Prompt == "" {
			collector.add(prefix+".question", "is required")
		}
		if question.Answer == "" {
			collector.add(prefix+".answer", "is required")
		}
		if kind == KindChoice {
			validateOptions(collector, prefix, question)
		}
		questions[i] = question
	}
	set.Questions = questions

	if err := collector.result(); err != nil {
		return Set{}, err
	}
	return set, nil
}

func validateOptions(collector *issueCollector, prefix string, question Question) {
	if len(question.Options) < 2 {
		collector.add(prefix+".options", "must include at least two entries")
	}
	for i, option := range question.Options {
		if option == "" {
			collector.add(fmt.Sprintf("%s.options[%d]", prefix, i), "is required")
		}
	}
	if question.Answer != "" && !slices.Contains(question.Options, question.Answer) {
		collector.add(prefix+".answer", fmt.Sprintf("%q is not one of the options", question.Answer))
	}
}

// resolveKind decides the kind of a question under style. Mixed sets honour
// the question's own tag and fall back to the presence of options.
func resolveKind(style Style, question Question) (Kind, bool) {
	switch style {
	case StyleChoice:
		return KindChoice, true
	case StyleFreeText:
		return KindFreeText, true
	}
	switch strings.ToLower(strings.TrimSpace(string(question.Kind))) {
	case "mcq", "choice":
		return KindChoice, true
	case "blank", "blanks", "freetext", "free-text", "text":
		return KindFreeText, true
	case "":
		if len(question.Options) > 0 {
			return KindChoice, true
		}
		return KindFreeText, true
	default:
		return question.Kind, false
	}
}

func normalizeStringSlice(values []string) []string {
	if values == nil {
		return nil
	}
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
