package question

import "strings"

// NormalizeAnswerText trims whitespace and lowercases an answer for matching.
func NormalizeAnswerText(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// AnswerMatches reports whether given matches the stored answer key.
func AnswerMatches(given, key string) bool {
	return NormalizeAnswerText(given) == NormalizeAnswerText(key)
}
