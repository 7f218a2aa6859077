package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"quizform/internal/question"
)

// StripCodeFence removes Markdown code-fence markers from a model reply.
func StripCodeFence(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// responsePayload is the structured shape requested from the model.
type responsePayload struct {
	Questions []question.Question `json:"questions"`
}

// decodeQuestions parses a fence-stripped reply. A bare JSON array of
// questions is accepted as well as the wrapped object.
func decodeQuestions(cleaned string) ([]question.Question, error) {
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}
	data := []byte(cleaned)
	if strings.HasPrefix(cleaned, "[") {
		var items []question.Question
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode question list: %w", err)
		}
		return items, nil
	}
	var payload responsePayload
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("decode questions: trailing data after JSON object")
	}
	if payload.Questions == nil {
		return nil, fmt.Errorf("decode questions: missing \"questions\" field")
	}
	return payload.Questions, nil
}
