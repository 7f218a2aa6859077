package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider calls Google's Gemini models.
type GeminiProvider struct {
	APIKey   string
	Model    string
	Endpoint string
}

// NewGeminiProvider constructs a Gemini provider. Endpoint may be blank.
func NewGeminiProvider(model, apiKey, endpoint string) (*GeminiProvider, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	return &GeminiProvider{APIKey: apiKey, Model: model, Endpoint: strings.TrimSpace(endpoint)}, nil
}

// Generate opens a client for the call and returns the text parts of the
// first candidate.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	opts := []option.ClientOption{option.WithAPIKey(p.APIKey)}
	if p.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	resp, err := client.GenerativeModel(p.Model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return geminiText(resp)
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("gemini candidate has no content (finish reason %v)", candidate.FinishReason)
	}
	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	return builder.String(), nil
}
