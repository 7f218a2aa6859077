package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIProvider calls any OpenAI-compatible chat completion endpoint.
type OpenAIProvider struct {
	model llms.Model
}

// NewOpenAIProvider constructs an OpenAI-compatible provider. BaseURL may be
// blank to use the public API.
func NewOpenAIProvider(model, apiKey, baseURL string) (*OpenAIProvider, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	opts := []openai.Option{openai.WithToken(apiKey), openai.WithModel(model)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, openai.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &OpenAIProvider{model: client}, nil
}

// Generate sends prompt as a single user message.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	return out, nil
}
