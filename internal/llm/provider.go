// Package llm wraps the text-generation services used to write questions.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Provider names accepted in configuration.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
)

// APIKeyEnv is the environment variable holding the provider API key.
const APIKeyEnv = "QUIZFORM_LLM_API_KEY"

// Provider turns one prompt into one raw text response.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Settings selects and configures a provider.
type Settings struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-1.5-flash-latest"
	case ProviderOpenRouter:
		return "google/gemini-flash-1.5"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return ""
	}
}

// New builds the provider named in settings. A blank API key is read from
// APIKeyEnv.
func New(settings Settings, client HTTPDoer) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(settings.Provider))
	if name == "" {
		return nil, fmt.Errorf("provider is required")
	}
	apiKey := strings.TrimSpace(settings.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(APIKeyEnv))
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s is required", APIKeyEnv)
	}
	model := strings.TrimSpace(settings.Model)
	if model == "" {
		model = DefaultModel(name)
	}
	switch name {
	case ProviderGemini:
		return NewGeminiProvider(model, apiKey, settings.BaseURL)
	case ProviderOpenRouter:
		return NewOpenRouterProvider(model, apiKey, settings.BaseURL, client)
	case ProviderOpenAI:
		return NewOpenAIProvider(model, apiKey, settings.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported provider %q", settings.Provider)
	}
}
