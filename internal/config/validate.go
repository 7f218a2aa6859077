package config

import (
	"fmt"
	"net/url"
	"strings"

	"quizform/internal/generate"
	"quizform/internal/llm"
	"quizform/internal/practice"
	"quizform/internal/question"
)

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	validateGeneration(cfg.Generation, collector.add)
	validateForms(cfg.Forms, collector.add)
	validatePractice(cfg.Practice, collector.add)
	if cfg.Results.Enabled && strings.TrimSpace(cfg.Results.DBPath) == "" {
		collector.add("results.db_path", "is required when results are enabled")
	}
	if strings.TrimSpace(cfg.Serve.Addr) == "" {
		collector.add("serve.addr", "is required")
	}

	return collector.result()
}

func validateGeneration(gen GenerationConfig, add issueAdder) {
	switch gen.Provider {
	case llm.ProviderGemini, llm.ProviderOpenRouter, llm.ProviderOpenAI:
	default:
		add("generation.provider", fmt.Sprintf("unsupported provider %q (expected gemini|openrouter|openai)", gen.Provider))
	}
	if strings.TrimSpace(gen.Model) == "" {
		add("generation.model", "is required")
	}
	if base := strings.TrimSpace(gen.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			add("generation.base_url", fmt.Sprintf("invalid URL %q", gen.BaseURL))
		}
	}
	validateTimeout("generation.timeout_seconds", gen.TimeoutSeconds, add)
	if gen.DefaultCount < generate.MinCount || gen.DefaultCount > generate.MaxCount {
		add("generation.default_count", fmt.Sprintf("must be between %d and %d", generate.MinCount, generate.MaxCount))
	}
	if _, err := question.ParseStyle(gen.DefaultStyle); err != nil {
		add("generation.default_style", err.Error())
	}
}

func validateForms(forms FormsConfig, add issueAdder) {
	validateTimeout("forms.timeout_seconds", forms.TimeoutSeconds, add)
	if strings.TrimSpace(forms.DefaultTitle) == "" {
		add("forms.default_title", "is required")
	}
	if strings.TrimSpace(forms.ResponsesFile) == "" {
		add("forms.responses_file", "is required")
	}
}

func validatePractice(p PracticeConfig, add issueAdder) {
	if p.DefaultMinutes < practice.MinMinutes || p.DefaultMinutes > practice.MaxMinutes {
		add("practice.default_minutes", fmt.Sprintf("must be between %d and %d", practice.MinMinutes, practice.MaxMinutes))
	}
	switch strings.ToLower(strings.TrimSpace(p.UI)) {
	case "auto", "live", "plain":
	default:
		add("practice.ui", fmt.Sprintf("invalid ui mode %q (expected auto|live|plain)", p.UI))
	}
}

func validateTimeout(field string, seconds int, add issueAdder) {
	if seconds <= 0 {
		add(field, "must be > 0")
	} else if seconds > maxTimeoutSeconds {
		add(field, fmt.Sprintf("must be <= %d", maxTimeoutSeconds))
	}
}
