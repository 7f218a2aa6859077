package config

import (
	"strings"

	"quizform/internal/llm"
	"quizform/internal/practice"
)

// Defaults applied by Normalize.
const (
	DefaultProvider        = llm.ProviderGemini
	DefaultTimeoutSeconds  = 60
	DefaultFormsTimeout    = 30
	DefaultCount           = 5
	DefaultStyle           = "mixed"
	DefaultTitle           = "Test Form"
	DefaultResponsesFile   = "responses.csv"
	DefaultUIMode          = "auto"
	DefaultResultsDBPath   = ".quizform/results.duckdb"
	DefaultServeAddr       = "127.0.0.1:8080"
	DefaultPracticeMinutes = practice.DefaultMinutes
	maxTimeoutSeconds      = 600
)

// Normalize fills unset fields with defaults.
func Normalize(cfg *Config) {
	gen := &cfg.Generation
	gen.Provider = strings.ToLower(strings.TrimSpace(gen.Provider))
	if gen.Provider == "" {
		gen.Provider = DefaultProvider
	}
	if strings.TrimSpace(gen.Model) == "" {
		gen.Model = llm.DefaultModel(gen.Provider)
	}
	if gen.TimeoutSeconds == 0 {
		gen.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if gen.DefaultCount == 0 {
		gen.DefaultCount = DefaultCount
	}
	if strings.TrimSpace(gen.DefaultStyle) == "" {
		gen.DefaultStyle = DefaultStyle
	}

	if strings.TrimSpace(cfg.Forms.DefaultTitle) == "" {
		cfg.Forms.DefaultTitle = DefaultTitle
	}
	if cfg.Forms.TimeoutSeconds == 0 {
		cfg.Forms.TimeoutSeconds = DefaultFormsTimeout
	}
	if strings.TrimSpace(cfg.Forms.ResponsesFile) == "" {
		cfg.Forms.ResponsesFile = DefaultResponsesFile
	}

	if cfg.Practice.DefaultMinutes == 0 {
		cfg.Practice.DefaultMinutes = DefaultPracticeMinutes
	}
	if strings.TrimSpace(cfg.Practice.UI) == "" {
		cfg.Practice.UI = DefaultUIMode
	}

	if strings.TrimSpace(cfg.Results.DBPath) == "" {
		cfg.Results.DBPath = DefaultResultsDBPath
	}
	if strings.TrimSpace(cfg.Serve.Addr) == "" {
		cfg.Serve.Addr = DefaultServeAddr
	}
}
