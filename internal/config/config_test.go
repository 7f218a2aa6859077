package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{Version: 1}
	Normalize(&cfg)
	return cfg
}

func writeConfig(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if cfg.Generation.Provider != "gemini" || cfg.Generation.Model != "gemini-1.5-flash-latest" {
		t.Fatalf("unexpected generation defaults: %+v", cfg.Generation)
	}
	if cfg.Generation.DefaultCount != 5 || cfg.Forms.DefaultTitle != "Test Form" || cfg.Practice.DefaultMinutes != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := Validate(&cfg); err != nil {
		t.Fatalf("defaults should validate, got %v", err)
	}
}

func TestNormalizeProviderModel(t *testing.T) {
	cfg := Config{Version: 1, Generation: GenerationConfig{Provider: " OpenAI "}}
	Normalize(&cfg)
	if cfg.Generation.Provider != "openai" || cfg.Generation.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected provider defaults: %+v", cfg.Generation)
	}
}

func TestValidateCollectsIssues(t *testing.T) {
	cfg := validConfig()
	cfg.Version = 2
	cfg.Generation.Provider = "claude"
	cfg.Generation.DefaultCount = 51
	cfg.Generation.DefaultStyle = "essay"
	cfg.Generation.BaseURL = "ftp://example"
	cfg.Forms.TimeoutSeconds = -1
	cfg.Practice.DefaultMinutes = 121
	cfg.Practice.UI = "fancy"

	err := Validate(&cfg)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, field := range []string{
		"version",
		"generation.provider",
		"generation.default_count",
		"generation.default_style",
		"generation.base_url",
		"forms.timeout_seconds",
		"practice.default_minutes",
		"practice.ui",
	} {
		if !fields[field] {
			t.Fatalf("missing issue for %s in %v", field, err)
		}
	}
}

func TestParseConfigStrict(t *testing.T) {
	if _, err := ParseConfig([]byte("version: 1\nunknown: true\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := ParseConfig([]byte("version: 1\n---\nversion: 1\n")); err == nil || !strings.Contains(err.Error(), "multiple") {
		t.Fatalf("expected multiple document error, got %v", err)
	}
	if _, err := ParseConfig(nil); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestScaffoldLoads(t *testing.T) {
	root := t.TempDir()
	written, err := Scaffold(ConfigPath(root), "")
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected config and env files, got %v", written)
	}
	cfg, err := Load(ConfigPath(root))
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if !cfg.Results.Enabled || cfg.Results.DBPath != DefaultResultsDBPath {
		t.Fatalf("unexpected results config %+v", cfg.Results)
	}
	if _, err := Scaffold(ConfigPath(root), ""); err == nil {
		t.Fatalf("scaffold must not overwrite an existing config")
	}
}

func TestFindConfigPathSearchesUpward(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\n")
	nested := filepath.Join(root, "docs", "chapter1")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find config: %v", err)
	}
	want, _ := filepath.EvalSymlinks(path)
	got, _ := filepath.EvalSymlinks(found)
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if RootFromConfigPath(found) != filepath.Dir(filepath.Dir(found)) {
		t.Fatalf("unexpected root for %s", found)
	}
}

func TestFindConfigPathMissingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := FindConfigPath(root); err == nil || !strings.Contains(err.Error(), "config.yml is missing") {
		t.Fatalf("expected missing config error, got %v", err)
	}
}

func TestResolveSecrets(t *testing.T) {
	env := map[string]string{
		"QUIZFORM_LLM_API_KEY":           " key-123 ",
		"GOOGLE_APPLICATION_CREDENTIALS": "/abs/sa.json",
	}
	getenv := func(key string) string { return env[key] }

	cfg := validConfig()
	secrets := ResolveSecrets(cfg, "/work", getenv)
	if secrets.LLMAPIKey != "key-123" || secrets.CredentialsFile != "/abs/sa.json" {
		t.Fatalf("unexpected secrets %+v", secrets)
	}

	cfg.Forms.CredentialsFile = "keys/sa.json"
	secrets = ResolveSecrets(cfg, "/work", getenv)
	if secrets.CredentialsFile != filepath.Join("/work", "keys", "sa.json") {
		t.Fatalf("config path should win and resolve against root, got %q", secrets.CredentialsFile)
	}
}

func TestLoadEnvKeepsExistingValues(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, EnvFileName), []byte("QUIZFORM_TEST_A=from-file\nQUIZFORM_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("QUIZFORM_TEST_A", "from-process")
	t.Setenv("QUIZFORM_TEST_B", "")
	os.Unsetenv("QUIZFORM_TEST_B")
	if err := LoadEnv(root); err != nil {
		t.Fatalf("load env: %v", err)
	}
	if got := os.Getenv("QUIZFORM_TEST_A"); got != "from-process" {
		t.Fatalf("existing variable overwritten: %q", got)
	}
	if got := os.Getenv("QUIZFORM_TEST_B"); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
	if err := LoadEnv(t.TempDir()); err != nil {
		t.Fatalf("missing .env should be ignored, got %v", err)
	}
}
