package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultConfig = `version: 1

generation:
  provider: "gemini"
  model: "gemini-1.5-flash-latest"
  timeout_seconds: 60
  default_count: 5
  default_style: "mixed"

forms:
  # Service-account key file. GOOGLE_APPLICATION_CREDENTIALS is used when empty.
  credentials_file: ""
  default_title: "Test Form"
  timeout_seconds: 30
  responses_file: "responses.csv"

practice:
  default_minutes: 10
  ui: "auto"

results:
  enabled: true
  db_path: "{{results_db}}"

serve:
  addr: "127.0.0.1:8080"
`

const defaultEnv = `# Secrets for quizform. Keep this file out of version control.
QUIZFORM_LLM_API_KEY=
GOOGLE_APPLICATION_CREDENTIALS=
`

// RenderScaffoldConfig returns the starter config for a results database path.
func RenderScaffoldConfig(resultsDB string) string {
	if strings.TrimSpace(resultsDB) == "" {
		resultsDB = DefaultResultsDBPath
	}
	return strings.ReplaceAll(defaultConfig, "{{results_db}}", filepath.ToSlash(resultsDB))
}

// Scaffold writes a starter config and an empty .env next to the workspace
// root. Existing files are never overwritten.
func Scaffold(configPath, resultsDB string) ([]string, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if err := ensureAbsent(configPath); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(RenderScaffoldConfig(resultsDB)), 0o644); err != nil {
		return nil, fmt.Errorf("write config file: %w", err)
	}
	written := []string{configPath}

	envPath := filepath.Join(RootFromConfigPath(configPath), EnvFileName)
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		if err := os.WriteFile(envPath, []byte(defaultEnv), 0o600); err != nil {
			return written, fmt.Errorf("write env file: %w", err)
		}
		written = append(written, envPath)
	} else if err != nil {
		return written, fmt.Errorf("stat env file: %w", err)
	}
	return written, nil
}

func ensureAbsent(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return fmt.Errorf("config file already exists at %q", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return nil
}
