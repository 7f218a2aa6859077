// Package config loads and validates the quizform workspace configuration.
package config

// Config is the root of .quizform/config.yml.
type Config struct {
	Version    int              `yaml:"version"`
	Generation GenerationConfig `yaml:"generation"`
	Forms      FormsConfig      `yaml:"forms"`
	Practice   PracticeConfig   `yaml:"practice"`
	Results    ResultsConfig    `yaml:"results"`
	Serve      ServeConfig      `yaml:"serve"`
}

// GenerationConfig selects the text-generation provider and defaults for
// the generate command.
type GenerationConfig struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	DefaultCount   int    `yaml:"default_count"`
	DefaultStyle   string `yaml:"default_style"`
}

// FormsConfig configures the Google Forms client.
type FormsConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	DefaultTitle    string `yaml:"default_title"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	ResponsesFile   string `yaml:"responses_file"`
}

// PracticeConfig holds practice defaults.
type PracticeConfig struct {
	DefaultMinutes int    `yaml:"default_minutes"`
	UI             string `yaml:"ui"`
}

// ResultsConfig controls the results database.
type ResultsConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// ServeConfig configures the report server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}
