package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"quizform/internal/forms"
	"quizform/internal/llm"
)

// Secrets are the credentials read from the environment at startup.
type Secrets struct {
	LLMAPIKey       string
	CredentialsFile string
}

// LoadEnv loads root/.env into the process environment when it exists.
// Variables that are already set keep their values.
func LoadEnv(root string) error {
	path := filepath.Join(root, EnvFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ResolveSecrets reads credentials from the environment. A configured
// credentials file wins over GOOGLE_APPLICATION_CREDENTIALS and is resolved
// against the workspace root.
func ResolveSecrets(cfg Config, root string, getenv func(string) string) Secrets {
	if getenv == nil {
		getenv = os.Getenv
	}
	secrets := Secrets{
		LLMAPIKey:       strings.TrimSpace(getenv(llm.APIKeyEnv)),
		CredentialsFile: strings.TrimSpace(cfg.Forms.CredentialsFile),
	}
	if secrets.CredentialsFile == "" {
		secrets.CredentialsFile = strings.TrimSpace(getenv(forms.CredentialsEnv))
	}
	secrets.CredentialsFile = ResolvePath(root, secrets.CredentialsFile)
	return secrets
}
