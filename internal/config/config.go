// Package config provides environment-driven configuration for EduGenie.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultModel is the model used when OPENROUTER_MODEL is unset.
	DefaultModel = "openrouter/free"
	// DefaultBaseURL is the OpenRouter endpoint used when
	// OPENROUTER_BASE_URL is unset.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultAddr is the listen address used when EDUGENIE_ADDR is unset.
	DefaultAddr = ":8501"
)

// Config holds all configuration for the EduGenie server. It is built once
// at startup and never modified afterwards.
type Config struct {
	// APIKey is the OpenRouter secret, sent as a bearer credential.
	APIKey string

	// Model is the model identifier requested on every completion.
	Model string

	// BaseURL is the OpenAI-compatible endpoint base URL.
	BaseURL string

	// ServerAddr is the address the HTTP server listens on (e.g. ":8501").
	ServerAddr string
}

// ConfigError reports a fatal configuration problem. It names the offending
// variable and never includes its value.
type ConfigError struct {
	Var    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Var, e.Reason)
}

// Load reads a .env file if one exists (values there never override real
// environment variables) and builds the configuration. The API key is
// required; a missing, empty, or whitespace-only value is a *ConfigError.
func Load() (*Config, error) {
	// godotenv only sets variables that are not already present in the
	// environment, so env vars always win over the .env file.
	_ = godotenv.Load()

	apiKey := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	if apiKey == "" {
		return nil, &ConfigError{
			Var:    "OPENROUTER_API_KEY",
			Reason: "must be set to a non-empty value",
		}
	}

	return &Config{
		APIKey:     apiKey,
		Model:      envOr("OPENROUTER_MODEL", DefaultModel),
		BaseURL:    envOr("OPENROUTER_BASE_URL", DefaultBaseURL),
		ServerAddr: envOr("EDUGENIE_ADDR", DefaultAddr),
	}, nil
}

// envOr returns the trimmed value of key, or fallback when the variable is
// unset or blank.
func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
