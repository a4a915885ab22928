package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edugenie/edugenie/internal/config"
)

// clearConfigEnv unsets all environment variables that Load reads so each
// test starts from a clean slate. t.Setenv restores the originals after the
// test; the Unsetenv makes sure values from the outer process don't leak
// into "defaults" tests. Tests also chdir into an empty temp dir so a stray
// .env file in the working directory can't interfere.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"OPENROUTER_API_KEY",
		"OPENROUTER_MODEL",
		"OPENROUTER_BASE_URL",
		"EDUGENIE_ADDR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// ---------------------------------------------------------------------------
// Required API key
// ---------------------------------------------------------------------------

func TestLoad_MissingAPIKey(t *testing.T) {
	clearConfigEnv(t)

	_, err := config.Load()
	if err == nil {
		t.Fatal("Load() with no API key: expected error, got nil")
	}

	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %T, want *config.ConfigError", err)
	}
	if cfgErr.Var != "OPENROUTER_API_KEY" {
		t.Errorf("ConfigError.Var = %q, want %q", cfgErr.Var, "OPENROUTER_API_KEY")
	}
}

func TestLoad_EmptyAPIKey(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load() with empty API key: expected error, got nil")
	}
}

func TestLoad_WhitespaceAPIKey(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "   \t ")

	var cfgErr *config.ConfigError
	if _, err := config.Load(); !errors.As(err, &cfgErr) {
		t.Fatalf("Load() with whitespace API key: error = %v, want *config.ConfigError", err)
	}
}

func TestLoad_ErrorNamesVariable(t *testing.T) {
	clearConfigEnv(t)

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "OPENROUTER_API_KEY") {
		t.Errorf("error message should name the variable: %q", err.Error())
	}
}

// ---------------------------------------------------------------------------
// Defaults and overrides
// ---------------------------------------------------------------------------

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.APIKey != "sk-or-test" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "sk-or-test")
	}
	if cfg.Model != "openrouter/free" {
		t.Errorf("Model = %q, want %q", cfg.Model, "openrouter/free")
	}
	if cfg.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://openrouter.ai/api/v1")
	}
	if cfg.ServerAddr != ":8501" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, ":8501")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("OPENROUTER_MODEL", "mistralai/mistral-7b-instruct:free")
	t.Setenv("OPENROUTER_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("EDUGENIE_ADDR", ":9000")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Model != "mistralai/mistral-7b-instruct:free" {
		t.Errorf("Model = %q, want override", cfg.Model)
	}
	if cfg.BaseURL != "http://localhost:9999/v1" {
		t.Errorf("BaseURL = %q, want override", cfg.BaseURL)
	}
	if cfg.ServerAddr != ":9000" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, ":9000")
	}
}

func TestLoad_TrimsAPIKey(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "  sk-or-test  ")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.APIKey != "sk-or-test" {
		t.Errorf("APIKey = %q, want trimmed %q", cfg.APIKey, "sk-or-test")
	}
}

// ---------------------------------------------------------------------------
// .env file
// ---------------------------------------------------------------------------

func TestLoad_DotEnvFile(t *testing.T) {
	clearConfigEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "OPENROUTER_API_KEY=sk-from-file\nOPENROUTER_MODEL=file/model\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.APIKey != "sk-from-file" {
		t.Errorf("APIKey = %q, want value from .env", cfg.APIKey)
	}
	if cfg.Model != "file/model" {
		t.Errorf("Model = %q, want value from .env", cfg.Model)
	}
}

func TestLoad_EnvBeatsDotEnv(t *testing.T) {
	clearConfigEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("OPENROUTER_API_KEY=sk-from-file\n"), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("OPENROUTER_API_KEY", "sk-from-env")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want env var to win over .env", cfg.APIKey)
	}
}
