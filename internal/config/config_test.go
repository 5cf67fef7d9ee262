// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
gateway:
  base_url: "http://kb.internal:8000/api"
  timeout: "45s"

state:
  path: "./state.db"

logging:
  level: "debug"
  format: "json"

ui:
  theme: "dark"
  color: false
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify gateway config with duration parsing
	if cfg.Gateway.BaseURL != "http://kb.internal:8000/api" {
		t.Errorf("Gateway.BaseURL = %q, want %q", cfg.Gateway.BaseURL, "http://kb.internal:8000/api")
	}
	if cfg.Gateway.Timeout != 45*time.Second {
		t.Errorf("Gateway.Timeout = %v, want %v", cfg.Gateway.Timeout, 45*time.Second)
	}

	// Verify state config
	if cfg.State.Path != "./state.db" {
		t.Errorf("State.Path = %q, want %q", cfg.State.Path, "./state.db")
	}

	// Verify logging config
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}

	// Verify UI config
	if cfg.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q, want %q", cfg.UI.Theme, "dark")
	}
	if cfg.UI.Color {
		t.Error("UI.Color = true, want false")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_KB_GATEWAY_URL", "http://from-env:8000/api")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
gateway:
  base_url: "${TEST_KB_GATEWAY_URL}"

state:
  path: "./state.db"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gateway.BaseURL != "http://from-env:8000/api" {
		t.Errorf("Gateway.BaseURL = %q, want %q", cfg.Gateway.BaseURL, "http://from-env:8000/api")
	}
}

func TestLoad_EnvVarExpansion_UnsetVar(t *testing.T) {
	// Ensure the env var is NOT set
	os.Unsetenv("UNSET_VAR_FOR_TEST")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
gateway:
  base_url: "${UNSET_VAR_FOR_TEST}"

state:
  path: "./state.db"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Unset env var expands to empty string, which fails validation
	_, err = Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for empty base_url, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "gateway.base_url is required") {
		t.Errorf("Load() error = %q, want error containing %q", err.Error(), "gateway.base_url is required")
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Only override the gateway URL; everything else should default
	configContent := `
gateway:
  base_url: "http://kb.internal:8000/api"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gateway.Timeout != DefaultTimeout {
		t.Errorf("Gateway.Timeout = %v, want default %v", cfg.Gateway.Timeout, DefaultTimeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want default %q", cfg.Logging.Format, "text")
	}
	if cfg.State.Path == "" {
		t.Error("State.Path is empty, want a default path")
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q, want default %q", cfg.UI.Theme, "light")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}

	if cfg.Gateway.BaseURL != "http://localhost:8000/api" {
		t.Errorf("Gateway.BaseURL = %q, want default", cfg.Gateway.BaseURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Invalid YAML content
	configContent := `
gateway:
  base_url: "http://localhost:8000/api"
  timeout "missing colon"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err = Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
gateway:
  base_url: "http://localhost:8000/api"
  timeout: "invalid-duration"

state:
  path: "./state.db"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err = Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid duration, got nil")
	}
}

func TestLoad_InvalidEnumValues(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		wantErrSubstr string
	}{
		{
			name: "invalid logging level",
			configContent: `
gateway:
  base_url: "http://localhost:8000/api"
state:
  path: "./state.db"
logging:
  level: "verbose"
`,
			wantErrSubstr: "logging.level",
		},
		{
			name: "invalid logging format",
			configContent: `
gateway:
  base_url: "http://localhost:8000/api"
state:
  path: "./state.db"
logging:
  format: "xml"
`,
			wantErrSubstr: "logging.format",
		},
		{
			name: "invalid theme",
			configContent: `
gateway:
  base_url: "http://localhost:8000/api"
state:
  path: "./state.db"
ui:
  theme: "solarized"
`,
			wantErrSubstr: "ui.theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")

			err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
			if err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err = Load(configPath)
			if err == nil {
				t.Errorf("Load() expected error containing %q, got nil", tt.wantErrSubstr)
				return
			}

			if !strings.Contains(err.Error(), tt.wantErrSubstr) {
				t.Errorf("Load() error = %q, want error containing %q", err.Error(), tt.wantErrSubstr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FOO", "bar")
	t.Setenv("BAZ", "qux")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single env var",
			input:    "${FOO}",
			expected: "bar",
		},
		{
			name:     "env var with surrounding text",
			input:    "prefix-${FOO}-suffix",
			expected: "prefix-bar-suffix",
		},
		{
			name:     "multiple env vars",
			input:    "${FOO}/${BAZ}",
			expected: "bar/qux",
		},
		{
			name:     "no env vars",
			input:    "no-vars-here",
			expected: "no-vars-here",
		},
		{
			name:     "unset env var",
			input:    "${UNSET_VAR}",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnvVars(tt.input)
			if result != tt.expected {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
