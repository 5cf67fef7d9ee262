// ABOUTME: Configuration loading and parsing for kb-console
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete kb-console configuration
type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	State   StateConfig   `yaml:"state"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// GatewayConfig holds connection settings for the backend gateway
type GatewayConfig struct {
	BaseURL string `yaml:"base_url"`

	Timeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TimeoutRaw string `yaml:"timeout"`
}

// StateConfig holds local persistence configuration
type StateConfig struct {
	// Path to the sqlite database holding the persisted session and
	// user preferences.
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// UIConfig holds terminal UI configuration
type UIConfig struct {
	Theme string `yaml:"theme"` // "light" or "dark"
	Color bool   `yaml:"color"`
}

// DefaultTimeout is applied when gateway.timeout is not set.
// Matches the shared HTTP client timeout of the web front end.
const DefaultTimeout = 30 * time.Second

// Default returns a configuration populated with defaults, suitable for
// running against a local backend without a config file.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: DefaultTimeout,
		},
		State: StateConfig{
			Path: filepath.Join(DataDir(), "state.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		UI: UIConfig{
			Theme: "light",
			Color: true,
		},
	}
}

// Path returns the config file path to load.
// Priority: KB_CONSOLE_CONFIG env var > ./kb-console.yaml > ~/.config/kb-console/config.yaml
func Path() string {
	if envPath := os.Getenv("KB_CONSOLE_CONFIG"); envPath != "" {
		return envPath
	}

	if _, err := os.Stat("kb-console.yaml"); err == nil {
		return "kb-console.yaml"
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "kb-console.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "kb-console", "config.yaml")
}

// DataDir returns the directory for durable client state.
// Priority: XDG_DATA_HOME/kb-console > ~/.local/share/kb-console
func DataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "kb-console")
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config at path if it exists, otherwise returns defaults.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway.base_url is required")
	}

	if c.State.Path == "" {
		return fmt.Errorf("state.path is required")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json (got %q)", c.Logging.Format)
	}

	switch c.UI.Theme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("ui.theme must be light or dark (got %q)", c.UI.Theme)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Gateway.TimeoutRaw != "" {
		timeout, err := time.ParseDuration(cfg.Gateway.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing gateway.timeout %q: %w", cfg.Gateway.TimeoutRaw, err)
		}
		cfg.Gateway.Timeout = timeout
	}

	if cfg.Gateway.Timeout == 0 {
		cfg.Gateway.Timeout = DefaultTimeout
	}

	return nil
}
