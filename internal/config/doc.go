// Package config handles configuration loading for kb-console.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults; running without a
// config file at all is supported via LoadOrDefault.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from KB_CONSOLE_CONFIG environment variable
//  2. ./kb-console.yaml (current directory)
//  3. ~/.config/kb-console/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	gateway:
//	  base_url: "${KB_GATEWAY_URL}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Gateway connection:
//
//	gateway:
//	  base_url: "http://localhost:8000/api"
//	  timeout: "30s"
//
// Local state (persisted session + preferences):
//
//	state:
//	  path: "~/.local/share/kb-console/state.db"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// Terminal UI:
//
//	ui:
//	  theme: "light"  # light, dark
//	  color: true
//
// # Validation
//
// Load() validates:
//
//   - gateway.base_url is present
//   - state.path is present
//   - logging.level / logging.format / ui.theme enum values
//   - Duration format validity
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(config.Path())
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
