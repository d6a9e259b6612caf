// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Paths
	Property    string `json:"property,omitempty"`    // Path to property data JSON file
	Preferences string `json:"preferences,omitempty"` // Path to buyer preferences JSON file

	// AI provider
	Provider string `json:"provider,omitempty"` // Provider name: ollama, openai, anthropic, gemini
	Model    string `json:"model,omitempty"`    // Model override for the chosen provider
	BaseURL  string `json:"base_url,omitempty"` // Endpoint override (local server / gateways)
	APIKey   string `json:"api_key,omitempty"`  // Credential for hosted providers

	// Behavior
	TimeoutSeconds int  `json:"timeout_seconds,omitempty"` // Per-call network timeout
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed debug information
}

// Environment variable names read by FromEnv. Per-vendor credentials follow
// each vendor's conventional name.
const (
	EnvProvider     = "AI_PROVIDER"
	EnvModel        = "AI_MODEL"
	EnvOllamaURL    = "OLLAMA_BASE_URL"
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvGeminiKey    = "GEMINI_API_KEY"
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills empty fields from the environment. File/flag values win;
// the environment is the fallback. The credential is picked per provider.
func (c *Config) FromEnv() {
	if c.Provider == "" {
		c.Provider = os.Getenv(EnvProvider)
	}
	if c.Model == "" {
		c.Model = os.Getenv(EnvModel)
	}
	if c.BaseURL == "" && c.Provider == "ollama" {
		c.BaseURL = os.Getenv(EnvOllamaURL)
	}
	if c.APIKey == "" {
		switch c.Provider {
		case "openai":
			c.APIKey = os.Getenv(EnvOpenAIKey)
		case "anthropic":
			c.APIKey = os.Getenv(EnvAnthropicKey)
		case "gemini":
			c.APIKey = os.Getenv(EnvGeminiKey)
		}
	}
}

// Validate checks that the configuration has valid values.
// Provider-specific requirements (credentials) are enforced by the provider
// constructors, not here.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}

	if c.Property != "" {
		if _, err := os.Stat(c.Property); os.IsNotExist(err) {
			return fmt.Errorf("config error: property file not found: %s", c.Property)
		}
	}

	if c.Preferences != "" {
		if _, err := os.Stat(c.Preferences); os.IsNotExist(err) {
			return fmt.Errorf("config error: preferences file not found: %s", c.Preferences)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Property == "" {
		result.Property = defaults.Property
	}
	if result.Preferences == "" {
		result.Preferences = defaults.Preferences
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
