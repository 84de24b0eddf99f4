// Package config loads optional defaults for the search command from a
// YAML file. Flags always override file values; a missing file yields the
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the persistent defaults a user may set once instead of
// repeating them on every invocation.
type Config struct {
	// Color is the default color mode: auto, always, or never.
	Color string `yaml:"color"`

	// ShowErrors enables per-entry error reporting by default.
	ShowErrors bool `yaml:"show_errors"`

	// Excludes are glob patterns always excluded from traversal results.
	Excludes []string `yaml:"excludes"`

	// Extensions restricts searches to these file extensions when set.
	Extensions []string `yaml:"extensions"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		Color: "auto",
	}
}

// DefaultPath returns the user-level config file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "search", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "search", "config.yaml")
}

// Load reads config from path, returning defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	switch cfg.Color {
	case "", "auto", "always", "never":
	default:
		return nil, fmt.Errorf("%s: color must be one of \"auto\", \"always\", or \"never\", got %q", path, cfg.Color)
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}

	return cfg, nil
}
