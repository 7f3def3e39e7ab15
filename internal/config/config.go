// Package config loads the optional user configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultDays = 7

// Config holds user defaults for the scan. Flags override every field.
type Config struct {
	SessionsDir string `yaml:"sessions_dir"`
	DefaultDays int    `yaml:"default_days"`
}

// DefaultPath returns the standard config location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "cc-project-stats", "config.yaml"), nil
}

// Load reads the config at path. A missing file yields defaults; malformed
// YAML is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{DefaultDays: defaultDays}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.DefaultDays <= 0 {
		cfg.DefaultDays = defaultDays
	}
	return &cfg, nil
}
