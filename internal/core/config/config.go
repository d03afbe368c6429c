// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sharo-jef/checklist-sub001/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Theme    string         `yaml:"theme"`
	Content  ContentConfig  `yaml:"content"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ContentConfig selects which checklist content the app loads.
type ContentConfig struct {
	// DisableBuiltin drops the bundled checklists, leaving only user files.
	DisableBuiltin bool `yaml:"disable_builtin"`
	// Paths are extra content files, as literal paths or doublestar globs.
	// A leading ~ expands to the user's home directory.
	Paths []string `yaml:"paths"`
}

// DatabaseConfig tunes the sqlite connection.
type DatabaseConfig struct {
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		Database: DatabaseConfig{
			BusyTimeoutMS: 5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Database.BusyTimeoutMS == 0 {
		c.Database.BusyTimeoutMS = defaults.Database.BusyTimeoutMS
	}
}

// expandPaths resolves a leading ~ in content paths.
func (c *Config) expandPaths() {
	for i, path := range c.Content.Paths {
		if len(path) > 0 && path[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				continue
			}
			c.Content.Paths[i] = filepath.Join(home, path[1:])
		}
	}
}
