// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration. Values come from the
// environment with the SHELLMAN_ prefix.
type Config struct {
	Browser BrowserConfig
	Logging LogConfig
}

// BrowserConfig holds the file browser settings.
type BrowserConfig struct {
	// StartDir is the directory opened at startup; empty means the user's
	// home directory.
	StartDir string `envconfig:"START_DIR" default:""`
	// TrashDir is the soft-delete staging area; empty means
	// ~/.shellman_trash.
	TrashDir string `envconfig:"TRASH_DIR" default:""`
	// ShowHidden controls whether dotfiles are listed by default.
	ShowHidden bool `envconfig:"SHOW_HIDDEN" default:"false"`
	// ProbeTimeout bounds the wait on the version-status subprocess.
	ProbeTimeout time.Duration `envconfig:"PROBE_TIMEOUT" default:"2s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("SHELLMAN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			ProbeTimeout: 2 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
