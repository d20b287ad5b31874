// Package config handles resolving configuration.
package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the resolved application configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`
	// Address is the listen address of the HTTP server.
	Address string `koanf:"address" yaml:"address"`
	// DBFilepath is the SQLite database path, or ":memory:".
	DBFilepath string `koanf:"db_filepath" yaml:"db_filepath"`
	// DevMode enables debug conveniences and disables the Secure cookie
	// attribute. Never enable it in production.
	DevMode bool `koanf:"dev_mode" yaml:"dev_mode"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns a configuration with all default values populated.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Address:    "localhost:8800",
		DBFilepath: filepath.Join(xdg.DataHome, "folio", "db.sqlite"),
		DevMode:    false,
	}
}

// Load reads a YAML configuration file from path, merges it over the
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("log_level must be one of %v, got %q", logLevels, c.LogLevel)
	}
	if c.Address == "" {
		return fmt.Errorf("address must be set")
	}
	if c.DBFilepath == "" {
		return fmt.Errorf("db_filepath must be set")
	}
	return nil
}
