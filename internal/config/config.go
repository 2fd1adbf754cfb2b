// Package config loads the worklock TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level TOML structure.
type Config struct {
	// ValidateEdits guards manual period inserts against sequence errors.
	// Turning it off is the "dangerous edits" escape hatch.
	ValidateEdits bool           `toml:"validate_edits" mapstructure:"validate_edits"`
	Database      DatabaseConfig `toml:"database" mapstructure:"database"`
	Log           LogConfig      `toml:"log" mapstructure:"log"`
	Refresh       RefreshConfig  `toml:"refresh" mapstructure:"refresh"`
	Report        ReportConfig   `toml:"report" mapstructure:"report"`
}

type DatabaseConfig struct {
	Path string `toml:"path" mapstructure:"path"`
}

// LogConfig follows lumberjack rotation semantics.
type LogConfig struct {
	Dir        string `toml:"dir" mapstructure:"dir"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `toml:"compress" mapstructure:"compress"`
}

// RefreshConfig tunes the background recomputation of today's totals.
type RefreshConfig struct {
	InitialDelay time.Duration `toml:"initial_delay" mapstructure:"initial_delay"`
	Interval     time.Duration `toml:"interval" mapstructure:"interval"`
}

// ReportConfig controls which columns the day/month reports include.
type ReportConfig struct {
	IncludeManual bool `toml:"include_manual" mapstructure:"include_manual"`
	IncludeErrors bool `toml:"include_errors" mapstructure:"include_errors"`
	IncludePause  bool `toml:"include_pause" mapstructure:"include_pause"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ValidateEdits: true,
		Refresh: RefreshConfig{
			InitialDelay: 500 * time.Millisecond,
			Interval:     30 * time.Second,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".worklock", "config.toml"), nil
}

// Load reads the TOML file at path on top of the defaults. A missing file
// is not an error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
