// Package config resolves critpath settings from the environment.
package config

import (
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by every command. Command-line flags
// override the values loaded here.
type Config struct {
	LogLevel       string `env:"CRITPATH_LOG_LEVEL"`    // debug, info, warn, error, disabled
	MergePassLimit int    `env:"CRITPATH_MERGE_PASSES"` // AOA dummy cleanup passes
	TimeUnit       string `env:"CRITPATH_TIME_UNIT"`    // days or weeks, display only
	Workers        int    `env:"CRITPATH_WORKERS"`      // files analyzed concurrently
	NoColor        bool   `env:"NO_COLOR"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		LogLevel:       "warn",
		MergePassLimit: 10,
		TimeUnit:       "days",
		Workers:        runtime.NumCPU(),
	}
}

// Load starts from Default and applies any CRITPATH_* variables set in the
// environment.
func Load() (*Config, error) {
	cfg := Default()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MergePassLimit < 1 {
		return fmt.Errorf("merge pass limit must be at least 1, got %d", c.MergePassLimit)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.TimeUnit {
	case "days", "weeks":
	default:
		return fmt.Errorf("time unit must be days or weeks, got %q", c.TimeUnit)
	}
	return nil
}
