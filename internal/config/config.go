// Package config loads the server configuration from a YAML file, falling
// back to code defaults when no file is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DataDir holds the SQLite database.
	DataDir string `yaml:"data_dir"`

	// SyncIntervalHours is the batch sync period.
	SyncIntervalHours int `yaml:"sync_interval_hours"`

	// CheckoutTime is the local "HH:MM" used for cleaning-job preferred
	// dates (guests check out, the cleaner arrives).
	CheckoutTime string `yaml:"checkout_time"`

	// FetchTimeoutSeconds bounds each calendar fetch attempt.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`

	// FetchAttempts is the retry budget for a calendar fetch.
	FetchAttempts int `yaml:"fetch_attempts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:              ":8099",
		DataDir:             "/data",
		SyncIntervalHours:   6,
		CheckoutTime:        "10:00",
		FetchTimeoutSeconds: 30,
		FetchAttempts:       3,
	}
}

// Load reads configuration from path. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize pulls out-of-range values back to defaults.
func (c *Config) normalize() {
	def := Default()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.SyncIntervalHours <= 0 {
		c.SyncIntervalHours = def.SyncIntervalHours
	}
	if c.CheckoutTime == "" {
		c.CheckoutTime = def.CheckoutTime
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
	if c.FetchAttempts <= 0 {
		c.FetchAttempts = def.FetchAttempts
	}
}

// SyncInterval returns the batch sync period as a duration.
func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalHours) * time.Hour
}

// FetchTimeout returns the per-attempt fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
