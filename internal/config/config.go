// Package config provides configuration management for the importer.
// Values come from an optional YAML file and are then overridden by flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingURL          = errors.New("url is required (--url or url in the config file)")
	ErrMissingOutputDir    = errors.New("output.dir is required")
	ErrInvalidFormat       = errors.New("output.format must be 'html' or 'markdown'")
	ErrInvalidConcurrency  = errors.New("output.write_concurrency must be at least 1")
	ErrInvalidTimeout      = errors.New("fetch.timeout_sec must be at least 1")
	ErrInvalidFeaturedMode = errors.New("featured_image must be one of: abort, skip, omit")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete importer configuration.
type Config struct {
	URL           string        `yaml:"url"`
	Loop          bool          `yaml:"loop"`
	SaveImages    bool          `yaml:"save_images"`
	FeaturedImage string        `yaml:"featured_image"`
	Output        OutputConfig  `yaml:"output"`
	Fetch         FetchConfig   `yaml:"fetch"`
	Logging       LoggingConfig `yaml:"logging"`
}

// OutputConfig defines where and how post files are written.
type OutputConfig struct {
	Dir              string `yaml:"dir"`
	Format           string `yaml:"format"`
	Extension        string `yaml:"extension"`
	Layout           string `yaml:"layout"`
	PermalinkPrefix  string `yaml:"permalink_prefix"`
	WriteConcurrency int    `yaml:"write_concurrency"`
}

// FetchConfig defines HTTP behavior.
type FetchConfig struct {
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		FeaturedImage: "abort",
		Output: OutputConfig{
			Dir:              "src/blog",
			Format:           "html",
			Extension:        ".njk",
			Layout:           "post.njk",
			PermalinkPrefix:  "blog/",
			WriteConcurrency: 4,
		},
		Fetch: FetchConfig{
			TimeoutSec: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file over the defaults. It does not validate;
// flags may still fill in required values.
func LoadConfig(filepath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrMissingURL
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Output.Format != "html" && c.Output.Format != "markdown" {
		return ErrInvalidFormat
	}

	if c.Output.WriteConcurrency < 1 {
		return ErrInvalidConcurrency
	}

	if c.Fetch.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	switch c.FeaturedImage {
	case "abort", "skip", "omit":
	default:
		return ErrInvalidFeaturedMode
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// Timeout returns the HTTP timeout duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{URL: %s, Loop: %t, Output: %s (%s)}",
		c.URL,
		c.Loop,
		c.Output.Dir,
		c.Output.Format,
	)
}
