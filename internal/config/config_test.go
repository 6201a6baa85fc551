package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "wpimport.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

const partialConfigYAML = `
url: "https://example.com/wp-json/wp/v2/posts?page=1&per_page=10"
loop: true
featured_image: skip
output:
  dir: "./content/posts"
  format: markdown
fetch:
  timeout_sec: 10
  user_agent: "my-importer/2.0"
`

func TestLoadConfig_OverDefaults(t *testing.T) {
	cfg, err := LoadConfig(createTempConfigFile(t, partialConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.Loop || cfg.FeaturedImage != "skip" {
		t.Errorf("top-level values not loaded: %+v", cfg)
	}
	if cfg.Output.Dir != "./content/posts" || cfg.Output.Format != "markdown" {
		t.Errorf("output not loaded: %+v", cfg.Output)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Output.Layout != "post.njk" || cfg.Output.PermalinkPrefix != "blog/" || cfg.Output.WriteConcurrency != 4 {
		t.Errorf("defaults lost: %+v", cfg.Output)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadConfig(createTempConfigFile(t, "output: [not, a, map]")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.URL = "https://example.com/wp-json/wp/v2/posts?page=1&per_page=1"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing url", mutate: func(c *Config) { c.URL = "" }, wantErr: ErrMissingURL},
		{name: "missing dir", mutate: func(c *Config) { c.Output.Dir = "" }, wantErr: ErrMissingOutputDir},
		{name: "bad format", mutate: func(c *Config) { c.Output.Format = "pdf" }, wantErr: ErrInvalidFormat},
		{name: "bad concurrency", mutate: func(c *Config) { c.Output.WriteConcurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{name: "bad timeout", mutate: func(c *Config) { c.Fetch.TimeoutSec = 0 }, wantErr: ErrInvalidTimeout},
		{name: "bad featured mode", mutate: func(c *Config) { c.FeaturedImage = "ignore" }, wantErr: ErrInvalidFeaturedMode},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
