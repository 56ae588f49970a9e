package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/site"
)

// CurrentVersion is the only configuration version this build understands.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file looked up when no --config flag is given.
const DefaultPath = "docsite.yaml"

// Config is the tool configuration. It never describes the site itself; the site record is
// built in code and only deployment values are overridable here.
type Config struct {
	Version string         `yaml:"version"`
	Root    string         `yaml:"root"`
	Output  OutputConfig   `yaml:"output"`
	Site    site.Overrides `yaml:"site,omitempty"`
	Watch   WatchConfig    `yaml:"watch,omitempty"`

	// path is the file the configuration was read from; empty when defaults were used.
	path string
}

// OutputConfig controls where and how the generator configuration is emitted.
type OutputConfig struct {
	Directory   string `yaml:"directory,omitempty"` // Relative to Root; empty means Root
	Format      string `yaml:"format"`              // json, yaml or ts
	Filename    string `yaml:"filename,omitempty"`  // Empty selects the format's default
	StampCommit bool   `yaml:"stamp_commit,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"` // Prometheus textfile, written after generate
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"`
	Interval string `yaml:"interval,omitempty"` // Periodic regeneration; empty disables
}

// Path is the file the configuration was loaded from, or "" for built-in defaults.
func (c *Config) Path() string { return c.path }

// OutputDir resolves the output directory against the site root.
func (c *Config) OutputDir() string {
	if c.Output.Directory == "" {
		return c.Root
	}
	if filepath.IsAbs(c.Output.Directory) {
		return c.Output.Directory
	}
	return filepath.Join(c.Root, c.Output.Directory)
}

// DebounceDuration parses watch.debounce. Validation guarantees it parses.
func (c *Config) DebounceDuration() time.Duration {
	d, _ := time.ParseDuration(c.Watch.Debounce)
	return d
}

// IntervalDuration parses watch.interval; zero means periodic regeneration is off.
func (c *Config) IntervalDuration() time.Duration {
	if c.Watch.Interval == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Watch.Interval)
	return d
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg
}

// Load reads, expands, defaults and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	// #nosec G304 -- configPath comes from the command line
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError(fmt.Sprintf("configuration file not found: %s", configPath)).
				WithContext("path", configPath).
				WithRetry(ferrors.RetryUserAction).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).
			WithContext("path", configPath).
			Build()
	}

	cfg.path = configPath
	applyDefaults(&cfg)
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(configPath), cfg.Root)
	}
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if err == nil {
		return cfg, nil
	}
	if ferrors.HasCategory(err, ferrors.CategoryNotFound) {
		slog.Debug("Configuration file not found, using defaults", slog.String("path", configPath))
		cfg = Default()
		if verr := Validate(cfg); verr != nil {
			return nil, verr
		}
		return cfg, nil
	}
	return nil, err
}
