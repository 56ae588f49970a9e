package config

import "github.com/lianghchao/docsite/internal/emit"

const (
	defaultRoot     = "."
	defaultFormat   = emit.FormatTypeScript
	defaultDebounce = "500ms"
)

// applyDefaults fills every unset field with its default value.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Root == "" {
		cfg.Root = defaultRoot
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = string(defaultFormat)
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce
	}
}
