package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that take precedence over the configuration file.
const (
	EnvSiteURL = "DOCSITE_URL"
	EnvBaseURL = "DOCSITE_BASE_URL"
)

// envFiles are tried in order; the first one that loads wins.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads KEY=VALUE pairs from the first readable .env file.
// Existing process environment variables are not overwritten.
func loadEnvFile() {
	for _, path := range envFiles {
		err := godotenv.Load(path)
		if err == nil {
			slog.Debug("Loaded environment variables", slog.String("path", path))
			return
		}
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to load env file", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvSiteURL)); v != "" {
		cfg.Site.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.Site.BaseURL = v
	}
}
