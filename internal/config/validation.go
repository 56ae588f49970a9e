package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lianghchao/docsite/internal/emit"
	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
)

// minInterval keeps periodic regeneration from spinning.
const minInterval = time.Second

// Validate checks the configuration and returns a classified config error listing every problem.
func Validate(cfg *Config) error {
	cv := &configurationValidator{config: cfg}
	cv.validateOutput()
	cv.validateSite()
	cv.validateWatch()
	if len(cv.issues) == 0 {
		return nil
	}
	return ferrors.ConfigError("configuration validation failed").
		WithContext("issues", cv.issues).
		WithContext("path", cfg.path).
		Build()
}

type configurationValidator struct {
	config *Config
	issues []string
}

func (cv *configurationValidator) addf(format string, args ...any) {
	cv.issues = append(cv.issues, fmt.Sprintf(format, args...))
}

func (cv *configurationValidator) validateOutput() {
	out := cv.config.Output
	if _, err := emit.ParseFormat(out.Format); err != nil {
		cv.addf("output.format: %v", err)
	}
	if strings.ContainsAny(out.Filename, `/\`) {
		cv.addf("output.filename: must be a file name, not a path: %q", out.Filename)
	}
	if strings.TrimSpace(cv.config.Root) == "" {
		cv.addf("root: must not be empty")
	}
}

func (cv *configurationValidator) validateSite() {
	s := cv.config.Site
	if s.URL != "" {
		u, err := url.Parse(s.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			cv.addf("site.url: must be an absolute URL: %q", s.URL)
		} else if strings.Trim(u.Path, "/") != "" {
			cv.addf("site.url: must not contain a path (use site.base_url): %q", s.URL)
		}
	}
	if s.EditURL != "" {
		u, err := url.Parse(s.EditURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			cv.addf("site.edit_url: must be an absolute URL: %q", s.EditURL)
		}
	}
	if strings.ContainsAny(s.BaseURL, "?# ") {
		cv.addf("site.base_url: must be a plain path: %q", s.BaseURL)
	}
}

func (cv *configurationValidator) validateWatch() {
	w := cv.config.Watch
	if w.Debounce != "" {
		d, err := time.ParseDuration(w.Debounce)
		if err != nil {
			cv.addf("watch.debounce: invalid duration %q", w.Debounce)
		} else if d < 0 {
			cv.addf("watch.debounce: must not be negative")
		}
	}
	if w.Interval != "" {
		d, err := time.ParseDuration(w.Interval)
		if err != nil {
			cv.addf("watch.interval: invalid duration %q", w.Interval)
		} else if d < minInterval {
			cv.addf("watch.interval: must be at least %s", minInterval)
		}
	}
}
