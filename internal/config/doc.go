// Package config loads the docsite tool configuration (docsite.yaml).
//
// The file only carries deployment concerns: where the site root lives, how and where the
// generator configuration is emitted, URL overrides and watch timings. ${VAR} references are
// expanded from the environment, which is seeded from .env or .env.local when present.
package config
