package emit

import (
	"fmt"
	"strings"
)

// Format is an output encoding for the generator configuration.
type Format string

const (
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatTypeScript Format = "ts"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "ts", "typescript":
		return FormatTypeScript, nil
	}
	return "", fmt.Errorf("unsupported output format: %q (want json, yaml or ts)", s)
}

// DefaultFilename is the file each format is written to unless configured otherwise.
func (f Format) DefaultFilename() string {
	switch f {
	case FormatYAML:
		return "site.config.yaml"
	case FormatTypeScript:
		return "docusaurus.config.ts"
	default:
		return "site.config.json"
	}
}
