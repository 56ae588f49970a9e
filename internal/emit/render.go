package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/site"
)

// Options control rendering beyond the record itself.
type Options struct {
	Format Format
	// CustomFields is emitted under the generator's customFields key when non-empty.
	CustomFields map[string]any
}

const tsHeader = `// Code generated by docsite. DO NOT EDIT.
import {themes as prismThemes} from 'prism-react-renderer';
import type {Config} from '@docusaurus/types';

const config: Config = `

const tsFooter = `;

export default config;
`

var prismSentinel = regexp.MustCompile(`"@@prismThemes\.([A-Za-z0-9]+)@@"`)

// Render returns the deterministic bytes for cfg in the requested format.
func Render(cfg *site.SiteConfig, opts Options) ([]byte, error) {
	doc := site.Document(cfg)
	if len(opts.CustomFields) > 0 {
		doc["customFields"] = opts.CustomFields
	}

	switch opts.Format {
	case FormatJSON, "":
		return renderJSON(doc)
	case FormatYAML:
		return renderYAML(doc)
	case FormatTypeScript:
		return renderTypeScript(doc)
	}
	return nil, ferrors.RenderError(fmt.Sprintf("unsupported output format %q", opts.Format)).Build()
}

func renderJSON(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, "failed to encode JSON config").Build()
	}
	return buf.Bytes(), nil
}

func renderYAML(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		_ = enc.Close()
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, "failed to encode YAML config").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, "failed to flush YAML config").Build()
	}
	return buf.Bytes(), nil
}

// renderTypeScript emits a config module. Prism themes are references into
// prism-react-renderer rather than strings, so they are swapped for sentinels
// before encoding and rewritten afterwards.
func renderTypeScript(doc map[string]any) ([]byte, error) {
	if tc, ok := doc["themeConfig"].(map[string]any); ok {
		if prism, ok := tc["prism"].(map[string]any); ok {
			for k, v := range prism {
				if name, ok := v.(string); ok && site.KnownPrismTheme(name) {
					prism[k] = "@@prismThemes." + name + "@@"
				}
			}
		}
	}
	body, err := renderJSON(doc)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimRight(body, "\n")
	body = prismSentinel.ReplaceAll(body, []byte("prismThemes.$1"))

	out := make([]byte, 0, len(tsHeader)+len(body)+len(tsFooter))
	out = append(out, tsHeader...)
	out = append(out, body...)
	out = append(out, tsFooter...)
	return out, nil
}
