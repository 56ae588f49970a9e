package emit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/logfields"
	"github.com/lianghchao/docsite/internal/site"
)

// Writer renders a site configuration into a file inside dir.
type Writer struct {
	dir      string
	filename string
	opts     Options
	// stamp holds the custom field keys that describe the checkout rather than the site.
	stamp []string
}

// Result describes one Write.
type Result struct {
	Path    string
	Bytes   int
	Changed bool
}

// Drift describes emitted output that no longer matches the configuration.
type Drift struct {
	Path string
	Diff string
}

// NewWriter creates a writer; an empty filename selects the format's default.
func NewWriter(dir string, format Format, filename string) *Writer {
	if format == "" {
		format = FormatJSON
	}
	if filename == "" {
		filename = format.DefaultFilename()
	}
	return &Writer{dir: dir, filename: filename, opts: Options{Format: format}}
}

// WithCustomFields returns a copy of the writer that stamps fields into the output.
func (w *Writer) WithCustomFields(fields map[string]any) *Writer {
	clone := *w
	clone.opts.CustomFields = fields
	return &clone
}

// WithStamp returns a copy of the writer that adds fields to customFields like
// WithCustomFields, but Check takes their values from the emitted file.
// Stamps change with every commit and never count as drift.
func (w *Writer) WithStamp(fields map[string]any) *Writer {
	merged := make(map[string]any, len(w.opts.CustomFields)+len(fields))
	for k, v := range w.opts.CustomFields {
		merged[k] = v
	}
	clone := *w
	clone.stamp = append([]string(nil), w.stamp...)
	for k, v := range fields {
		merged[k] = v
		clone.stamp = append(clone.stamp, k)
	}
	clone.opts.CustomFields = merged
	return &clone
}

// Path is the file the writer targets.
func (w *Writer) Path() string {
	return filepath.Join(w.dir, w.filename)
}

// Format is the writer's output format.
func (w *Writer) Format() Format {
	return w.opts.Format
}

// Write renders cfg and atomically replaces the target file. Identical content is not rewritten.
func (w *Writer) Write(cfg *site.SiteConfig) (Result, error) {
	path := w.Path()
	data, err := Render(cfg, w.opts)
	if err != nil {
		return Result{}, err
	}

	// #nosec G304 -- path is the configured output file
	if existing, readErr := os.ReadFile(path); readErr == nil && bytes.Equal(existing, data) {
		slog.Debug("Site configuration unchanged", logfields.Path(path))
		return Result{Path: path, Bytes: len(data), Changed: false}, nil
	}

	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return Result{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
			WithContext("dir", w.dir).Build()
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return Result{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create pending output file").
			WithContext("path", path).Build()
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			slog.Debug("Cleanup pending output file", logfields.Error(err))
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return Result{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write output file").
			WithContext("path", path).Build()
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return Result{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to replace output file").
			WithContext("path", path).Build()
	}

	slog.Info("Generated site configuration",
		logfields.Path(path),
		logfields.Format(string(w.opts.Format)),
		slog.Int("bytes", len(data)))
	return Result{Path: path, Bytes: len(data), Changed: true}, nil
}

// Check compares the emitted file with a fresh rendering of cfg. It returns nil
// when they are equivalent. JSON and YAML output is compared structurally, so
// formatting-only edits are not drift.
func (w *Writer) Check(cfg *site.SiteConfig) (*Drift, error) {
	path := w.Path()
	// #nosec G304 -- path is the configured output file
	got, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("emitted configuration not found; run generate first").
				WithContext("path", path).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read emitted configuration").
			WithContext("path", path).Build()
	}

	want, err := Render(cfg, w.checkOptions(got))
	if err != nil {
		return nil, err
	}

	diff, err := w.diff(got, want)
	if err != nil {
		return nil, err
	}
	if diff == "" {
		return nil, nil
	}
	return &Drift{Path: path, Diff: diff}, nil
}

// checkOptions returns the render options for comparing against existing, with
// stamp fields carrying the values already emitted. A stamp absent from the
// file is dropped from the expectation.
func (w *Writer) checkOptions(existing []byte) Options {
	if len(w.stamp) == 0 {
		return w.opts
	}
	emitted := emittedCustomFields(w.opts.Format, existing)

	fields := make(map[string]any, len(w.opts.CustomFields))
	for k, v := range w.opts.CustomFields {
		fields[k] = v
	}
	for _, k := range w.stamp {
		if v, ok := emitted[k]; ok {
			fields[k] = v
		} else {
			delete(fields, k)
		}
	}
	opts := w.opts
	opts.CustomFields = fields
	return opts
}

var prismReference = regexp.MustCompile(`\bprismThemes\.([A-Za-z0-9]+)`)

// emittedCustomFields parses the customFields object out of a previously emitted
// file. Unparseable content yields nil; the diff reports it.
func emittedCustomFields(format Format, data []byte) map[string]any {
	var doc map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil
		}
	case FormatTypeScript:
		body, ok := bytes.CutPrefix(data, []byte(tsHeader))
		if !ok {
			return nil
		}
		if body, ok = bytes.CutSuffix(body, []byte(tsFooter)); !ok {
			return nil
		}
		body = prismReference.ReplaceAll(body, []byte(`"@@prismThemes.$1@@"`))
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil
		}
	}
	fields, _ := doc["customFields"].(map[string]any)
	return fields
}

func (w *Writer) diff(got, want []byte) (string, error) {
	switch w.opts.Format {
	case FormatJSON:
		var g, wn any
		if err := json.Unmarshal(got, &g); err != nil {
			return fmt.Sprintf("existing file is not valid JSON: %v", err), nil
		}
		if err := json.Unmarshal(want, &wn); err != nil {
			return "", ferrors.WrapError(err, ferrors.CategoryInternal, "rendered JSON does not parse").Build()
		}
		return cmp.Diff(g, wn), nil
	case FormatYAML:
		var g, wn any
		if err := yaml.Unmarshal(got, &g); err != nil {
			return fmt.Sprintf("existing file is not valid YAML: %v", err), nil
		}
		if err := yaml.Unmarshal(want, &wn); err != nil {
			return "", ferrors.WrapError(err, ferrors.CategoryInternal, "rendered YAML does not parse").Build()
		}
		return cmp.Diff(g, wn), nil
	default:
		return cmp.Diff(strings.Split(string(got), "\n"), strings.Split(string(want), "\n")), nil
	}
}
