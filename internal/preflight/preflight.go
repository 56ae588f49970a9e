// Package preflight verifies that the files a site configuration refers to exist under the
// site root. The site record itself never touches the file system; this is the opt-in check
// run before handing the configuration to the generator.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/site"
)

// StaticDir holds assets the generator copies verbatim; image paths are relative to it.
const StaticDir = "static"

// Severity indicates whether a finding blocks a build.
type Severity int

const (
	// SeverityWarning marks assets whose absence degrades the site but does not break the build.
	SeverityWarning Severity = iota
	// SeverityError marks paths the generator cannot build without.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Kind classifies what is wrong with a path.
type Kind string

const (
	KindMissing      Kind = "missing"
	KindNotDirectory Kind = "not_directory"
	KindNotFile      Kind = "not_file"
)

// Finding is one problem with the site root.
type Finding struct {
	Kind     Kind
	Severity Severity
	Path     string // Relative to the site root
	Field    string // Configuration field that names the path
	Instance string // Doc instance id, empty for site-wide assets
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s %s (%s)", f.Field, f.Path, f.Kind, f.Severity)
}

// Report is the outcome of Check.
type Report struct {
	Root     string
	Checked  int
	Findings []Finding
}

// HasErrors returns true if any error-level finding exists.
func (r *Report) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level findings.
func (r *Report) ErrorCount() int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level findings.
func (r *Report) WarningCount() int {
	return len(r.Findings) - r.ErrorCount()
}

// Err returns a classified filesystem error when the report has error-level findings.
func (r *Report) Err() error {
	if !r.HasErrors() {
		return nil
	}
	issues := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			issues = append(issues, f.String())
		}
	}
	return ferrors.FileSystemError(fmt.Sprintf("site root %s does not satisfy the configuration", r.Root)).
		WithRetry(ferrors.RetryUserAction).
		WithContext("issues", issues).
		WithContext("root", r.Root).
		Build()
}

type expectation struct {
	path     string
	field    string
	instance string
	dir      bool
	severity Severity
}

// Check verifies every path cfg depends on, relative to root.
func Check(root string, cfg *site.SiteConfig) *Report {
	report := &Report{Root: root}
	for _, exp := range expectations(cfg) {
		report.Checked++
		if f, ok := probe(root, exp); !ok {
			report.Findings = append(report.Findings, f)
		}
	}
	return report
}

func expectations(cfg *site.SiteConfig) []expectation {
	var out []expectation
	for _, inst := range cfg.Docs {
		out = append(out, expectation{
			path: inst.Path, field: fmt.Sprintf("docs[%s].path", inst.ID),
			instance: inst.ID, dir: true, severity: SeverityError,
		})
		if inst.SidebarPath != "" {
			out = append(out, expectation{
				path: inst.SidebarPath, field: fmt.Sprintf("docs[%s].sidebarPath", inst.ID),
				instance: inst.ID, severity: SeverityError,
			})
		}
	}
	if cfg.Blog.Enabled {
		out = append(out, expectation{path: cfg.Blog.Path, field: "blog.path", dir: true, severity: SeverityError})
	}
	if cfg.Theme.CustomCSS != "" {
		out = append(out, expectation{path: cfg.Theme.CustomCSS, field: "theme.customCss", severity: SeverityError})
	}
	for _, asset := range []struct{ field, path string }{
		{"favicon", cfg.Identity.Favicon},
		{"navbar.logo.src", cfg.Navbar.Logo.Src},
		{"themeConfig.image", cfg.Theme.SocialCard},
	} {
		if asset.path == "" {
			continue
		}
		out = append(out, expectation{
			path: filepath.Join(StaticDir, filepath.FromSlash(asset.path)), field: asset.field,
			severity: SeverityWarning,
		})
	}
	return out
}

func probe(root string, exp expectation) (Finding, bool) {
	rel := filepath.Clean(filepath.FromSlash(exp.path))
	finding := Finding{
		Severity: exp.severity,
		Path:     filepath.ToSlash(rel),
		Field:    exp.field,
		Instance: exp.instance,
	}

	info, err := os.Stat(filepath.Join(root, rel))
	switch {
	case err != nil:
		finding.Kind = KindMissing
		return finding, false
	case exp.dir && !info.IsDir():
		finding.Kind = KindNotDirectory
		return finding, false
	case !exp.dir && info.IsDir():
		finding.Kind = KindNotFile
		return finding, false
	}
	return Finding{}, true
}
