// Package inventory lists the Markdown pages each documentation instance and the blog will
// publish, with the route the generator serves them under.
package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/logfields"
	"github.com/lianghchao/docsite/internal/site"
)

// BlogInstance is the instance name used for blog posts.
const BlogInstance = "blog"

var markdownExts = map[string]bool{".md": true, ".mdx": true}

// Page is one published Markdown file.
type Page struct {
	Instance    string // Doc instance id or BlogInstance
	Source      string // Relative to the site root, slash separated
	ID          string // Document id; empty for blog posts
	Title       string
	Route       string
	Fingerprint string
	Draft       bool
}

// Inventory is the result of Scan, pages ordered by instance then source path.
type Inventory struct {
	Root      string
	Instances []string // Scanned instances in order, including ones without pages
	Pages     []Page
}

// InstanceSummary counts the pages of one instance.
type InstanceSummary struct {
	Instance string
	Pages    int
	Drafts   int
	Untitled int
}

// Scan walks every doc instance and, when enabled, the blog directory below root.
// Missing content directories are logged and treated as empty.
func Scan(root string, cfg *site.SiteConfig) (*Inventory, error) {
	inv := &Inventory{Root: root}

	for _, inst := range cfg.Docs {
		inv.Instances = append(inv.Instances, inst.ID)
		pages, err := scanDir(root, inst.Path, inst.ID, func(rel string, fields map[string]any) (string, string) {
			id := docID(rel, stringField(fields, "id"))
			slug := docSlug(rel, stringField(fields, "slug"))
			return id, joinRoute(cfg.Identity.BaseURL, inst.RouteBasePath, slug)
		})
		if err != nil {
			return nil, err
		}
		inv.Pages = append(inv.Pages, pages...)
	}

	if cfg.Blog.Enabled {
		inv.Instances = append(inv.Instances, BlogInstance)
		pages, err := scanDir(root, cfg.Blog.Path, BlogInstance, func(rel string, fields map[string]any) (string, string) {
			return "", joinRoute(cfg.Identity.BaseURL, cfg.Blog.RouteBasePath, blogSlug(rel, stringField(fields, "slug")))
		})
		if err != nil {
			return nil, err
		}
		inv.Pages = append(inv.Pages, pages...)
	}

	return inv, nil
}

type locateFunc func(rel string, fields map[string]any) (id, route string)

func scanDir(root, dir, instance string, locate locateFunc) ([]Page, error) {
	base := filepath.Join(root, filepath.FromSlash(dir))
	if _, err := os.Stat(base); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Content directory missing, skipping",
			logfields.Instance(instance),
			logfields.Path(base))
		return nil, nil
	}

	var pages []Page
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p != base && strings.HasPrefix(d.Name(), "_") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !markdownExts[strings.ToLower(filepath.Ext(p))] {
			return nil
		}

		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		page, err := readPage(p, filepath.ToSlash(rel), locate)
		if err != nil {
			return err
		}
		page.Instance = instance
		page.Source = path.Join(dir, filepath.ToSlash(rel))
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		if ferrors.IsClassified(err) {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to scan content directory").
			WithContext("instance", instance).
			WithContext("path", base).
			Build()
	}

	slog.Debug("Scanned content directory",
		logfields.Instance(instance),
		logfields.Path(base),
		logfields.Count(len(pages)))
	return pages, nil
}

func readPage(file, rel string, locate locateFunc) (Page, error) {
	// #nosec G304 -- file is found by walking the configured content directory
	content, err := os.ReadFile(file)
	if err != nil {
		return Page{}, err
	}

	block, body, err := splitFrontMatter(content)
	if err != nil {
		return Page{}, pageError(err, file)
	}
	fields, err := parseFrontMatter(block)
	if err != nil {
		return Page{}, pageError(err, file)
	}
	fp, err := fingerprint(fields, body)
	if err != nil {
		return Page{}, pageError(err, file)
	}

	title := stringField(fields, "title")
	if title == "" {
		title = firstHeading(body)
	}
	id, route := locate(rel, fields)

	return Page{
		ID:          id,
		Title:       title,
		Route:       route,
		Fingerprint: fp,
		Draft:       boolField(fields, "draft"),
	}, nil
}

func pageError(err error, file string) error {
	return ferrors.WrapError(err, ferrors.CategoryValidation, fmt.Sprintf("invalid front matter in %s", file)).
		WithContext("path", file).
		Build()
}

// Instance returns the pages of one instance in scan order.
func (inv *Inventory) Instance(id string) []Page {
	var out []Page
	for _, p := range inv.Pages {
		if p.Instance == id {
			out = append(out, p)
		}
	}
	return out
}

// Summary returns per-instance counts in scan order. Instances without pages are
// listed with zero counts.
func (inv *Inventory) Summary() []InstanceSummary {
	out := make([]InstanceSummary, 0, len(inv.Instances))
	index := make(map[string]int, len(inv.Instances))
	for _, id := range inv.Instances {
		if _, ok := index[id]; ok {
			continue
		}
		index[id] = len(out)
		out = append(out, InstanceSummary{Instance: id})
	}
	for _, p := range inv.Pages {
		i, ok := index[p.Instance]
		if !ok {
			i = len(out)
			index[p.Instance] = i
			out = append(out, InstanceSummary{Instance: p.Instance})
		}
		out[i].Pages++
		if p.Draft {
			out[i].Drafts++
		}
		if p.Title == "" {
			out[i].Untitled++
		}
	}
	return out
}

// DuplicateRoutes maps every route served by more than one page to those pages' sources.
func (inv *Inventory) DuplicateRoutes() map[string][]string {
	seen := map[string][]string{}
	for _, p := range inv.Pages {
		seen[p.Route] = append(seen[p.Route], p.Source)
	}
	dups := map[string][]string{}
	for route, sources := range seen {
		if len(sources) > 1 {
			dups[route] = sources
		}
	}
	return dups
}
