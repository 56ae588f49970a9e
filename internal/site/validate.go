package site

import (
	"fmt"
	"net/url"
	"strings"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
)

// Issue is a single validation finding.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// Validate checks the record's invariants and returns a classified validation
// error listing every issue found, or nil.
func Validate(cfg *SiteConfig) error {
	issues := Check(cfg)
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, is := range issues {
		lines[i] = is.String()
	}
	return ferrors.ValidationError("site configuration is invalid").
		WithContext("issues", lines).
		WithContext("count", len(issues)).
		Build()
}

// Check returns all validation issues, in a stable order.
func Check(cfg *SiteConfig) []Issue {
	if cfg == nil {
		return []Issue{{Field: "config", Message: "is nil"}}
	}
	v := &siteValidator{cfg: cfg}
	v.validateIdentity()
	v.validateLinkPolicy()
	v.validateLocales()
	v.validateInstances()
	v.validateBlog()
	v.validateNavbar()
	v.validateFooter()
	v.validateTheme()
	return v.issues
}

type siteValidator struct {
	cfg    *SiteConfig
	issues []Issue
}

func (v *siteValidator) addf(field, format string, args ...any) {
	v.issues = append(v.issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *siteValidator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.addf(field, "must not be empty")
	}
}

func (v *siteValidator) validateIdentity() {
	id := v.cfg.Identity
	v.required("title", id.Title)
	v.required("favicon", id.Favicon)
	v.required("organizationName", id.OrganizationName)
	v.required("projectName", id.ProjectName)

	if id.URL == "" {
		v.addf("url", "must not be empty")
	} else if u, err := url.Parse(id.URL); err != nil || u.Scheme == "" || u.Host == "" {
		v.addf("url", "%q is not an absolute URL", id.URL)
	} else if u.Path != "" && u.Path != "/" {
		v.addf("url", "%q must not carry a path, use baseUrl", id.URL)
	}

	if !strings.HasPrefix(id.BaseURL, "/") || !strings.HasSuffix(id.BaseURL, "/") {
		v.addf("baseUrl", "%q must start and end with /", id.BaseURL)
	}
}

func (v *siteValidator) validateLinkPolicy() {
	if !v.cfg.Links.OnBrokenLinks.Valid() {
		v.addf("onBrokenLinks", "unknown action %q", v.cfg.Links.OnBrokenLinks)
	}
	if !v.cfg.Links.OnBrokenMarkdownLinks.Valid() {
		v.addf("onBrokenMarkdownLinks", "unknown action %q", v.cfg.Links.OnBrokenMarkdownLinks)
	}
}

func (v *siteValidator) validateLocales() {
	i18n := v.cfg.I18n
	if len(i18n.Locales) == 0 {
		v.addf("i18n.locales", "must not be empty")
	}
	seen := make(map[string]bool, len(i18n.Locales))
	for _, l := range i18n.Locales {
		if l == "" {
			v.addf("i18n.locales", "contains an empty locale")
			continue
		}
		if seen[l] {
			v.addf("i18n.locales", "duplicate locale %q", l)
		}
		seen[l] = true
	}
	if i18n.Default == "" {
		v.addf("i18n.defaultLocale", "must not be empty")
	} else if !seen[i18n.Default] {
		v.addf("i18n.defaultLocale", "%q is not among the supported locales", i18n.Default)
	}
}

func (v *siteValidator) validateInstances() {
	ids := make(map[string]bool, len(v.cfg.Docs))
	routes := make(map[string]string, len(v.cfg.Docs))
	for i, d := range v.cfg.Docs {
		field := fmt.Sprintf("docs[%d]", i)
		if d.ID == "" {
			v.addf(field+".id", "must not be empty")
		} else {
			field = "docs[" + d.ID + "]"
			if ids[d.ID] {
				v.addf(field+".id", "duplicate doc instance id %q", d.ID)
			}
			ids[d.ID] = true
		}
		v.required(field+".path", d.Path)
		v.required(field+".sidebarPath", d.SidebarPath)
		if len(d.Sidebars) == 0 {
			v.addf(field+".sidebars", "must declare at least one sidebar id")
		}
		if d.EditURL != "" {
			if u, err := url.Parse(d.EditURL); err != nil || u.Scheme == "" || u.Host == "" {
				v.addf(field+".editUrl", "%q is not an absolute URL", d.EditURL)
			}
		}

		if strings.HasPrefix(d.RouteBasePath, "/") {
			v.addf(field+".routeBasePath", "%q must not start with /", d.RouteBasePath)
		}
		route := routeKey(d.RouteBasePath)
		if route == "" {
			v.addf(field+".routeBasePath", "must not be empty")
			continue
		}
		if other, ok := routes[route]; ok {
			v.addf(field+".routeBasePath", "route %q collides with doc instance %q", d.RouteBasePath, other)
			continue
		}
		routes[route] = d.ID
	}
	if v.cfg.Blog.Enabled {
		if owner, ok := routes[routeKey(v.cfg.Blog.RouteBasePath)]; ok {
			v.addf("blog.routeBasePath", "route %q collides with doc instance %q", v.cfg.Blog.RouteBasePath, owner)
		}
	}
}

func (v *siteValidator) validateBlog() {
	b := v.cfg.Blog
	if !b.Enabled {
		return
	}
	v.required("blog.path", b.Path)
	if routeKey(b.RouteBasePath) == "" {
		v.addf("blog.routeBasePath", "must not be empty")
	}
	for _, t := range b.FeedTypes {
		if t != "rss" && t != "atom" && t != "json" {
			v.addf("blog.feedOptions.type", "unknown feed type %q", t)
		}
	}
	policies := []struct {
		field  string
		action BrokenLinkAction
	}{
		{"blog.onInlineTags", b.OnInlineTags},
		{"blog.onInlineAuthors", b.OnInlineAuthors},
		{"blog.onUntruncatedBlogPosts", b.OnUntruncatedBlogPosts},
	}
	for _, p := range policies {
		if p.action != "" && !p.action.Valid() {
			v.addf(p.field, "unknown action %q", p.action)
		}
	}
}

func (v *siteValidator) validateNavbar() {
	for i, item := range v.cfg.Navbar.Items {
		field := fmt.Sprintf("navbar.items[%d]", i)
		v.required(field+".label", item.Label)
		if item.Position != PositionLeft && item.Position != PositionRight {
			v.addf(field+".position", "%q must be left or right", item.Position)
		}
		switch item.Kind {
		case NavSidebarLink:
			inst, ok := v.cfg.Instance(item.InstanceID())
			if !ok {
				v.addf(field+".docsPluginId", "unknown doc instance %q", item.InstanceID())
				continue
			}
			if !inst.HasSidebar(item.SidebarID) {
				v.addf(field+".sidebarId", "sidebar %q is not declared by doc instance %q", item.SidebarID, inst.ID)
			}
		case NavPlainLink:
			if (item.To == "") == (item.Href == "") {
				v.addf(field, "plain link needs exactly one of to or href")
			}
		default:
			v.addf(field+".type", "unknown nav item kind %q", item.Kind)
		}
	}
}

func (v *siteValidator) validateFooter() {
	f := v.cfg.Footer
	if f.Style != "" && f.Style != "dark" && f.Style != "light" {
		v.addf("footer.style", "%q must be dark or light", f.Style)
	}
	for i, s := range f.Sections {
		field := fmt.Sprintf("footer.links[%d]", i)
		v.required(field+".title", s.Title)
		if len(s.Items) == 0 {
			v.addf(field+".items", "must not be empty")
		}
		for j, item := range s.Items {
			itemField := fmt.Sprintf("%s.items[%d]", field, j)
			v.required(itemField+".label", item.Label)
			if (item.To == "") == (item.Href == "") {
				v.addf(itemField, "footer link needs exactly one of to or href")
			}
		}
	}
}

func (v *siteValidator) validateTheme() {
	t := v.cfg.Theme
	if t.PrismTheme != "" && !KnownPrismTheme(t.PrismTheme) {
		v.addf("prism.theme", "unknown prism theme %q", t.PrismTheme)
	}
	if t.PrismDarkTheme != "" && !KnownPrismTheme(t.PrismDarkTheme) {
		v.addf("prism.darkTheme", "unknown prism theme %q", t.PrismDarkTheme)
	}
}

// routeKey normalizes a route base path for collision checks.
func routeKey(route string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(route), "/"))
}

var prismThemes = map[string]bool{
	"dracula": true, "duotoneDark": true, "duotoneLight": true, "github": true,
	"gruvboxMaterialDark": true, "gruvboxMaterialLight": true, "jettwaveDark": true,
	"jettwaveLight": true, "nightOwl": true, "nightOwlLight": true, "oceanicNext": true,
	"okaidia": true, "oneDark": true, "oneLight": true, "palenight": true, "shadesOfPurple": true,
	"synthwave84": true, "ultramin": true, "vsDark": true, "vsLight": true,
}

// KnownPrismTheme reports whether name is a theme exported by prism-react-renderer.
func KnownPrismTheme(name string) bool {
	return prismThemes[name]
}
