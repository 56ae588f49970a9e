package site

import (
	"slices"
	"strings"
)

// Clone returns a deep copy of the record.
func (c *SiteConfig) Clone() *SiteConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.I18n.Locales = slices.Clone(c.I18n.Locales)
	out.Docs = slices.Clone(c.Docs)
	for i := range out.Docs {
		out.Docs[i].Sidebars = slices.Clone(out.Docs[i].Sidebars)
	}
	out.Blog.FeedTypes = slices.Clone(c.Blog.FeedTypes)
	out.Navbar.Items = slices.Clone(c.Navbar.Items)
	out.Footer.Sections = slices.Clone(c.Footer.Sections)
	for i := range out.Footer.Sections {
		out.Footer.Sections[i].Items = slices.Clone(out.Footer.Sections[i].Items)
	}
	return &out
}

// Instance looks up a doc instance by id.
func (c *SiteConfig) Instance(id string) (DocInstance, bool) {
	for _, d := range c.Docs {
		if d.ID == id {
			return d, true
		}
	}
	return DocInstance{}, false
}

// InstanceIDs returns doc instance ids in declaration order.
func (c *SiteConfig) InstanceIDs() []string {
	ids := make([]string, 0, len(c.Docs))
	for _, d := range c.Docs {
		ids = append(ids, d.ID)
	}
	return ids
}

// SidebarLinks returns the navbar items that point at a doc sidebar.
func (c *SiteConfig) SidebarLinks() []NavItem {
	var out []NavItem
	for _, item := range c.Navbar.Items {
		if item.Kind == NavSidebarLink {
			out = append(out, item)
		}
	}
	return out
}

// RoutePrefix returns the absolute URL path an instance is served under, e.g. "/docs/javadoc/".
func (c *SiteConfig) RoutePrefix(routeBasePath string) string {
	base := strings.TrimSuffix(c.Identity.BaseURL, "/")
	route := strings.Trim(routeBasePath, "/")
	if route == "" {
		return base + "/"
	}
	return base + "/" + route + "/"
}
