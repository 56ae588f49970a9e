package site

// DocsPluginName is the generator plugin that serves one documentation instance.
const DocsPluginName = "@docusaurus/plugin-content-docs"

// Document converts the record into the generator's native configuration shape.
// The result only holds maps, slices, strings and bools so every encoder can
// serialize it deterministically.
func Document(cfg *SiteConfig) map[string]any {
	id := cfg.Identity
	return map[string]any{
		"title":                 id.Title,
		"tagline":               id.Tagline,
		"favicon":               id.Favicon,
		"url":                   id.URL,
		"baseUrl":               id.BaseURL,
		"organizationName":      id.OrganizationName,
		"projectName":           id.ProjectName,
		"onBrokenLinks":         string(cfg.Links.OnBrokenLinks),
		"onBrokenMarkdownLinks": string(cfg.Links.OnBrokenMarkdownLinks),
		"future":                map[string]any{"v4": cfg.Future.V4},
		"i18n": map[string]any{
			"defaultLocale": cfg.I18n.Default,
			"locales":       stringsToAny(cfg.I18n.Locales),
		},
		"plugins":     docsPlugins(cfg.Docs),
		"presets":     []any{[]any{"classic", classicPreset(cfg)}},
		"themeConfig": themeConfig(cfg),
	}
}

func docsPlugins(docs []DocInstance) []any {
	out := make([]any, 0, len(docs))
	for _, d := range docs {
		opts := map[string]any{
			"id":            d.ID,
			"path":          d.Path,
			"routeBasePath": d.RouteBasePath,
			"sidebarPath":   d.SidebarPath,
		}
		if d.EditURL != "" {
			opts["editUrl"] = d.EditURL
		}
		out = append(out, []any{DocsPluginName, opts})
	}
	return out
}

func classicPreset(cfg *SiteConfig) map[string]any {
	preset := map[string]any{
		// Docs are served by the explicit plugin instances.
		"docs": false,
		"blog": false,
	}
	if b := cfg.Blog; b.Enabled {
		blog := map[string]any{
			"path":            b.Path,
			"routeBasePath":   b.RouteBasePath,
			"showReadingTime": b.ShowReadingTime,
		}
		if len(b.FeedTypes) > 0 {
			blog["feedOptions"] = map[string]any{
				"type": stringsToAny(b.FeedTypes),
				"xslt": b.FeedXSLT,
			}
		}
		if b.EditURL != "" {
			blog["editUrl"] = b.EditURL
		}
		setAction(blog, "onInlineTags", b.OnInlineTags)
		setAction(blog, "onInlineAuthors", b.OnInlineAuthors)
		setAction(blog, "onUntruncatedBlogPosts", b.OnUntruncatedBlogPosts)
		preset["blog"] = blog
	}
	if cfg.Theme.CustomCSS != "" {
		preset["theme"] = map[string]any{"customCss": cfg.Theme.CustomCSS}
	}
	return preset
}

func themeConfig(cfg *SiteConfig) map[string]any {
	tc := map[string]any{
		"colorMode": map[string]any{
			"respectPrefersColorScheme": cfg.Theme.RespectPrefersColorScheme,
		},
		"navbar": navbar(cfg.Navbar),
		"footer": footer(cfg.Footer),
	}
	if cfg.Theme.SocialCard != "" {
		tc["image"] = cfg.Theme.SocialCard
	}
	prism := map[string]any{}
	if cfg.Theme.PrismTheme != "" {
		prism["theme"] = cfg.Theme.PrismTheme
	}
	if cfg.Theme.PrismDarkTheme != "" {
		prism["darkTheme"] = cfg.Theme.PrismDarkTheme
	}
	if len(prism) > 0 {
		tc["prism"] = prism
	}
	return tc
}

func navbar(n Navbar) map[string]any {
	items := make([]any, 0, len(n.Items))
	for _, item := range n.Items {
		m := map[string]any{
			"label":    item.Label,
			"position": string(item.Position),
		}
		switch item.Kind {
		case NavSidebarLink:
			m["type"] = string(NavSidebarLink)
			m["sidebarId"] = item.SidebarID
			if item.DocsPluginID != "" {
				m["docsPluginId"] = item.DocsPluginID
			}
		default:
			setLink(m, item.To, item.Href)
		}
		items = append(items, m)
	}
	out := map[string]any{
		"title": n.Title,
		"items": items,
	}
	if n.Logo.Src != "" {
		out["logo"] = map[string]any{"alt": n.Logo.Alt, "src": n.Logo.Src}
	}
	return out
}

func footer(f Footer) map[string]any {
	sections := make([]any, 0, len(f.Sections))
	for _, s := range f.Sections {
		items := make([]any, 0, len(s.Items))
		for _, l := range s.Items {
			m := map[string]any{"label": l.Label}
			setLink(m, l.To, l.Href)
			items = append(items, m)
		}
		sections = append(sections, map[string]any{"title": s.Title, "items": items})
	}
	out := map[string]any{"links": sections}
	if f.Style != "" {
		out["style"] = f.Style
	}
	if f.Copyright != "" {
		out["copyright"] = f.Copyright
	}
	return out
}

func setLink(m map[string]any, to, href string) {
	if to != "" {
		m["to"] = to
	}
	if href != "" {
		m["href"] = href
	}
}

func setAction(m map[string]any, key string, a BrokenLinkAction) {
	if a != "" {
		m[key] = string(a)
	}
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
