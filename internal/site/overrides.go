package site

import "strings"

// Overrides are deployment-specific values applied on top of the canonical record.
// Empty fields leave the record untouched.
type Overrides struct {
	URL     string `yaml:"url,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	EditURL string `yaml:"edit_url,omitempty"`
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return o.URL == "" && o.BaseURL == "" && o.EditURL == ""
}

// ApplyOverrides returns a copy of cfg with the overrides applied.
func ApplyOverrides(cfg *SiteConfig, o Overrides) *SiteConfig {
	out := cfg.Clone()
	if o.URL != "" {
		out.Identity.URL = strings.TrimSuffix(o.URL, "/")
	}
	if o.BaseURL != "" {
		out.Identity.BaseURL = normalizeBaseURL(o.BaseURL)
	}
	if o.EditURL != "" {
		edit := strings.TrimSuffix(o.EditURL, "/")
		for i := range out.Docs {
			out.Docs[i].EditURL = edit
		}
		if out.Blog.Enabled {
			out.Blog.EditURL = edit
		}
	}
	return out
}

// normalizeBaseURL forces the "/x/" shape the generator expects.
func normalizeBaseURL(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return "/"
	}
	return "/" + s + "/"
}
