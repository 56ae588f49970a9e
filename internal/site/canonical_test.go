package site

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestBuild_CanonicalRecordIsValid(t *testing.T) {
	cfg := Build()
	require.NoError(t, Validate(cfg))
	require.Empty(t, Check(cfg))
}

func TestBuild_Literals(t *testing.T) {
	cfg := BuildAt(fixedNow)

	require.Equal(t, "LiangHChao的个人博客项目", cfg.Identity.Title)
	require.Equal(t, "/docs/", cfg.Identity.BaseURL)
	require.Equal(t, "https://lianghchao.github.io", cfg.Identity.URL)
	require.Len(t, cfg.Docs, 3)
	require.Equal(t, []string{"default", "javadoc", "sqlDoc"}, cfg.InstanceIDs())
	require.Equal(t, "Copyright © 2025 My Project, Inc. Built with Docusaurus.", cfg.Footer.Copyright)
}

func TestBuild_FooterPreservesDeclarationOrder(t *testing.T) {
	cfg := BuildAt(fixedNow)

	titles := make([]string, 0, len(cfg.Footer.Sections))
	for _, s := range cfg.Footer.Sections {
		titles = append(titles, s.Title)
	}
	require.Equal(t, []string{"Docs", "Learn More", "More"}, titles)
	require.Equal(t, "RuoYi-Plus", cfg.Footer.Sections[1].Items[0].Label)
	require.Equal(t, "no-ip", cfg.Footer.Sections[1].Items[1].Label)
}

func TestBuild_DefaultLocaleIsSupported(t *testing.T) {
	cfg := Build()
	require.Contains(t, cfg.I18n.Locales, cfg.I18n.Default)
}

func TestBuild_InstanceIDsAndRoutesUnique(t *testing.T) {
	cfg := Build()

	ids := map[string]bool{}
	routes := map[string]bool{routeKey(cfg.Blog.RouteBasePath): true}
	for _, d := range cfg.Docs {
		require.False(t, ids[d.ID], "duplicate id %s", d.ID)
		ids[d.ID] = true
		require.False(t, routes[routeKey(d.RouteBasePath)], "route collision %s", d.RouteBasePath)
		routes[routeKey(d.RouteBasePath)] = true
	}
}

func TestBuild_SidebarLinksResolve(t *testing.T) {
	cfg := Build()
	links := cfg.SidebarLinks()
	require.Len(t, links, 3)
	for _, item := range links {
		inst, ok := cfg.Instance(item.InstanceID())
		require.True(t, ok, "instance %s", item.InstanceID())
		require.True(t, inst.HasSidebar(item.SidebarID), "sidebar %s", item.SidebarID)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := BuildAt(fixedNow)
	b := BuildAt(fixedNow)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("BuildAt not deterministic (-first +second):\n%s", diff)
	}
	require.NotSame(t, a, b)

	if diff := cmp.Diff(Build(), Build()); diff != "" {
		t.Fatalf("Build not deterministic (-first +second):\n%s", diff)
	}
}

func TestClone_IsDeep(t *testing.T) {
	orig := BuildAt(fixedNow)
	c := orig.Clone()

	c.Docs[0].Sidebars[0] = "changed"
	c.Footer.Sections[0].Items[0].Label = "changed"
	c.Navbar.Items[0].Label = "changed"
	c.I18n.Locales[0] = "fr"

	require.Equal(t, "tutorialSidebar", orig.Docs[0].Sidebars[0])
	require.Equal(t, "文档", orig.Footer.Sections[0].Items[0].Label)
	require.Equal(t, "文档", orig.Navbar.Items[0].Label)
	require.Equal(t, "en", orig.I18n.Locales[0])
	require.Nil(t, (*SiteConfig)(nil).Clone())
}

func TestClone_KeepsNilSlices(t *testing.T) {
	sparse := &SiteConfig{Identity: SiteIdentity{Title: "sparse"}}
	c := sparse.Clone()
	require.Nil(t, c.Docs)
	require.Nil(t, c.Footer.Sections)
	require.Nil(t, c.Navbar.Items)
	require.True(t, reflect.DeepEqual(sparse, ApplyOverrides(sparse, Overrides{})))

	withEmpty := BuildAt(fixedNow)
	withEmpty.Docs = []DocInstance{}
	require.NotNil(t, withEmpty.Clone().Docs)
}

func TestRoutePrefix(t *testing.T) {
	cfg := BuildAt(fixedNow)
	require.Equal(t, "/docs/javadoc/", cfg.RoutePrefix("javadoc"))
	require.Equal(t, "/docs/", cfg.RoutePrefix(""))

	cfg.Identity.BaseURL = "/"
	require.Equal(t, "/blog/", cfg.RoutePrefix("/blog/"))
}

func TestApplyOverrides(t *testing.T) {
	orig := BuildAt(fixedNow)

	t.Run("zero overrides copy", func(t *testing.T) {
		out := ApplyOverrides(orig, Overrides{})
		require.True(t, Overrides{}.IsZero())
		require.Empty(t, cmp.Diff(orig, out))
	})

	t.Run("values applied without touching original", func(t *testing.T) {
		out := ApplyOverrides(orig, Overrides{
			URL:     "https://docs.example.com/",
			BaseURL: "preview",
			EditURL: "https://git.example.com/docs/edit/main/",
		})
		require.Equal(t, "https://docs.example.com", out.Identity.URL)
		require.Equal(t, "/preview/", out.Identity.BaseURL)
		for _, d := range out.Docs {
			require.Equal(t, "https://git.example.com/docs/edit/main", d.EditURL)
		}
		require.Equal(t, "https://git.example.com/docs/edit/main", out.Blog.EditURL)
		require.Equal(t, "/docs/", orig.Identity.BaseURL)
		require.NoError(t, Validate(out))
	})

	t.Run("root base url", func(t *testing.T) {
		out := ApplyOverrides(orig, Overrides{BaseURL: "/"})
		require.Equal(t, "/", out.Identity.BaseURL)
	})
}
