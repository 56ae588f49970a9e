package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lianghchao/docsite/internal/emit"
	"github.com/lianghchao/docsite/internal/metrics"
	"github.com/lianghchao/docsite/internal/site"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	JSON bool `name:"json" help:"Print the generator document as JSON instead of tables"`
}

func (s *ShowCmd) Run(global *Global, root *CLI) error {
	ctx := global.context(context.Background(), "show")

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	sc, err := buildSite(ctx, cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}

	out := global.out()
	if s.JSON {
		data, err := emit.Render(sc, emit.Options{Format: emit.FormatJSON})
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	renderIdentity(out, sc)
	renderInstances(out, sc)
	renderNavbar(out, sc)
	renderFooter(out, sc)
	return nil
}

func renderIdentity(out io.Writer, sc *site.SiteConfig) {
	t := newTable(out, "Site", "Field", "Value")
	t.AppendRow([]any{"title", sc.Identity.Title})
	t.AppendRow([]any{"tagline", sc.Identity.Tagline})
	t.AppendRow([]any{"url", sc.Identity.URL})
	t.AppendRow([]any{"baseUrl", sc.Identity.BaseURL})
	t.AppendRow([]any{"organization", sc.Identity.OrganizationName})
	t.AppendRow([]any{"project", sc.Identity.ProjectName})
	t.AppendRow([]any{"locales", fmt.Sprintf("%s (default %s)", strings.Join(sc.I18n.Locales, ", "), sc.I18n.Default)})
	t.AppendRow([]any{"blog", blogSummary(sc)})
	t.Render()
}

func blogSummary(sc *site.SiteConfig) string {
	if !sc.Blog.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("%s -> %s", sc.Blog.Path, sc.RoutePrefix(sc.Blog.RouteBasePath))
}

func renderInstances(out io.Writer, sc *site.SiteConfig) {
	t := newTable(out, "Documentation instances", "ID", "Path", "Route", "Sidebar file", "Sidebars")
	for _, d := range sc.Docs {
		t.AppendRow([]any{d.ID, d.Path, sc.RoutePrefix(d.RouteBasePath), orDash(d.SidebarPath), strings.Join(d.Sidebars, ", ")})
	}
	t.Render()
}

func renderNavbar(out io.Writer, sc *site.SiteConfig) {
	t := newTable(out, "Navbar: "+sc.Navbar.Title, "#", "Label", "Kind", "Target", "Position")
	for i, item := range sc.Navbar.Items {
		t.AppendRow([]any{i + 1, item.Label, string(item.Kind), navTarget(item), string(item.Position)})
	}
	t.Render()
}

func navTarget(item site.NavItem) string {
	if item.Kind == site.NavSidebarLink {
		return item.InstanceID() + "/" + item.SidebarID
	}
	if item.To != "" {
		return item.To
	}
	return item.Href
}

func renderFooter(out io.Writer, sc *site.SiteConfig) {
	t := newTable(out, "Footer ("+sc.Footer.Style+")", "Section", "Label", "Link")
	for _, section := range sc.Footer.Sections {
		for _, link := range section.Items {
			target := link.To
			if target == "" {
				target = link.Href
			}
			t.AppendRow([]any{section.Title, link.Label, target})
		}
	}
	t.SetCaption(sc.Footer.Copyright)
	t.Render()
}
