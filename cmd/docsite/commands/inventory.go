package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/inventory"
	"github.com/lianghchao/docsite/internal/logfields"
	"github.com/lianghchao/docsite/internal/metrics"
	"github.com/lianghchao/docsite/internal/observability"
)

// InventoryCmd implements the 'inventory' command.
type InventoryCmd struct {
	Pages    bool   `help:"List every page instead of per-instance counts"`
	Instance string `short:"i" help:"Only list pages of this instance (implies --pages)"`
}

func (c *InventoryCmd) Run(global *Global, root *CLI) error {
	ctx := global.context(context.Background(), "inventory")

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	sc, err := buildSite(ctx, cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	if c.Instance != "" && c.Instance != inventory.BlogInstance {
		if _, ok := sc.Instance(c.Instance); !ok {
			return unknownInstance(c.Instance, sc.InstanceIDs())
		}
	}

	inv, err := inventory.Scan(cfg.Root, sc)
	if err != nil {
		return err
	}
	observability.InfoContext(ctx, "Inventory scanned", logfields.Count(len(inv.Pages)))

	out := global.out()
	if c.Pages || c.Instance != "" {
		pages := inv.Pages
		if c.Instance != "" {
			pages = inv.Instance(c.Instance)
		}
		t := newTable(out, "Pages", "Instance", "Route", "Title", "Source", "Fingerprint")
		for _, p := range pages {
			title := orDash(p.Title)
			if p.Draft {
				title += " (draft)"
			}
			t.AppendRow([]any{p.Instance, p.Route, title, p.Source, shortFingerprint(p.Fingerprint)})
		}
		t.Render()
	} else {
		t := newTable(out, "Inventory", "Instance", "Pages", "Drafts", "Untitled")
		total := 0
		for _, s := range inv.Summary() {
			t.AppendRow([]any{s.Instance, s.Pages, s.Drafts, s.Untitled})
			total += s.Pages
		}
		t.AppendFooter([]any{"total", total, "", ""})
		t.Render()
	}

	dups := inv.DuplicateRoutes()
	if len(dups) > 0 {
		routes := make([]string, 0, len(dups))
		for r := range dups {
			routes = append(routes, r)
		}
		sort.Strings(routes)
		for _, r := range routes {
			observability.WarnContext(ctx, "Route served by more than one page",
				logfields.Route(r),
				logfields.Path(strings.Join(dups[r], ", ")))
		}
		_, _ = fmt.Fprintf(out, "%d routes are served by more than one page\n", len(dups))
	}
	return nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

func unknownInstance(id string, known []string) error {
	return ferrors.NotFoundError(fmt.Sprintf("unknown instance %q (known: %s, %s)", id, strings.Join(known, ", "), inventory.BlogInstance)).
		WithContext("instance", id).
		WithRetry(ferrors.RetryUserAction).
		Build()
}
