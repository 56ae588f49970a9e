package commands

import (
	"context"
	"fmt"

	"github.com/lianghchao/docsite/internal/logfields"
	"github.com/lianghchao/docsite/internal/metrics"
	"github.com/lianghchao/docsite/internal/observability"
	"github.com/lianghchao/docsite/internal/preflight"
)

// PreflightCmd implements the 'preflight' command.
type PreflightCmd struct{}

func (p *PreflightCmd) Run(global *Global, root *CLI) error {
	ctx := global.context(context.Background(), "preflight")

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	sc, err := buildSite(ctx, cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}

	report := preflight.Check(cfg.Root, sc)
	observability.InfoContext(ctx, "Preflight completed",
		logfields.Path(cfg.Root),
		logfields.Count(report.Checked))

	out := global.out()
	if len(report.Findings) > 0 {
		t := newTable(out, "Preflight findings", "Severity", "Field", "Path", "Problem")
		for _, f := range report.Findings {
			t.AppendRow([]any{f.Severity.String(), f.Field, f.Path, string(f.Kind)})
		}
		t.Render()
	}
	_, _ = fmt.Fprintf(out, "%d paths checked: %d errors, %d warnings\n",
		report.Checked, report.ErrorCount(), report.WarningCount())
	return report.Err()
}
