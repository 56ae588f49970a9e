package commands

import (
	"context"
	"fmt"

	"github.com/lianghchao/docsite/internal/emit"
	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/metrics"
)

// CheckCmd implements the 'check' command, intended for CI.
type CheckCmd struct {
	Output string `short:"o" help:"Output directory (defaults to output.directory)" type:"path"`
	Format string `short:"f" help:"Output format: json, yaml or ts (defaults to output.format)"`
}

func (c *CheckCmd) Run(global *Global, root *CLI) error {
	ctx := global.context(context.Background(), "check")

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rec := metrics.NoopRecorder{}

	sc, err := buildSite(ctx, cfg, rec)
	if err != nil {
		return err
	}
	w, err := newWriter(ctx, cfg, c.Output, c.Format)
	if err != nil {
		return err
	}

	var drift *emit.Drift
	if err := runStage(ctx, rec, stageCheck, func() error {
		var cerr error
		drift, cerr = w.Check(sc)
		return cerr
	}); err != nil {
		return err
	}

	if drift != nil {
		_, _ = fmt.Fprintf(global.out(), "%s is out of date (-file +expected):\n%s\n", drift.Path, drift.Diff)
		return ferrors.DriftError(fmt.Sprintf("%s is out of date; run 'docsite generate'", drift.Path)).
			WithContext("path", drift.Path).
			Build()
	}
	_, _ = fmt.Fprintf(global.out(), "%s is up to date\n", w.Path())
	return nil
}
