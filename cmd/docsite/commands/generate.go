package commands

import (
	"context"
	"fmt"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Output      string `short:"o" help:"Output directory (defaults to output.directory)" type:"path"`
	Format      string `short:"f" help:"Output format: json, yaml or ts (defaults to output.format)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile" type:"path"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	ctx := global.context(context.Background(), "generate")

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	metricsFile := g.MetricsFile
	if metricsFile == "" {
		metricsFile = cfg.Output.MetricsFile
	}
	rec, flush := newRecorder(metricsFile)
	defer flush(ctx)

	res, err := generate(ctx, cfg, g.Output, g.Format, rec)
	if err != nil {
		return err
	}

	if res.Changed {
		_, _ = fmt.Fprintf(global.out(), "Wrote %s (%d bytes)\n", res.Path, res.Bytes)
	} else {
		_, _ = fmt.Fprintf(global.out(), "Up to date: %s\n", res.Path)
	}
	return nil
}
