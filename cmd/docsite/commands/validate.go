package commands

import (
	"context"
	"fmt"

	"github.com/lianghchao/docsite/internal/metrics"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(global *Global, root *CLI) error {
	ctx := global.context(context.Background(), "validate")

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	sc, err := buildSite(ctx, cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(global.out(), "Configuration is valid: %d doc instances, %d navbar items, %d footer sections\n",
		len(sc.Docs), len(sc.Navbar.Items), len(sc.Footer.Sections))
	return nil
}
