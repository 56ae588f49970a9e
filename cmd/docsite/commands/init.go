package commands

import (
	"fmt"
	"log/slog"

	"github.com/lianghchao/docsite/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(global *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = config.DefaultPath
	}
	slog.Info("Initializing configuration", "path", path, "force", i.Force)
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(global.out(), "Wrote %s\n", path)
	return nil
}
