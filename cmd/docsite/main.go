package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lianghchao/docsite/cmd/docsite/commands"
	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/observability"
	"github.com/lianghchao/docsite/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docsite"),
		kong.Description("Build, validate and emit the documentation site configuration."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	globals := &commands.Global{
		Logger: slog.Default(),
		RunID:  observability.NewRunID(),
		Out:    os.Stdout,
	}
	if err := parser.Run(globals, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
