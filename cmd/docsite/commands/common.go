package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lianghchao/docsite/internal/config"
	"github.com/lianghchao/docsite/internal/observability"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	RunID  string
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate  GenerateCmd  `cmd:"" help:"Build, validate and write the generator configuration"`
	Check     CheckCmd     `cmd:"" help:"Fail when the written configuration is out of date"`
	Validate  ValidateCmd  `cmd:"" help:"Validate the site configuration without writing anything"`
	Show      ShowCmd      `cmd:"" help:"Print the site configuration"`
	Preflight PreflightCmd `cmd:"" help:"Verify the files the configuration refers to exist"`
	Inventory InventoryCmd `cmd:"" help:"List the pages each documentation instance publishes"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
	Watch     WatchCmd     `cmd:"" help:"Regenerate the configuration whenever its inputs change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// out returns the writer command output goes to.
func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// context returns a context carrying the run id and command name for structured logs.
func (g *Global) context(parent context.Context, command string) context.Context {
	runID := ""
	if g != nil {
		runID = g.RunID
	}
	if runID == "" {
		runID = observability.NewRunID()
	}
	ctx := observability.WithRunID(parent, runID)
	return observability.WithCommand(ctx, command)
}

// loadConfig reads the tool configuration, falling back to defaults when the file is absent.
func loadConfig(root *CLI) (*config.Config, error) {
	path := config.DefaultPath
	if root != nil && root.Config != "" {
		path = root.Config
	}
	return config.LoadOrDefault(path)
}
