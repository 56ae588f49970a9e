package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/lianghchao/docsite/internal/config"
	"github.com/lianghchao/docsite/internal/logfields"
	"github.com/lianghchao/docsite/internal/metrics"
	"github.com/lianghchao/docsite/internal/observability"
	"github.com/lianghchao/docsite/internal/site"
	"github.com/lianghchao/docsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output string `short:"o" help:"Output directory (defaults to output.directory)" type:"path"`
	Format string `short:"f" help:"Output format: json, yaml or ts (defaults to output.format)"`
}

func (w *WatchCmd) Run(global *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(global.context(ctx, "watch"), root)
}

func (w *WatchCmd) run(ctx context.Context, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	metricsFile := cfg.Output.MetricsFile
	rec, flush := newRecorder(metricsFile)
	defer flush(ctx)

	if _, err := generate(ctx, cfg, w.Output, w.Format, rec); err != nil {
		return err
	}

	// A reload that changes what must be watched hands the fresh config over here,
	// and the watcher is rebuilt outside its own callback.
	reload := make(chan *config.Config, 1)
	for {
		watcher, err := w.newWatcher(ctx, root, cfg, rec, flush, reload)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		observability.InfoContext(ctx, "Watching for changes, press Ctrl+C to stop",
			logfields.Count(len(watcher.Files())))

		select {
		case <-ctx.Done():
			return watcher.Stop()
		case cfg = <-reload:
			if err := watcher.Stop(); err != nil {
				return err
			}
			observability.InfoContext(ctx, "Configuration changed watched paths, restarting watcher")
		}
	}
}

// newWatcher builds a watcher over the inputs of cfg. Its callback reloads the
// configuration before regenerating and sends it on reload when the watched set changed.
func (w *WatchCmd) newWatcher(ctx context.Context, root *CLI, cfg *config.Config, rec metrics.Recorder,
	flush func(context.Context), reload chan<- *config.Config,
) (*watch.Watcher, error) {
	writer, err := newWriter(ctx, cfg, w.Output, w.Format)
	if err != nil {
		return nil, err
	}
	opts := watch.Options{
		Files:    watchedFiles(root.Config, cfg, writer.Path()),
		Debounce: cfg.DebounceDuration(),
		Interval: cfg.IntervalDuration(),
	}

	return watch.New(opts, func(ctx context.Context, trigger watch.Trigger) error {
		fresh, err := loadConfig(root)
		if err != nil {
			return err
		}
		observability.InfoContext(ctx, "Regenerating", logfields.Event(string(trigger)))
		res, err := generate(ctx, fresh, w.Output, w.Format, rec)
		if err != nil {
			return err
		}
		flush(ctx)

		next := watch.Options{
			Files:    watchedFiles(root.Config, fresh, res.Path),
			Debounce: fresh.DebounceDuration(),
			Interval: fresh.IntervalDuration(),
		}
		if !slices.Equal(next.Files, opts.Files) || next.Debounce != opts.Debounce || next.Interval != opts.Interval {
			select {
			case reload <- fresh:
			default:
			}
		}
		return nil
	})
}

// watchedFiles lists the inputs a regeneration depends on, plus the output so manual edits
// are overwritten.
func watchedFiles(configPath string, cfg *config.Config, outputPath string) []string {
	if configPath == "" {
		configPath = config.DefaultPath
	}
	files := []string{configPath, ".env", ".env.local", outputPath}

	sc := site.Build()
	for _, d := range sc.Docs {
		if d.SidebarPath != "" {
			files = append(files, filepath.Join(cfg.Root, filepath.FromSlash(d.SidebarPath)))
		}
	}
	if sc.Theme.CustomCSS != "" {
		files = append(files, filepath.Join(cfg.Root, filepath.FromSlash(sc.Theme.CustomCSS)))
	}
	return files
}
