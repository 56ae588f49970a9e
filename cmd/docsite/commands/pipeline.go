package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/lianghchao/docsite/internal/config"
	"github.com/lianghchao/docsite/internal/emit"
	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/gitinfo"
	"github.com/lianghchao/docsite/internal/logfields"
	"github.com/lianghchao/docsite/internal/metrics"
	"github.com/lianghchao/docsite/internal/observability"
	"github.com/lianghchao/docsite/internal/site"
)

// Stage names used in logs and metrics.
const (
	stageBuild    = "build"
	stageValidate = "validate"
	stageEmit     = "emit"
	stageCheck    = "check"
)

// runStage times fn and records its outcome.
func runStage(ctx context.Context, rec metrics.Recorder, name string, fn func() error) error {
	ctx = observability.WithStage(ctx, name)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	rec.ObserveStageDuration(name, elapsed)

	if err != nil {
		rec.IncStageResult(name, metrics.ResultFailed)
		observability.DebugContext(ctx, "Stage failed",
			logfields.DurationMS(float64(elapsed.Milliseconds())),
			logfields.Error(err))
		return err
	}
	rec.IncStageResult(name, metrics.ResultSuccess)
	observability.DebugContext(ctx, "Stage completed",
		logfields.DurationMS(float64(elapsed.Milliseconds())))
	return nil
}

// buildSite constructs the canonical record, applies deployment overrides and validates it.
func buildSite(ctx context.Context, cfg *config.Config, rec metrics.Recorder) (*site.SiteConfig, error) {
	var sc *site.SiteConfig
	_ = runStage(ctx, rec, stageBuild, func() error {
		sc = site.ApplyOverrides(site.Build(), cfg.Site)
		return nil
	})
	rec.SetDocInstances(len(sc.Docs))
	rec.SetNavItems(len(sc.Navbar.Items))

	err := runStage(ctx, rec, stageValidate, func() error {
		issues := site.Check(sc)
		rec.AddValidationIssues(len(issues))
		if len(issues) > 0 {
			return site.Validate(sc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// newWriter builds the emitter for cfg; non-empty dir and format override the configuration.
func newWriter(ctx context.Context, cfg *config.Config, dir, format string) (*emit.Writer, error) {
	if format == "" {
		format = cfg.Output.Format
	}
	f, err := emit.ParseFormat(format)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid output format").
			WithContext("format", format).
			Build()
	}
	if dir == "" {
		dir = cfg.OutputDir()
	}

	w := emit.NewWriter(dir, f, cfg.Output.Filename)
	if !cfg.Output.StampCommit {
		return w, nil
	}

	info, err := gitinfo.Head(cfg.Root)
	if err != nil {
		if gitinfo.IsNotRepository(err) {
			observability.WarnContext(ctx, "Site root is not a git repository, skipping commit stamp",
				logfields.Path(cfg.Root))
		} else {
			observability.WarnContext(ctx, "Failed to read HEAD, skipping commit stamp",
				logfields.Path(cfg.Root),
				logfields.Error(err))
		}
		return w, nil
	}
	observability.DebugContext(ctx, "Stamping commit", logfields.Commit(info.Short()))
	fields := map[string]any{"gitCommit": info.Hash}
	if info.Branch != "" {
		fields["gitBranch"] = info.Branch
	}
	return w.WithStamp(fields), nil
}

// newRecorder returns a Prometheus recorder when a metrics file is requested.
func newRecorder(metricsFile string) (metrics.Recorder, func(context.Context)) {
	if metricsFile == "" {
		return metrics.NoopRecorder{}, func(context.Context) {}
	}
	rec := metrics.NewPrometheusRecorder(nil)
	flush := func(ctx context.Context) {
		if err := rec.WriteTextfile(metricsFile); err != nil {
			observability.WarnContext(ctx, "Failed to write metrics file",
				logfields.Path(metricsFile),
				logfields.Error(err))
			return
		}
		observability.DebugContext(ctx, "Wrote metrics file", logfields.Path(metricsFile))
	}
	return rec, flush
}

// generate runs one full build, validate and emit cycle.
func generate(ctx context.Context, cfg *config.Config, dir, format string, rec metrics.Recorder) (emit.Result, error) {
	start := time.Now()
	res, err := generateOnce(ctx, cfg, dir, format, rec)
	rec.ObserveRunDuration(time.Since(start))
	if err != nil {
		rec.IncRunOutcome(metrics.ResultFailed)
		return emit.Result{}, err
	}
	rec.IncRunOutcome(metrics.ResultSuccess)

	msg := "Configuration up to date"
	if res.Changed {
		msg = "Configuration written"
	}
	observability.InfoContext(ctx, msg,
		logfields.Path(res.Path),
		slog.Int("bytes", res.Bytes),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return res, nil
}

func generateOnce(ctx context.Context, cfg *config.Config, dir, format string, rec metrics.Recorder) (emit.Result, error) {
	sc, err := buildSite(ctx, cfg, rec)
	if err != nil {
		return emit.Result{}, err
	}
	w, err := newWriter(ctx, cfg, dir, format)
	if err != nil {
		return emit.Result{}, err
	}

	var res emit.Result
	err = runStage(ctx, rec, stageEmit, func() error {
		var werr error
		res, werr = w.Write(sc)
		return werr
	})
	if err != nil {
		return emit.Result{}, err
	}
	rec.SetOutputBytes(string(w.Format()), res.Bytes)
	return res, nil
}
