// Package watch regenerates output when the files it depends on change, and optionally on a
// fixed interval.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
	"github.com/lianghchao/docsite/internal/logfields"
)

// Trigger names what caused a regeneration.
type Trigger string

const (
	TriggerChange   Trigger = "change"
	TriggerInterval Trigger = "interval"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// RegenerateFunc is invoked once per debounced change or interval tick. Calls never overlap.
type RegenerateFunc func(ctx context.Context, trigger Trigger) error

// Options configures a Watcher.
type Options struct {
	Files    []string      // Files whose changes trigger a regeneration
	Debounce time.Duration // Quiet period after the last change
	Interval time.Duration // Periodic regeneration; zero disables
}

// Watcher monitors files and triggers debounced regenerations.
type Watcher struct {
	files      map[string]bool
	dirs       []string
	debounce   time.Duration
	interval   time.Duration
	regenerate RegenerateFunc

	watcher   *fsnotify.Watcher
	scheduler gocron.Scheduler

	mu       sync.Mutex
	started  bool
	stopped  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
	ctx      context.Context

	runMu sync.Mutex
}

// New creates a watcher for the given files.
func New(opts Options, regenerate RegenerateFunc) (*Watcher, error) {
	if regenerate == nil {
		return nil, ferrors.InternalError("watch: regenerate function is required").Build()
	}

	w := &Watcher{
		files:      map[string]bool{},
		debounce:   opts.Debounce,
		interval:   opts.Interval,
		regenerate: regenerate,
		stopChan:   make(chan struct{}),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	dirs := map[string]bool{}
	for _, f := range opts.Files {
		// Resolve absolute path for consistent matching
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve watched path").
				WithContext("path", f).
				Build()
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		w.dirs = append(w.dirs, d)
	}
	sort.Strings(w.dirs)

	return w, nil
}

// Files returns the absolute paths being watched, sorted.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Start begins monitoring. Watching a directory, rather than the file itself, survives
// editors and atomic writers that replace files by rename.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return ferrors.InternalError("watch: already started").Build()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	for _, dir := range w.dirs {
		if _, statErr := os.Stat(dir); statErr != nil {
			slog.Warn("Watched directory does not exist, skipping", logfields.Path(dir))
			continue
		}
		if addErr := fsw.Add(dir); addErr != nil {
			_ = fsw.Close()
			return ferrors.WrapError(addErr, ferrors.CategoryFileSystem, fmt.Sprintf("failed to watch directory %s", dir)).
				WithContext("path", dir).
				Build()
		}
	}
	w.watcher = fsw
	w.ctx = ctx

	if w.interval > 0 {
		if err := w.startScheduler(); err != nil {
			_ = fsw.Close()
			return err
		}
	}

	slog.Info("Starting watcher",
		logfields.Count(len(w.files)),
		slog.Duration("debounce", w.debounce),
		slog.Duration("interval", w.interval))

	w.started = true
	w.wg.Add(1)
	go w.watchLoop(ctx)
	return nil
}

func (w *Watcher) startScheduler() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create gocron scheduler").Build()
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.run, TriggerInterval),
		gocron.WithName("periodic-regenerate"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create periodic regeneration job").Build()
	}
	s.Start()
	w.scheduler = s
	return nil
}

// Stop halts monitoring and waits for an in-flight regeneration to finish.
// A stopped Watcher cannot be restarted.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return nil
	}
	w.started = false
	w.stopped = true

	slog.Info("Stopping watcher")
	close(w.stopChan)
	w.wg.Wait()

	var firstErr error
	if w.scheduler != nil {
		if err := w.scheduler.Shutdown(); err != nil {
			firstErr = err
		}
		w.scheduler = nil
	}
	if err := w.watcher.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if firstErr != nil {
		return ferrors.WrapError(firstErr, ferrors.CategoryRuntime, "failed to stop watcher").Build()
	}
	return nil
}

// watchLoop filters file system events and fires the debounced regeneration.
func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Watched file changed",
				logfields.Path(event.Name),
				logfields.Event(event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", logfields.Error(err))
		case <-timer.C:
			w.run(TriggerChange)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return w.files[filepath.Clean(event.Name)]
}

// run invokes the regeneration callback, serialized against concurrent triggers.
func (w *Watcher) run(trigger Trigger) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	ctx := w.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	err := w.regenerate(ctx, trigger)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		slog.Error("Regeneration failed",
			logfields.Event(string(trigger)),
			logfields.DurationMS(elapsed),
			logfields.Error(err))
		return
	}
	slog.Debug("Regeneration finished",
		logfields.Event(string(trigger)),
		logfields.DurationMS(elapsed))
}
