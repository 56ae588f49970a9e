package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNewRequiresCallback(t *testing.T) {
	_, err := New(Options{}, nil)
	require.Error(t, err)
}

func TestNewResolvesFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Options{Files: []string{
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "sub", "..", "a.yaml"),
	}}, func(context.Context, Trigger) error { return nil })
	require.NoError(t, err)

	require.Equal(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")}, w.Files())
	require.Equal(t, []string{dir}, w.dirs)
	require.Equal(t, DefaultDebounce, w.debounce)
}

func TestDebouncedRegeneration(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	writeFile(t, cfgPath, "version: \"1.0\"\n")

	triggers := make(chan Trigger, 10)
	w, err := New(Options{Files: []string{cfgPath}, Debounce: 100 * time.Millisecond},
		func(_ context.Context, trigger Trigger) error {
			triggers <- trigger
			return nil
		})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	for i := 0; i < 3; i++ {
		writeFile(t, cfgPath, "version: \"1.0\"\nroot: site\n")
	}

	select {
	case trigger := <-triggers:
		require.Equal(t, TriggerChange, trigger)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a regeneration after the config file changed")
	}

	// Rapid writes collapse into a single regeneration.
	select {
	case <-triggers:
		t.Fatal("expected writes to be debounced into one regeneration")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, w.Stop())
}

func TestUnrelatedFilesAreIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	writeFile(t, cfgPath, "")

	var calls atomic.Int32
	w, err := New(Options{Files: []string{cfgPath}, Debounce: 50 * time.Millisecond},
		func(context.Context, Trigger) error {
			calls.Add(1)
			return nil
		})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	writeFile(t, filepath.Join(dir, "other.txt"), "noise")
	time.Sleep(300 * time.Millisecond)

	require.NoError(t, w.Stop())
	require.Zero(t, calls.Load())
}

func TestStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := New(Options{Files: []string{filepath.Join(dir, "docsite.yaml")}},
		func(context.Context, Trigger) error { return nil })
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Start(context.Background()))
	require.Error(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	require.Error(t, w.Start(context.Background()), "a stopped watcher cannot be restarted")
}

func TestContextCancellationEndsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	writeFile(t, cfgPath, "")

	ctx, cancel := context.WithCancel(context.Background())
	w, err := New(Options{Files: []string{cfgPath}}, func(context.Context, Trigger) error { return nil })
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))

	cancel()
	require.NoError(t, w.Stop())
}

func TestPeriodicRegeneration(t *testing.T) {
	dir := t.TempDir()

	var intervals atomic.Int32
	w, err := New(Options{Files: []string{filepath.Join(dir, "docsite.yaml")}, Interval: 50 * time.Millisecond},
		func(_ context.Context, trigger Trigger) error {
			if trigger == TriggerInterval {
				intervals.Add(1)
			}
			return nil
		})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.Eventually(t, func() bool { return intervals.Load() >= 2 }, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, w.Stop())
}
