package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyCommand    = "command"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyInstance   = "instance"
	KeyFormat     = "format"
	KeyPath       = "path"
	KeyRoute      = "route"
	KeyCount      = "count"
	KeyCommit     = "commit"
	KeyEvent      = "event"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Command(name string) slog.Attr   { return slog.String(KeyCommand, name) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Instance(id string) slog.Attr    { return slog.String(KeyInstance, id) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Route(r string) slog.Attr        { return slog.String(KeyRoute, r) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Commit(c string) slog.Attr       { return slog.String(KeyCommit, c) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
