package motion

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the package logger used by engines created without
// WithLogger. By default motion produces no log output. Pass nil to restore
// silence. Safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: backend fallbacks, layer changes, per-tick stats in debug mode
//   - [slog.LevelInfo]: engine lifecycle
//   - [slog.LevelWarn]: rejected timestamps, recovered entry failures
//
// Engines pick up the package logger when they are created; calling
// SetLogger later does not affect existing engines.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
