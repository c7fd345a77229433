package rasterfx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so the caller skips message formatting entirely,
// which keeps the per-operation debug lines free when logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while operations run on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for rasterfx and its sub-packages.
// By default, rasterfx produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by rasterfx:
//   - [slog.LevelDebug]: per-operation diagnostics (padded sizes, peaks, scale factors)
//   - [slog.LevelInfo]: command execution in the script interpreter
//   - [slog.LevelWarn]: recoverable command failures
//
// Example:
//
//	rasterfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by rasterfx.
// The script package uses it when no logger is configured.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
