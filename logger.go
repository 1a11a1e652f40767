package canvas

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	if os.Getenv("CANVAS_DEBUG") != "" {
		loggerPtr.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		return
	}
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by canvas and its sub-packages. By
// default nothing is logged, unless CANVAS_DEBUG is set in the environment.
//
// Pass nil to disable logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// debugEnabled reports if debug records would be handled, so callers can skip
// building attributes on hot paths.
func debugEnabled(l *slog.Logger) bool {
	return l.Enabled(context.Background(), slog.LevelDebug)
}
