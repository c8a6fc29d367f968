package brush

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record and reports every level disabled, so the
// attribute lists of silent log calls are never built.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

var (
	silent = slog.New(nopHandler{})

	// pkgLogger is read by every decode and dab render, possibly while
	// another goroutine calls SetLogger.
	pkgLogger atomic.Pointer[slog.Logger]
)

func init() { pkgLogger.Store(silent) }

// SetLogger routes the package's diagnostics to l. Tips and collections
// built with WithLogger keep their own logger. A nil l silences the package
// again, which is also the initial state.
//
// Records emitted:
//   - Debug "brush: pyramid built": first resample of a raster tip
//   - Debug "brush: dab rendered": procedural dab cache miss, with the
//     cache length, hits and misses
//   - Debug "brush: decoded collection": tips and warnings per file
//   - Warn "abr: skipping record", "brush: hose parasite": recoverable
//     damage in a brush file
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	pkgLogger.Store(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger { return pkgLogger.Load() }
