package gv

import (
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/inada-s/gv-sdl/internal/logging"
)

// SetLogger configures the logger for gv and all its sub-packages, and
// forwards it to gg so rasterizer diagnostics reach the same handler.
// By default, gv produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gv:
//   - [slog.LevelDebug]: skipped records (degenerate geometry, bad formats), flushes
//   - [slog.LevelInfo]: engine lifecycle (renderer opened, loop stopped)
//   - [slog.LevelWarn]: non-fatal issues (corrupt frames, missing fonts, present errors)
//
// Example:
//
//	gv.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
	gg.SetLogger(l)
}

// Logger returns the current logger used by gv.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
