package cursor

import (
	"log/slog"

	"github.com/gogpu/cursor/internal/logx"
)

// SetLogger configures the logger for cursor and all its sub-packages.
// By default, cursor produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by cursor:
//   - [slog.LevelDebug]: cache hits and misses, animator state changes, theme lookups
//   - [slog.LevelInfo]: theme loads and the icon-to-vector mapping summary
//   - [slog.LevelWarn]: degraded paths (vector theme disabled, raster fallback)
//
// Example:
//
//	cursor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger used by cursor.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logx.Logger()
}
