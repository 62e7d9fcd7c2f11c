// Package obs wires up the application's slog logger: a colorized tint
// console handler for interactive runs, or stock JSON for machine
// consumption.
package obs

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Options configures logger construction.
type Options struct {
	// JSON selects slog's stock JSON handler instead of tint's colorized
	// console handler.
	JSON bool
	// Debug lowers the minimum level to slog.LevelDebug.
	Debug bool
}

// New builds the process-wide logger per Options and installs it as
// slog.Default, returning it for callers that prefer explicit injection
// (the lt package accepts an explicit *slog.Logger and falls back to
// slog.Default() when none is given).
func New(opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
