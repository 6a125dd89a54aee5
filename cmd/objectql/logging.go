package main

import (
	"log/slog"
	"os"
)

// newLogger returns a stderr slog.Logger at Info level, or Debug when
// --verbose is set. internal/ stays log-free (it returns errors); this is
// the CLI's own diagnostic channel, not part of the evaluation result.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
