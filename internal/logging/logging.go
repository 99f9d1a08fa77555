// Package logging builds the slog loggers used for pipeline diagnostics.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the process logger. Diagnostics go to stderr: stdout is
// reserved for the result table when the stdout output format is
// requested. Verbose runs log at INFO, regular runs at WARN, matching
// the -v flag semantics of the CLI.
func New(verbose bool) *slog.Logger {
	return NewWithWriter(verbose, os.Stderr)
}

// NewWithWriter creates a logger writing to the given writer.
func NewWithWriter(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
