// Package logging builds the structured loggers used to surface
// preprocessor/parser warnings. Unlike a long-lived service, a single
// Preprocess/Parse call is the unit of work here, so callers get a
// logger scoped to that call rather than a package-level global.
package logging

import (
	"io"
	"log/slog"
)

// New builds a text-handler slog.Logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// Discard is a logger that drops everything, used when a caller opts
// out of log output but still wants programmatic access to warnings
// via diag.Sink.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
