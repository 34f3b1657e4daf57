// Package logging configures the process-wide log/slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Setup configures the global slog logger based on level and format and
// writes to w.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// SetupFile is Setup writing to an append-only file, for when stdout and
// stderr belong to the terminal UI. The returned closer must be called on
// exit. If the file cannot be opened, logs are discarded.
func SetupFile(level, format, path string) (*slog.Logger, io.Closer) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return Setup(level, format, f), f
		}
	}
	return Setup(level, format, io.Discard), nopCloser{}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithFields returns a logger with additional structured fields.
//
// Usage:
//
//	opLogger := logging.WithFields(logger, "op", "process", "file", path)
//	opLogger.Info("started")
//	// ... later ...
//	opLogger.Info("finished", "cells_changed", n)
func WithFields(logger *slog.Logger, args ...any) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(args...)
}
