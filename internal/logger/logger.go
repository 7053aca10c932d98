// Package logger wires the zerolog sinks. The TUI owns the terminal, so its
// operation log is mirrored to a file only; headless commands may log to the
// console as well.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewFileLogger appends structured log lines to path, creating parent
// directories as needed. The returned closer must be called on shutdown.
// An empty path disables file logging and returns a no-op logger.
func NewFileLogger(path string) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, file.Close, nil
}

// NewConsoleLogger writes human-formatted lines to w.
func NewConsoleLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
