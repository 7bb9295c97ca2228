// Package logging builds the loggers used by the CLI and the TUI. Commands
// log to stderr; the TUI logs to a file so output never tears the screen.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Console returns a stderr logger for plain command runs.
func Console(level string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           ParseLevel(level),
	})
}

// File returns a logger appending to path, creating parent directories as
// needed. The caller owns the returned close func.
func File(path, level string) (*log.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           ParseLevel(level),
	})
	return logger, f.Close, nil
}

// Discard returns a logger that drops everything. Used by tests and by
// commands that run with logging disabled.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel maps a config level string to a log level. Unknown or empty
// strings fall back to info.
func ParseLevel(s string) log.Level {
	if s == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
