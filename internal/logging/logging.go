// Package logging builds the zerolog logger. The text UI owns the terminal,
// so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger at level that appends JSON lines to the file at path.
// The returned closer closes the log file.
func New(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: creating log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: opening log file: %w", err)
	}

	return NewWriter(f, level), f, nil
}

// NewWriter returns a logger at level writing to w.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Console returns a human-readable logger writing to w, for the
// non-interactive subcommands.
func Console(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}).
		Level(level).With().Timestamp().Logger()
}
