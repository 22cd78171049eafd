// Package logging configures the process-wide zerolog logger.
//
// The picker owns the terminal while it runs, so its logs go to a file.
// The catalog server logs to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the logger options.
type Config struct {
	// Level is the minimum level (debug, info, warn, error)
	Level string
	// Format is json or console
	Format string
	// File is the log file path. Empty means the writer passed to Setup.
	File string
}

// New builds a logger writing to output.
func New(cfg Config, output io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writer := output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("app", "destpick").
		Logger()
}

// Setup installs the global logger. When cfg.File is set the file is opened
// in append mode and returned so the caller can close it; otherwise logs go
// to fallback and the returned closer does nothing.
func Setup(cfg Config, fallback io.Writer) (io.Closer, error) {
	if cfg.File == "" {
		log.Logger = New(cfg, fallback)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Logger = New(cfg, fallback)
		return nopCloser{}, fmt.Errorf("open log file %s: %w", cfg.File, err)
	}

	log.Logger = New(cfg, f)
	return f, nil
}

// Discard silences the global logger. Tests use it to keep output clean.
func Discard() {
	log.Logger = zerolog.Nop()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
