// Package logging builds the structured loggers shared by quillroom commands.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level, or an unknown level, is configured.
const DefaultLevel = zerolog.InfoLevel

// New returns a timestamped JSON logger tagged with the service name.
func New(w io.Writer, service string, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
	if service = strings.TrimSpace(service); service != "" {
		logger = logger.With().Str("service", service).Logger()
	}
	return logger
}

// NewConsole returns a human-readable logger for interactive commands.
func NewConsole(w io.Writer, service string, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}, service, level)
}

// ParseLevel maps a configured level name to a zerolog level.
func ParseLevel(value string) zerolog.Level {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return DefaultLevel
	}
	level, err := zerolog.ParseLevel(value)
	if err != nil || level == zerolog.NoLevel {
		return DefaultLevel
	}
	return level
}

// Nop returns a logger that discards everything. Useful as a zero value.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
