package loggers

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

// New creates a new zerolog logger writing JSON to stdout.
// Returns an error if the log level string cannot be parsed.
func New(level string) (Logger, error) {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter creates a logger like New but writing to w.
func NewWithWriter(level string, w io.Writer) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	logger := zerolog.New(w).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, nil
}

// Nop returns a logger that discards everything. Used by tests and as a fallback.
func Nop() Logger {
	return zerolog.Nop()
}

// Ctx extracts a logger from the context.
// Returns a disabled logger if no logger is found in context.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
