// Package logger builds the zerolog logger shared by the server.
package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger, or a human readable one when format is "console".
func New(level, format string, out io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "asteroid-watch").
		Logger(), nil
}
