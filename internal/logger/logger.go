// Package logger builds the zerolog logger shared by the server and CLI.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON in production and a console format otherwise.
func New(env, level string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env != "production" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "solpay").Logger()
}

// Nop is a disabled logger for tests and optional dependencies.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
