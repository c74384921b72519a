// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns a console logger writing to stderr. Verbose enables debug
// level; otherwise warnings and above are shown so report output on stdout
// stays clean.
func Setup(verbose bool) zerolog.Logger {
	return New(os.Stderr, verbose)
}

// New builds a logger against an explicit writer (tests pass a buffer).
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
