// Package logging builds the diagnostic logger shared by the CLI and the
// engine. Per-file results are not logged; they are printed by the reporter.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// LevelFor maps a -v count to a level: 0 warn, 1 info, 2 debug, 3+ trace.
// A negative count (quiet) only lets errors through.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity < 0:
		return zerolog.ErrorLevel
	case verbosity == 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New returns a console logger writing to w at the level for verbosity.
// Caller information is added from debug up.
func New(w io.Writer, verbosity int, color bool) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !color,
	}
	logger := zerolog.New(console).Level(LevelFor(verbosity)).With().Timestamp().Logger()
	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Component returns l tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Operation logs the start of op at debug level and returns a func that
// logs its completion with the elapsed time.
func Operation(l zerolog.Logger, op string) func() {
	start := time.Now()
	l.Debug().Str("operation", op).Msg("operation started")
	return func() {
		l.Debug().Str("operation", op).Dur("duration", time.Since(start)).Msg("operation completed")
	}
}
