package shared

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger for operator commands. Verbose output
// enables debug records (input resolution, request payloads).
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
