// Package logger builds the process-wide zerolog logger
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to out at the given level
// pretty switches to the human-readable console writer. An unknown level
// falls back to info and the returned error says so.
func New(out io.Writer, level string, pretty bool) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stdout
	}
	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), err
}
