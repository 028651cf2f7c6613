package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger at the given level. Development output is
// human readable; everything else is JSON on stdout.
func New(level, environment string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, environment)
}

func NewWithWriter(w io.Writer, level, environment string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if environment == "development" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
