// Package logging builds the zerolog loggers shared by every component.
package logging

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrUnknownLevel is returned for a level name other than debug, info, warn
// or error.
var ErrUnknownLevel = errors.New("unknown log level")

var levels = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

// ParseLevel maps a level name to its zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return zerolog.NoLevel, errors.Wrapf(ErrUnknownLevel, "%q", name)
	}
	return lvl, nil
}

// New returns a root logger writing JSON lines to out at the named level.
func New(out io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// Console wraps w in a human readable writer for terminal output.
func Console(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
