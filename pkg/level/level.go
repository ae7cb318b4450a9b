// Package level defines the five ordered severities that rules filter on.
package level

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/rs/zerolog"
)

// Level is a record severity. Lower values are more verbose.
type Level int8

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
)

// All lists every level from most to least verbose
var All = []Level{Trace, Debug, Info, Warn, Error}

// String returns the upper-case name used in formatted lines
func (l Level) String() string {
	switch l {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
}

// Valid reports whether l is one of the five known levels
func (l Level) Valid() bool {
	return l >= Trace && l <= Error
}

// Parse converts a level name, case-insensitively, into a Level
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return Trace, nil
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Info, errors.Newf(errors.ErrInvalidLevel, "unknown log level: %q", s).WithDetail("level", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, errors.Newf(errors.ErrInvalidLevel, "unknown log level: %d", int8(l))
	}
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Zerolog maps the level onto the matching zerolog level
func (l Level) Zerolog() zerolog.Level {
	switch l {
	case Trace:
		return zerolog.TraceLevel
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// FromZerolog maps a zerolog level back onto a Level. Levels above error
// (fatal, panic) collapse into Error, and NoLevel is treated as Info.
func FromZerolog(zl zerolog.Level) Level {
	switch zl {
	case zerolog.TraceLevel:
		return Trace
	case zerolog.DebugLevel:
		return Debug
	case zerolog.InfoLevel, zerolog.NoLevel:
		return Info
	case zerolog.WarnLevel:
		return Warn
	default:
		return Error
	}
}
