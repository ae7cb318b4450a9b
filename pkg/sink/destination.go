package sink

import (
	"strings"

	"github.com/arthur-debert/modlog/pkg/errors"
)

// Destination selects where formatted lines are written
type Destination int

const (
	// Stderr writes to standard error
	Stderr Destination = iota
	// Stdout writes to standard output
	Stdout
	// Stream writes to a caller supplied stream, usually a log file
	Stream
	// StreamStdout writes to the stream and to standard output
	StreamStdout
	// StreamStderr writes to the stream and to standard error
	StreamStderr
)

var destNames = []struct {
	name string
	dest Destination
}{
	{"stderr", Stderr},
	{"stdout", Stdout},
	{"stream", Stream},
	{"streamstdout", StreamStdout},
	{"streamstderr", StreamStderr},
}

// ParseDestination parses a destination name, case-insensitively
func ParseDestination(s string) (Destination, error) {
	for _, d := range destNames {
		if strings.EqualFold(d.name, strings.TrimSpace(s)) {
			return d.dest, nil
		}
	}
	return Stderr, errors.Newf(errors.ErrInvalidDestination, "invalid log destination: %q", s)
}

// String returns the configuration name of the destination
func (d Destination) String() string {
	for _, n := range destNames {
		if n.dest == d {
			return n.name
		}
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler
func (d Destination) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Destination) UnmarshalText(text []byte) error {
	parsed, err := ParseDestination(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Valid reports whether d is a known destination
func (d Destination) Valid() bool {
	return d >= Stderr && d <= StreamStderr
}

// IsStream reports whether the destination needs a stream
func (d Destination) IsStream() bool {
	return d == Stream || d == StreamStdout || d == StreamStderr
}

// IsStdout reports whether the destination includes standard output
func (d Destination) IsStdout() bool {
	return d == Stdout || d == StreamStdout
}

// IsStderr reports whether the destination includes standard error
func (d Destination) IsStderr() bool {
	return d == Stderr || d == StreamStderr
}
