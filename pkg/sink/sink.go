// Package sink writes formatted lines to their configured destination.
package sink

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/modlog/pkg/errors"
)

type flusher interface {
	Flush() error
}

type syncer interface {
	Sync() error
}

// Sink writes each line to the current destination. Writes are serialized.
type Sink struct {
	mu     sync.Mutex
	dest   Destination
	stream io.Writer
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Sink
type Option func(*Sink)

// WithConsole replaces the standard output and standard error writers
func WithConsole(stdout, stderr io.Writer) Option {
	return func(s *Sink) {
		if stdout != nil {
			s.stdout = stdout
		}
		if stderr != nil {
			s.stderr = stderr
		}
	}
}

// Console creates a sink writing to standard error
func Console(opts ...Option) *Sink {
	s := &Sink{stdout: os.Stdout, stderr: os.Stderr, dest: Stderr}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New creates a sink for dest. Stream destinations require a stream.
func New(dest Destination, stream io.Writer, opts ...Option) (*Sink, error) {
	s := Console(opts...)
	if err := s.SetDestination(dest, stream); err != nil {
		return nil, err
	}
	return s, nil
}

// Write writes one line. Failures to write are dropped; logging never fails
// the caller.
func (s *Sink) Write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dest.IsStream() {
		_, _ = io.WriteString(s.stream, line)
	}
	if s.dest.IsStdout() {
		_, _ = io.WriteString(s.stdout, line)
	}
	if s.dest.IsStderr() {
		_, _ = io.WriteString(s.stderr, line)
	}
}

// Destination returns the current destination
func (s *Sink) Destination() Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dest
}

// SetDestination flushes pending output and switches destinations. Stream
// destinations need a non-nil stream; other destinations drop the stream.
// The previous stream is closed when it is replaced.
func (s *Sink) SetDestination(dest Destination, stream io.Writer) error {
	if !dest.Valid() {
		return errors.Newf(errors.ErrInvalidDestination, "invalid log destination: %d", int(dest))
	}
	if dest.IsStream() && stream == nil {
		return errors.Newf(errors.ErrMissingStream, "no stream given for log destination %s", dest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushLocked()
	if s.stream != nil && s.stream != stream {
		closeStream(s.stream)
	}
	s.dest = dest
	if dest.IsStream() {
		s.stream = stream
	} else {
		s.stream = nil
	}
	return nil
}

// SetLogFile creates path and sends output to it. Console variants of dest
// keep writing to the console as well.
func (s *Sink) SetLogFile(dest Destination, path string) error {
	file, err := CreateFile(path)
	if err != nil {
		return err
	}

	switch {
	case dest.IsStdout():
		dest = StreamStdout
	case dest.IsStderr():
		dest = StreamStderr
	default:
		dest = Stream
	}
	return s.SetDestination(dest, file)
}

// Flush flushes the stream and the console writers when they support it
func (s *Sink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

func (s *Sink) flushLocked() {
	if s.dest.IsStream() && s.stream != nil {
		flushWriter(s.stream)
	}
	if s.dest.IsStdout() {
		flushWriter(s.stdout)
	}
	if s.dest.IsStderr() {
		flushWriter(s.stderr)
	}
}

// Close flushes and closes the stream, falling back to stderr
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushLocked()
	var err error
	if c, ok := s.stream.(io.Closer); ok && !isConsole(s.stream) {
		err = c.Close()
	}
	s.stream = nil
	s.dest = Stderr
	return err
}

// CreateFile creates (truncating) a log file and its parent directory
func CreateFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCreate, "failed to create directory for %s", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCreate, "failed to create file: '%s'", path)
	}
	return file, nil
}

// OpenStream opens path for appending, creating it when missing
func OpenStream(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCreate, "failed to create directory for %s", path)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCreate, "failed to open log file: '%s'", path)
	}
	return file, nil
}

func flushWriter(w io.Writer) {
	if f, ok := w.(flusher); ok {
		_ = f.Flush()
		return
	}
	// stdout and stderr report EINVAL on Sync for pipes and terminals
	if isConsole(w) {
		return
	}
	if f, ok := w.(syncer); ok {
		_ = f.Sync()
	}
}

func closeStream(w io.Writer) {
	if isConsole(w) {
		return
	}
	if c, ok := w.(io.Closer); ok {
		_ = c.Close()
	}
}

func isConsole(w io.Writer) bool {
	return w == os.Stdout || w == os.Stderr
}
