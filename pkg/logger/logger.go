package logger

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/modlog/pkg/format"
	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/arthur-debert/modlog/pkg/logging"
	"github.com/arthur-debert/modlog/pkg/metrics"
	"github.com/arthur-debert/modlog/pkg/rules"
	"github.com/arthur-debert/modlog/pkg/sink"
	"github.com/rs/zerolog"
)

// MainModule is the path used for records logged by the root module itself
const MainModule = "main"

// Logger filters records by module path and level and writes the rest
type Logger struct {
	store     *rules.Store
	sink      *sink.Sink
	formatter atomic.Pointer[format.Formatter]
	now       func() time.Time
	root      string
	metrics   *metrics.Metrics

	consoleOpts []sink.Option
	logger      zerolog.Logger
}

// Option configures a Logger
type Option func(*Logger)

// WithSink sets the sink records are written to. The default writes to
// standard error.
func WithSink(s *sink.Sink) Option {
	return func(l *Logger) {
		l.sink = s
	}
}

// WithConsole replaces the standard output and error writers of the sink the
// logger creates. It has no effect together with WithSink.
func WithConsole(stdout, stderr io.Writer) Option {
	return func(l *Logger) {
		l.consoleOpts = append(l.consoleOpts, sink.WithConsole(stdout, stderr))
	}
}

// WithFormatter sets the line options shared by all rules
func WithFormatter(f format.Formatter) Option {
	return func(l *Logger) {
		l.formatter.Store(&f)
	}
}

// WithClock sets the time source for timestamps
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithRoot names the root module. Paths below it are resolved without the
// leading "name" segment; the root path itself resolves as MainModule. Lines
// still show the full path.
func WithRoot(name string) Option {
	return func(l *Logger) {
		l.root = name
	}
}

// WithMetrics counts filtering decisions
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Logger) {
		l.metrics = m
	}
}

// New creates a logger judging records by table. A nil table holds only the
// stock default rule.
func New(table *rules.Table, opts ...Option) *Logger {
	l := &Logger{
		store:  rules.NewStore(table),
		now:    time.Now,
		logger: logging.GetLogger("logger"),
	}
	l.formatter.Store(&format.Formatter{})
	for _, opt := range opts {
		opt(l)
	}
	if l.sink == nil {
		l.sink = sink.Console(l.consoleOpts...)
	}
	return l
}

// Log writes msg for module path at lvl if the current table allows it
func (l *Logger) Log(path string, lvl level.Level, msg string) {
	res, ok := l.resolve(path, lvl)
	if !ok {
		return
	}
	l.write(path, lvl, msg, res.Format)
}

// Logf is Log with a format string. Arguments are only formatted for records
// that are written.
func (l *Logger) Logf(path string, lvl level.Level, template string, args ...interface{}) {
	res, ok := l.resolve(path, lvl)
	if !ok {
		return
	}
	l.write(path, lvl, fmt.Sprintf(template, args...), res.Format)
}

// Enabled reports whether a record for path at lvl would be written
func (l *Logger) Enabled(path string, lvl level.Level) bool {
	if !lvl.Valid() {
		return false
	}
	table := l.store.Load()
	if lvl < table.Threshold() {
		return false
	}
	return table.Resolve(l.tag(path, table.Separator()), lvl).Allowed
}

// Resolve returns the resolution for path at lvl as Log would compute it,
// after root stripping. It is not counted by the logger's metrics.
func (l *Logger) Resolve(path string, lvl level.Level) rules.Resolution {
	table := l.store.Load()
	return table.Resolve(l.tag(path, table.Separator()), lvl)
}

// Evaluate is Resolve counted by the logger's metrics as one record.
// Unlike Log it always resolves a rule, even below the table threshold.
func (l *Logger) Evaluate(path string, lvl level.Level) rules.Resolution {
	res := l.Resolve(path, lvl)
	l.metrics.Observe(lvl, res)
	return res
}

func (l *Logger) resolve(path string, lvl level.Level) (rules.Resolution, bool) {
	if !lvl.Valid() {
		return rules.Resolution{}, false
	}
	table := l.store.Load()
	if lvl < table.Threshold() {
		l.metrics.Skipped(lvl)
		return rules.Resolution{}, false
	}
	res := table.Resolve(l.tag(path, table.Separator()), lvl)
	l.metrics.Observe(lvl, res)
	return res, res.Allowed
}

func (l *Logger) write(path string, lvl level.Level, msg string, f rules.Format) {
	l.sink.Write(l.formatter.Load().Line(l.now(), lvl, path, msg, f))
}

// tag maps a module path to the path used for rule selection
func (l *Logger) tag(path, sep string) string {
	if l.root == "" {
		return path
	}
	if path == l.root {
		return MainModule
	}
	if strings.HasPrefix(path, l.root+sep) {
		return path[len(l.root)+len(sep):]
	}
	return path
}

// Reconfigure publishes table. Records already being resolved finish with
// the table they loaded. A nil table resets to the stock default rule.
func (l *Logger) Reconfigure(table *rules.Table) {
	old := l.store.Swap(table)
	l.metrics.Reloaded()
	l.logger.Debug().
		Int("old_rules", old.Len()).
		Int("new_rules", l.store.Load().Len()).
		Msg("Rule table replaced")
}

// SetFormatter replaces the line options shared by all rules
func (l *Logger) SetFormatter(f format.Formatter) {
	l.formatter.Store(&f)
}

// Formatter returns the current line options
func (l *Logger) Formatter() format.Formatter {
	return *l.formatter.Load()
}

// Table returns the current rule table
func (l *Logger) Table() *rules.Table {
	return l.store.Load()
}

// Sink returns the sink records are written to
func (l *Logger) Sink() *sink.Sink {
	return l.sink
}

// SetLogFile truncates or creates path and writes records to it. Console
// destinations keep writing to the console as well.
func (l *Logger) SetLogFile(dest sink.Destination, path string) error {
	if err := l.sink.SetLogFile(dest, path); err != nil {
		return err
	}
	l.logger.Debug().Str("path", path).Msg("Log file created")
	return nil
}

// Root returns the root module name, empty when unset
func (l *Logger) Root() string {
	return l.root
}

// Flush flushes the sink
func (l *Logger) Flush() {
	l.sink.Flush()
}

// Close flushes the sink and closes its stream
func (l *Logger) Close() error {
	return l.sink.Close()
}
