package logger_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/modlog/pkg/format"
	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/arthur-debert/modlog/pkg/logger"
	"github.com/arthur-debert/modlog/pkg/metrics"
	"github.com/arthur-debert/modlog/pkg/rules"
	"github.com/arthur-debert/modlog/pkg/sink"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 5, 1, 10, 4, 5, 123_000_000, time.UTC)

type rule struct {
	sel rules.Selector
	min level.Level
	f   rules.Format
}

func buildTable(t *testing.T, def level.Level, rs ...rule) *rules.Table {
	t.Helper()
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Default(), def, rules.Format{}))
	for _, r := range rs {
		require.NoError(t, b.Register(r.sel, r.min, r.f))
	}
	return b.Build()
}

// newLogger returns a logger writing to a buffer standing in for stderr
func newLogger(t *testing.T, table *rules.Table, opts ...logger.Option) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts = append([]logger.Option{
		logger.WithConsole(&out, &errOut),
		logger.WithClock(func() time.Time { return fixedTime }),
	}, opts...)
	return logger.New(table, opts...), &errOut
}

func TestLog_Filtering(t *testing.T) {
	table := buildTable(t, level.Warn,
		rule{sel: rules.Prefix("net"), min: level.Debug},
		rule{sel: rules.Exact("net::tls::handshake"), min: level.Trace},
	)
	l, out := newLogger(t, table)

	l.Log("net::http", level.Debug, "request")
	l.Log("net::http", level.Trace, "dropped")
	l.Log("net::tls::handshake", level.Trace, "hello sent")
	l.Log("app", level.Info, "dropped")
	l.Log("app", level.Warn, "disk low")

	assert.Equal(t,
		"DEBUG [net::http] request\n"+
			"TRACE [net::tls::handshake] hello sent\n"+
			"WARN  [app] disk low\n",
		out.String())
}

type countingStringer struct{ calls int }

func (c *countingStringer) String() string {
	c.calls++
	return "value"
}

func TestLogf_FormatsOnlyWrittenRecords(t *testing.T) {
	l, out := newLogger(t, buildTable(t, level.Info))
	arg := &countingStringer{}

	l.Logf("app", level.Debug, "got %s", arg)
	assert.Equal(t, 0, arg.calls)
	assert.Empty(t, out.String())

	l.Logf("app", level.Info, "got %s", arg)
	assert.Equal(t, 1, arg.calls)
	assert.Equal(t, "INFO  [app] got value\n", out.String())
}

func TestLog_InvalidLevel(t *testing.T) {
	l, out := newLogger(t, buildTable(t, level.Trace))

	l.Log("app", level.Level(42), "nope")
	assert.False(t, l.Enabled("app", level.Level(42)))
	assert.Empty(t, out.String())
}

func TestLog_Formatter(t *testing.T) {
	b := rules.NewBuilder()
	table := b.Build() // stock default: Info with timestamps
	l, out := newLogger(t, table, logger.WithFormatter(format.Formatter{Millis: true, BriefInfo: true}))

	l.Log("app", level.Info, "ready")
	l.Log("app", level.Warn, "slow")

	assert.Equal(t,
		"2024-05-01 10:04:05.123 INFO  ready\n"+
			"2024-05-01 10:04:05.123 WARN  [app] slow\n",
		out.String())

	l.SetFormatter(format.Formatter{})
	assert.Equal(t, format.Formatter{}, l.Formatter())
	out.Reset()
	l.Log("app", level.Info, "ready")
	assert.Equal(t, "2024-05-01 10:04:05 INFO  [app] ready\n", out.String())
}

func TestWithRoot(t *testing.T) {
	table := buildTable(t, level.Warn,
		rule{sel: rules.Prefix("db"), min: level.Debug},
		rule{sel: rules.Exact(logger.MainModule), min: level.Trace},
	)
	l, out := newLogger(t, table, logger.WithRoot("myapp"))
	assert.Equal(t, "myapp", l.Root())

	l.Log("myapp::db::pool", level.Debug, "opened")
	l.Log("myapp", level.Trace, "starting")
	l.Log("myappx::db", level.Debug, "dropped")
	l.Log("db", level.Debug, "other crate")

	assert.Equal(t,
		"DEBUG [myapp::db::pool] opened\n"+
			"TRACE [myapp] starting\n"+
			"DEBUG [db] other crate\n",
		out.String())

	res := l.Resolve("myapp::db", level.Info)
	assert.Equal(t, rules.KindPrefix, res.Kind)
	assert.Equal(t, rules.Exact(logger.MainModule), l.Resolve("myapp", level.Info).Rule.Selector)
}

func TestEnabled(t *testing.T) {
	table := buildTable(t, level.Error, rule{sel: rules.Prefix("net"), min: level.Debug})
	l, _ := newLogger(t, table)

	assert.True(t, l.Enabled("net", level.Debug))
	assert.False(t, l.Enabled("net", level.Trace))
	assert.False(t, l.Enabled("app", level.Warn))
	assert.True(t, l.Enabled("app", level.Error))
}

func TestReconfigure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	l, out := newLogger(t, buildTable(t, level.Error), logger.WithMetrics(m))
	before := l.Table()

	l.Log("app", level.Info, "dropped")
	l.Reconfigure(buildTable(t, level.Info))
	l.Log("app", level.Info, "kept")

	assert.Equal(t, "INFO  [app] kept\n", out.String())
	assert.NotSame(t, before, l.Table())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReloadsTotal))

	l.Reconfigure(nil)
	assert.Equal(t, level.Info, l.Table().Default().MinLevel)
}

func TestMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	table := buildTable(t, level.Warn, rule{sel: rules.Prefix("net"), min: level.Debug})
	l, _ := newLogger(t, table, logger.WithMetrics(m))

	l.Log("net::http", level.Debug, "a")
	l.Log("net::http", level.Trace, "below every rule")
	l.Log("app", level.Info, "b")
	l.Log("app", level.Error, "c")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("DEBUG", metrics.DecisionEmitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("TRACE", metrics.DecisionSuppressed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("INFO", metrics.DecisionSuppressed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("ERROR", metrics.DecisionEmitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("prefix")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("default")))
}

func TestEvaluate_CountsResolveDoesNot(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	table := buildTable(t, level.Warn, rule{sel: rules.Prefix("net"), min: level.Debug})
	l, out := newLogger(t, table, logger.WithMetrics(m))

	for _, lvl := range level.All {
		l.Resolve("net::tls", lvl)
	}
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("prefix")))

	for _, lvl := range level.All {
		res := l.Evaluate("net::tls", lvl)
		assert.Equal(t, rules.KindPrefix, res.Kind)
	}
	assert.Equal(t, 5.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("prefix")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("TRACE", metrics.DecisionSuppressed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("DEBUG", metrics.DecisionEmitted)))
	assert.Empty(t, out.String())
}

func TestModule(t *testing.T) {
	table := buildTable(t, level.Info, rule{sel: rules.Prefix("app::db"), min: level.Trace})
	l, out := newLogger(t, table)

	app := l.Module("app")
	db := app.Child("db")
	assert.Equal(t, "app::db", db.Path())
	assert.Equal(t, "db", l.Module("").Child("db").Path())

	db.Trace("t")
	db.Debugf("d%d", 1)
	app.Debug("dropped")
	app.Info("i")
	app.Warnf("w%s", "!")
	app.Error("e")
	app.Errorw(fmt.Errorf("boom"), "save failed")
	db.Tracef("t%d", 2)
	db.Infof("i%d", 3)
	db.Errorf("e%d", 4)
	db.Warn("w")

	assert.True(t, db.Enabled(level.Trace))
	assert.False(t, app.Enabled(level.Debug))

	assert.Equal(t, []string{
		"TRACE [app::db] t",
		"DEBUG [app::db] d1",
		"INFO  [app] i",
		"WARN  [app] w!",
		"ERROR [app] e",
		"ERROR [app] save failed: boom",
		"TRACE [app::db] t2",
		"INFO  [app::db] i3",
		"ERROR [app::db] e4",
		"WARN  [app::db] w",
	}, strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"))
}

func TestModule_ChildUsesTableSeparator(t *testing.T) {
	b := rules.NewBuilder(rules.WithSeparator("/"))
	l, _ := newLogger(t, b.Build())

	assert.Equal(t, "api/v2", l.Module("api").Child("v2").Path())
}

func TestSetLogFile(t *testing.T) {
	l, out := newLogger(t, buildTable(t, level.Info))
	path := filepath.Join(t.TempDir(), "app.log")

	require.NoError(t, l.SetLogFile(sink.Stderr, path))
	l.Log("app", level.Warn, "to both")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "WARN  [app] to both\n", string(data))
	assert.Equal(t, "WARN  [app] to both\n", out.String())

	assert.Error(t, l.SetLogFile(sink.Stream, filepath.Join(path, "nested.log")))
}
