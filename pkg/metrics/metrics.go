// Package metrics counts filtering decisions with Prometheus collectors.
package metrics

import (
	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/arthur-debert/modlog/pkg/rules"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decision label values
const (
	DecisionEmitted    = "emitted"
	DecisionSuppressed = "suppressed"
)

// Metrics holds the counters for one logger
type Metrics struct {
	RecordsTotal     *prometheus.CounterVec
	ResolutionsTotal *prometheus.CounterVec
	ReloadsTotal     prometheus.Counter
}

// New registers the counters on reg. A nil reg creates unregistered
// collectors, which is useful in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modlog_records_total",
				Help: "Total number of log records by level and filtering decision",
			},
			[]string{"level", "decision"},
		),
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modlog_resolutions_total",
				Help: "Total number of rule resolutions by selector kind",
			},
			[]string{"kind"},
		),
		ReloadsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "modlog_table_reloads_total",
				Help: "Total number of rule table replacements",
			},
		),
	}
}

// Observe records one resolution
func (m *Metrics) Observe(lvl level.Level, res rules.Resolution) {
	if m == nil {
		return
	}
	decision := DecisionSuppressed
	if res.Allowed {
		decision = DecisionEmitted
	}
	m.RecordsTotal.WithLabelValues(lvl.String(), decision).Inc()
	m.ResolutionsTotal.WithLabelValues(res.Kind.String()).Inc()
}

// Skipped records a record rejected by the table threshold before any rule
// was resolved
func (m *Metrics) Skipped(lvl level.Level) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(lvl.String(), DecisionSuppressed).Inc()
}

// Reloaded records a table replacement
func (m *Metrics) Reloaded() {
	if m == nil {
		return
	}
	m.ReloadsTotal.Inc()
}
