// Package metrics provides Prometheus metrics for the pressure-analysis
// pipeline. The pipeline is a one-shot batch job with no listener, so
// metrics are gathered on a custom registry and flushed to a text-format
// file artifact at the end of the run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for a pipeline run.
type Manager struct {
	namespace    string
	subsystem    string
	enabled      bool
	customLabels map[string]string
	registry     *prometheus.Registry

	// Generation metrics
	playsGenerated       prometheus.Counter
	pressurePlays        prometheus.Counter
	observedPressureRate prometheus.Gauge

	// Analysis metrics
	summariesComputed prometheus.Counter
	sqlReportsRun     prometheus.Counter

	// Artifact metrics
	rowsExported prometheus.Gauge
	chartPanels  prometheus.Gauge

	// Stage timings
	stageDuration *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Get returns the global metrics manager.
func Get() *Manager {
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "passrush",
		subsystem: "pipeline",
		enabled:   true,
		registry:  prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initMetrics()
	return m
}

func (m *Manager) initMetrics() {
	factory := promauto.With(m.registry)

	m.playsGenerated = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "plays_generated_total",
		Help:        "Total synthetic plays generated this run.",
		ConstLabels: m.customLabels,
	})

	m.pressurePlays = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pressure_plays_total",
		Help:        "Generated plays where pressure was applied.",
		ConstLabels: m.customLabels,
	})

	m.observedPressureRate = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "observed_pressure_rate",
		Help:        "Observed pressure rate over the generated table (0-1).",
		ConstLabels: m.customLabels,
	})

	m.summariesComputed = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "summaries_computed_total",
		Help:        "Grouped summary tables computed in memory.",
		ConstLabels: m.customLabels,
	})

	m.sqlReportsRun = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sql_reports_total",
		Help:        "SQL reports executed against the play store.",
		ConstLabels: m.customLabels,
	})

	m.rowsExported = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_exported",
		Help:        "Play rows written to the CSV export.",
		ConstLabels: m.customLabels,
	})

	m.chartPanels = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "chart_panels_rendered",
		Help:        "Panels rendered into the summary figure.",
		ConstLabels: m.customLabels,
	})

	m.stageDuration = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_duration_seconds",
		Help:        "Wall-clock duration of each pipeline stage.",
		ConstLabels: m.customLabels,
	}, []string{"stage"})
}

// RecordPlaysGenerated records the size and pressure composition of the
// generated table.
func (m *Manager) RecordPlaysGenerated(total, pressured int) {
	if !m.enabled {
		return
	}
	m.playsGenerated.Add(float64(total))
	m.pressurePlays.Add(float64(pressured))
	if total > 0 {
		m.observedPressureRate.Set(float64(pressured) / float64(total))
	}
}

// RecordSummaryComputed increments the in-memory summary counter.
func (m *Manager) RecordSummaryComputed() {
	if !m.enabled {
		return
	}
	m.summariesComputed.Inc()
}

// RecordSQLReport increments the SQL report counter.
func (m *Manager) RecordSQLReport() {
	if !m.enabled {
		return
	}
	m.sqlReportsRun.Inc()
}

// RecordRowsExported records the number of rows written to the CSV export.
func (m *Manager) RecordRowsExported(n int) {
	if !m.enabled {
		return
	}
	m.rowsExported.Set(float64(n))
}

// RecordChartPanels records the number of panels in the rendered figure.
func (m *Manager) RecordChartPanels(n int) {
	if !m.enabled {
		return
	}
	m.chartPanels.Set(float64(n))
}

// RecordStageDuration records the wall-clock duration of a pipeline stage.
func (m *Manager) RecordStageDuration(stage string, d time.Duration) {
	if !m.enabled {
		return
	}
	m.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}
