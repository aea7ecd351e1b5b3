package core

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dukacore/pkg/domain"
)

// PrometheusMetrics implements MetricsRecorder over a dedicated prometheus
// registry, for runs scraped by an external collector.
type PrometheusMetrics struct {
	reg            *prometheus.Registry
	generatedRows  *prometheus.CounterVec
	insertedRows   *prometheus.CounterVec
	insertDuration prometheus.Histogram
}

var _ MetricsRecorder = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics builds a recorder with its own registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dukacore_generated_rows_total",
		Help: "Rows produced by the synthesizers, by table.",
	}, []string{"table"})
	inserted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dukacore_inserted_rows_total",
		Help: "Rows handed to the sink, by table.",
	}, []string{"table"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dukacore_sink_batch_seconds",
		Help:    "Duration of sink batch writes.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(generated, inserted, duration)
	return &PrometheusMetrics{
		reg:            reg,
		generatedRows:  generated,
		insertedRows:   inserted,
		insertDuration: duration,
	}
}

// RecordGenerated counts rows produced for a table.
func (m *PrometheusMetrics) RecordGenerated(table domain.Table, rows int) {
	m.generatedRows.WithLabelValues(string(table)).Add(float64(rows))
}

// RecordInserted counts rows written for a table and observes batch time.
func (m *PrometheusMetrics) RecordInserted(table domain.Table, rows int, duration time.Duration) {
	m.insertedRows.WithLabelValues(string(table)).Add(float64(rows))
	m.insertDuration.Observe(duration.Seconds())
}

// Handler exposes the registry for scraping.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *PrometheusMetrics) Registry() *prometheus.Registry { return m.reg }
