package core

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dukacore/pkg/domain"
)

// MetricsRecorder observes pipeline progress. Implementations must be safe
// for use from a single goroutine; the pipeline is sequential.
type MetricsRecorder interface {
	// RecordGenerated counts rows produced by a synthesizer.
	RecordGenerated(table domain.Table, rows int)
	// RecordInserted counts rows handed to the sink and the batch duration.
	RecordInserted(table domain.Table, rows int, duration time.Duration)
}

// NoopMetrics discards all observations.
type NoopMetrics struct{}

func (NoopMetrics) RecordGenerated(domain.Table, int)               {}
func (NoopMetrics) RecordInserted(domain.Table, int, time.Duration) {}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes per-table row counters and insert timings
// via expvar, for deployments that prefer process-local metrics without
// external dependencies.
type ExpvarMetricsRecorder struct {
	name      string
	mu        sync.Mutex
	generated map[string]int64
	inserted  map[string]int64
	insertMS  map[string]float64
}

// ExpvarMetricsSnapshot captures a read-only view of the recorded metrics.
type ExpvarMetricsSnapshot struct {
	GeneratedRows  map[string]int64   `json:"generated_rows_total"`
	InsertedRows   map[string]int64   `json:"inserted_rows_total"`
	InsertMSTotals map[string]float64 `json:"insert_ms_total"`
	RecordedAt     time.Time          `json:"recorded_at"`
}

// NewExpvarMetricsRecorder constructs an expvar-backed recorder published
// under name. When name is empty, a unique identifier is generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("pipeline_metrics_%d", id)
	}
	rec := &ExpvarMetricsRecorder{
		name:      name,
		generated: make(map[string]int64),
		inserted:  make(map[string]int64),
		insertMS:  make(map[string]float64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := ExpvarMetricsSnapshot{
		GeneratedRows:  make(map[string]int64, len(r.generated)),
		InsertedRows:   make(map[string]int64, len(r.inserted)),
		InsertMSTotals: make(map[string]float64, len(r.insertMS)),
		RecordedAt:     time.Now().UTC(),
	}
	for k, v := range r.generated {
		snap.GeneratedRows[k] = v
	}
	for k, v := range r.inserted {
		snap.InsertedRows[k] = v
	}
	for k, v := range r.insertMS {
		snap.InsertMSTotals[k] = v
	}
	return snap
}

// RecordGenerated counts rows produced for a table.
func (r *ExpvarMetricsRecorder) RecordGenerated(table domain.Table, rows int) {
	r.mu.Lock()
	r.generated[string(table)] += int64(rows)
	r.mu.Unlock()
}

// RecordInserted counts rows written for a table and accumulates batch time.
func (r *ExpvarMetricsRecorder) RecordInserted(table domain.Table, rows int, duration time.Duration) {
	r.mu.Lock()
	r.inserted[string(table)] += int64(rows)
	r.insertMS[string(table)] += float64(duration) / float64(time.Millisecond)
	r.mu.Unlock()
}
