// Package metrics exposes Prometheus collectors for sample generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Batch outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	Batches  *prometheus.CounterVec
	Files    prometheus.Counter
	Duration prometheus.Histogram
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Batches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stockpredict_batches_total",
			Help: "Sample generation batches by outcome.",
		}, []string{"outcome"}),
		Files: f.NewCounter(prometheus.CounterOpts{
			Name: "stockpredict_files_processed_total",
			Help: "Stock files sampled in successful batches.",
		}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockpredict_batch_duration_seconds",
			Help:    "Wall time of sample generation batches.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveBatch records one finished batch.
func (m *Metrics) ObserveBatch(outcome string, files int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Batches.WithLabelValues(outcome).Inc()
	m.Files.Add(float64(files))
	m.Duration.Observe(elapsed.Seconds())
}
