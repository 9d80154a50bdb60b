package metrics

import (
	"go-mrz-generator/mrz"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the generator
type Metrics struct {
	RecordsGenerated *prometheus.CounterVec
	RecordsRejected  *prometheus.CounterVec
	BatchesStored    prometheus.Counter
	BatchSize        prometheus.Histogram
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mrz_records_generated_total",
			Help: "Total number of MRZ records generated, by document type",
		}, []string{"document_type"}),
		RecordsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mrz_records_rejected_total",
			Help: "Total number of MRZ records aborted before output, by reason",
		}, []string{"reason"}),
		BatchesStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "mrz_batches_stored_total",
			Help: "Total number of generated batches written to batch storage",
		}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mrz_batch_size",
			Help:    "Number of records requested per batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

// RecordGenerated implements generator.Observer.
func (m *Metrics) RecordGenerated(rec mrz.Record) {
	m.RecordsGenerated.WithLabelValues(rec.DocumentType.Code()).Inc()
}

// RecordRejected implements generator.Observer.
func (m *Metrics) RecordRejected(reason string) {
	m.RecordsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveBatch(size int) {
	m.BatchSize.Observe(float64(size))
}

func (m *Metrics) IncrementBatchesStored() {
	m.BatchesStored.Inc()
}
