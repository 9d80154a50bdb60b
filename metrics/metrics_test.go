package metrics

import (
	"testing"

	"go-mrz-generator/mrz"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordGenerated(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordGenerated(mrz.Record{DocumentType: mrz.DefaultDocumentTypes[0]})
	m.RecordGenerated(mrz.Record{DocumentType: mrz.DefaultDocumentTypes[0]})
	m.RecordGenerated(mrz.Record{DocumentType: mrz.DefaultDocumentTypes[2]})

	require.Equal(t, float64(2), testutil.ToFloat64(m.RecordsGenerated.WithLabelValues("P<")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.RecordsGenerated.WithLabelValues("PS")))
}

func TestRecordRejected(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordRejected("invariant")
	require.Equal(t, float64(1), testutil.ToFloat64(m.RecordsRejected.WithLabelValues("invariant")))
}

func TestBatchMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncrementBatchesStored()
	m.ObserveBatch(10)

	require.Equal(t, float64(1), testutil.ToFloat64(m.BatchesStored))
	require.Equal(t, 1, testutil.CollectAndCount(m.BatchSize))
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	require.Panics(t, func() { New(reg) })
}
