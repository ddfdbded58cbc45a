package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordExports(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveExport(ExportResultSuccess, 120*time.Millisecond)
	m.ObserveExport(ExportResultSuccess, 80*time.Millisecond)
	m.ObserveExport(ExportResultFailed, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.exports.WithLabelValues(ExportResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues(ExportResultFailed)))
}

func TestExportDurationSkipsZero(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveExport(ExportResultSuccess, 300*time.Millisecond)
	m.ObserveExport(ExportResultSuccess, 2*time.Second)
	m.ObserveExport(ExportResultRejected, 0)

	var pb dto.Metric
	metric, ok := m.exportDuration.WithLabelValues(ExportResultSuccess).(prometheus.Metric)
	require.True(t, ok)
	require.NoError(t, metric.Write(&pb))
	assert.Equal(t, uint64(2), pb.GetHistogram().GetSampleCount())
	assert.InDelta(t, 2.3, pb.GetHistogram().GetSampleSum(), 1e-9)

	// rejected exports are counted but never timed
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues(ExportResultRejected)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.exportDuration))
}

func TestMetricsCounterGaugeAndRecompute(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.SetInvoiceCounter(42)
	m.IncRecompute()
	m.IncRecompute()

	assert.Equal(t, 42.0, testutil.ToFloat64(m.invoiceCounter))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.recomputes))
}

func TestMetricsAPIRequestLabels(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveAPIRequest("GET", "", 200, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "unknown", "200")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveExport(ExportResultFailed, time.Second)
		m.SetInvoiceCounter(1)
		m.IncRecompute()
		m.ObserveAPIRequest("GET", "/health", 200, time.Millisecond)
	})
}

func TestNewRegistryGathers(t *testing.T) {
	reg := NewRegistry()
	NewMetrics(reg).IncRecompute()

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
