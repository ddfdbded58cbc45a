package telemetry

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	ExportResultSuccess   = "success"
	ExportResultFailed    = "failed"
	ExportResultCancelled = "cancelled"
	ExportResultRejected  = "rejected"
)

// Metrics exposes Prometheus observability primitives for the invoice builder.
type Metrics struct {
	apiRequests    *prometheus.CounterVec
	apiDuration    *prometheus.HistogramVec
	exports        *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
	invoiceCounter prometheus.Gauge
	recomputes     prometheus.Counter
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewMetrics registers and returns Prometheus metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rankinvoice_api_requests_total",
		Help: "Counts API requests by method, route and status.",
	}, []string{"method", "route", "status"})

	apiDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rankinvoice_api_duration_seconds",
		Help:    "API request latency per method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rankinvoice_exports_total",
		Help: "Invoice exports by result.",
	}, []string{"result"})

	exportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rankinvoice_export_duration_seconds",
		Help:    "Time spent building and delivering invoice documents.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"result"})

	invoiceCounter := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rankinvoice_invoice_counter",
		Help: "Current value of the persisted invoice counter.",
	})

	recomputes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rankinvoice_recompute_total",
		Help: "Totals recomputations triggered by form edits.",
	})

	reg.MustRegister(
		apiRequests,
		apiDuration,
		exports,
		exportDuration,
		invoiceCounter,
		recomputes,
	)

	return &Metrics{
		apiRequests:    apiRequests,
		apiDuration:    apiDuration,
		exports:        exports,
		exportDuration: exportDuration,
		invoiceCounter: invoiceCounter,
		recomputes:     recomputes,
	}
}

// ObserveAPIRequest records an API request and latency.
func (m *Metrics) ObserveAPIRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	methodLabel := sanitizeLabel(method)
	routeLabel := sanitizeLabel(route)
	m.apiRequests.WithLabelValues(methodLabel, routeLabel, strconv.Itoa(status)).Inc()
	m.apiDuration.WithLabelValues(methodLabel, routeLabel).Observe(duration.Seconds())
}

// ObserveExport records one export attempt.
func (m *Metrics) ObserveExport(result string, duration time.Duration) {
	if m == nil {
		return
	}
	resultLabel := sanitizeLabel(result)
	m.exports.WithLabelValues(resultLabel).Inc()
	if duration > 0 {
		m.exportDuration.WithLabelValues(resultLabel).Observe(duration.Seconds())
	}
}

// SetInvoiceCounter mirrors the persisted counter.
func (m *Metrics) SetInvoiceCounter(value int64) {
	if m == nil {
		return
	}
	m.invoiceCounter.Set(float64(value))
}

// IncRecompute counts one totals recomputation.
func (m *Metrics) IncRecompute() {
	if m == nil {
		return
	}
	m.recomputes.Inc()
}

func sanitizeLabel(val string) string {
	val = strings.TrimSpace(val)
	if val == "" {
		return "unknown"
	}
	return val
}
