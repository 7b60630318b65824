// Package metrics provides Prometheus metrics for the ACWR workload service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus series exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion
	rowsIngested *prometheus.CounterVec

	// Pipeline
	pipelineRuns     prometheus.Counter
	pipelineFailures prometheus.Counter
	pipelineDuration prometheus.Histogram
	lastRunUnix      prometheus.Gauge
	joinedRows       prometheus.Gauge
	outliersDropped  *prometheus.CounterVec
	workerCount      prometheus.Gauge

	// Repository
	snapshotCount prometheus.Gauge
	snapshotSwaps prometheus.Counter
	queryLatency  prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "acwr",
		subsystem:        "workload",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all Prometheus series on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsIngested = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_ingested_total",
		Help:      "Rows read from input files, labeled by source (load_log, positions)",
	}, []string{"source"})

	m.pipelineRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_runs_total",
		Help:      "Completed pipeline runs",
	})

	m.pipelineFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_failures_total",
		Help:      "Pipeline runs that failed before producing output",
	})

	m.pipelineDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_duration_milliseconds",
		Help:      "End-to-end pipeline run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_last_success_unix",
		Help:      "Unix timestamp of the last successful pipeline run",
	})

	m.joinedRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "joined_rows",
		Help:      "Rows produced by the join stage in the last run",
	})

	m.outliersDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outlier_rows_dropped_total",
		Help:      "Rows removed by IQR bounding, labeled by metric",
	}, []string{"metric"})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_workers",
		Help:      "Workers used for per-athlete computation",
	})

	m.snapshotCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_count",
		Help:      "Athlete snapshots in the current published set",
	})

	m.snapshotSwaps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_swaps_total",
		Help:      "Atomic replacements of the published snapshot set",
	})

	m.queryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_query_latency_milliseconds",
		Help:      "Snapshot store read latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests, labeled by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors labeled by component and error type",
	}, []string{"component", "error_type"})
}

// Package-level helpers against the global manager.

// RecordRowsIngested adds n to the ingested-row counter for a source.
func RecordRowsIngested(source string, n int) {
	globalManager.rowsIngested.WithLabelValues(source).Add(float64(n))
}

// RecordPipelineRun marks a successful pipeline run.
func RecordPipelineRun(durationMs float64, atUnix int64) {
	globalManager.pipelineRuns.Inc()
	globalManager.pipelineDuration.Observe(durationMs)
	globalManager.lastRunUnix.Set(float64(atUnix))
}

// RecordPipelineFailure marks a failed pipeline run.
func RecordPipelineFailure() {
	globalManager.pipelineFailures.Inc()
}

// UpdateJoinedRows publishes the join stage output size.
func UpdateJoinedRows(n int) {
	globalManager.joinedRows.Set(float64(n))
}

// RecordOutliersDropped adds n to the dropped-row counter for a metric.
func RecordOutliersDropped(metric string, n int) {
	globalManager.outliersDropped.WithLabelValues(metric).Add(float64(n))
}

// UpdateWorkerCount publishes the pipeline worker count.
func UpdateWorkerCount(n int) {
	globalManager.workerCount.Set(float64(n))
}

// UpdateSnapshotCount publishes the size of the published snapshot set.
func UpdateSnapshotCount(n int) {
	globalManager.snapshotCount.Set(float64(n))
}

// RecordSnapshotSwap marks an atomic snapshot set replacement.
func RecordSnapshotSwap() {
	globalManager.snapshotSwaps.Inc()
}

// RecordQueryLatency observes a snapshot store read.
func RecordQueryLatency(latencyMs float64) {
	globalManager.queryLatency.Observe(latencyMs)
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent counts an error for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom registry served by /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
