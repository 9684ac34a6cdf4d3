// Package metrics provides Prometheus metrics for the war room scouting service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the war room service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - Report and evaluation flow
	reportsGenerated    *prometheus.CounterVec
	assemblyLatency     prometheus.Histogram
	evaluationsResolved prometheus.Counter
	evaluationHits      prometheus.Counter
	evaluationMisses    prometheus.Counter
	disagreements       *prometheus.CounterVec

	// Cycle Metrics - Scouting cycle execution
	cyclesCompleted prometheus.Counter
	cycleDuration   prometheus.Histogram
	seasonsAdvanced prometheus.Counter

	// Board Metrics - Big board rebuild timings
	boardRebuilds        prometheus.Counter
	boardRebuildDuration prometheus.Histogram
	boardLastRebuildUnix prometheus.Gauge
	boardSize            prometheus.Gauge

	// Operational Health Metrics
	prospectCount prometheus.Gauge
	scoutCount    prometheus.Gauge

	// Queue Metrics - Assignment queue performance
	queueSize            prometheus.Gauge
	queueCapacity        prometheus.Gauge
	queueUtilization     prometheus.Gauge
	queueEnqueueRate     prometheus.Counter
	queueDequeueRate     prometheus.Counter
	queueEnqueueErrors   prometheus.Counter
	assignmentsDuplicate prometheus.Counter

	// Worker Metrics - Report generation workers
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "warroom",
		subsystem:        "scouting",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics - Report and evaluation flow
	m.reportsGenerated = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "reports_generated_total",
			Help:      "Total number of scouting reports generated by kind",
		},
		[]string{"kind"},
	)

	m.assemblyLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_assembly_latency_milliseconds",
		Help:      "Histogram of report assembly latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.evaluationsResolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_resolved_total",
		Help:      "Total number of scout evaluations resolved against revealed attributes",
	})

	m.evaluationHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_hits_total",
		Help:      "Total number of resolved evaluations classified as hits",
	})

	m.evaluationMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_misses_total",
		Help:      "Total number of resolved evaluations classified as misses",
	})

	m.disagreements = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "disagreements_total",
			Help:      "Total number of scout disagreements detected by severity",
		},
		[]string{"severity"},
	)

	// Cycle Metrics - Scouting cycle execution
	m.cyclesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycles_completed_total",
		Help:      "Total number of scouting cycles completed",
	})

	m.cycleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_duration_milliseconds",
		Help:      "Scouting cycle duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.seasonsAdvanced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seasons_advanced_total",
		Help:      "Total number of season boundaries processed",
	})

	// Board Metrics - Big board rebuild timings
	m.boardRebuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_rebuilds_total",
		Help:      "Total number of big board rebuilds",
	})

	m.boardRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_rebuild_duration_milliseconds",
		Help:      "Big board rebuild duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.boardLastRebuildUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_last_rebuild_unix",
		Help:      "Unix timestamp of the last big board rebuild",
	})

	m.boardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_size",
		Help:      "Number of prospects currently ranked on the big board",
	})

	// Operational Health Metrics - System scale indicators
	m.prospectCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prospect_count",
		Help:      "Total number of prospects under evaluation (business scale)",
	})

	m.scoutCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scout_count",
		Help:      "Total number of scouts on staff",
	})

	// Queue Metrics - Assignment queue performance
	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current size of the assignment queue (backlog indicator)",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum assignment queue capacity",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization_ratio",
		Help:      "Queue utilization ratio (current size / capacity)",
	})

	m.queueEnqueueRate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_total",
		Help:      "Total number of assignments enqueued",
	})

	m.queueDequeueRate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeue_total",
		Help:      "Total number of assignments dequeued",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Total number of enqueue failures (queue full or closed)",
	})

	m.assignmentsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assignments_duplicate_total",
		Help:      "Total number of duplicate assignments dropped (indicates dispatch quality)",
	})

	// Worker Metrics - Report generation workers
	m.workerActiveCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_active_count",
		Help:      "Number of active report generation workers",
	})

	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_latency_milliseconds",
		Help:      "Worker processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrorRate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total number of worker errors",
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordReportGenerated increments the generated reports counter for a report kind.
func RecordReportGenerated(kind string) {
	globalManager.reportsGenerated.WithLabelValues(kind).Inc()
}

// RecordAssemblyLatency records report assembly latency in milliseconds.
func RecordAssemblyLatency(latencyMs float64) {
	globalManager.assemblyLatency.Observe(latencyMs)
}

// RecordEvaluationResolved increments the resolved evaluations counter.
func RecordEvaluationResolved() {
	globalManager.evaluationsResolved.Inc()
}

// RecordEvaluationHit increments the evaluation hits counter.
func RecordEvaluationHit() {
	globalManager.evaluationHits.Inc()
}

// RecordEvaluationMiss increments the evaluation misses counter.
func RecordEvaluationMiss() {
	globalManager.evaluationMisses.Inc()
}

// RecordDisagreement increments the disagreements counter for a severity.
func RecordDisagreement(severity string) {
	globalManager.disagreements.WithLabelValues(severity).Inc()
}

// RecordCycleCompleted increments the completed cycles counter.
func RecordCycleCompleted() {
	globalManager.cyclesCompleted.Inc()
}

// RecordCycleDuration records scouting cycle duration in milliseconds.
func RecordCycleDuration(durationMs float64) {
	globalManager.cycleDuration.Observe(durationMs)
}

// RecordSeasonAdvanced increments the seasons advanced counter.
func RecordSeasonAdvanced() {
	globalManager.seasonsAdvanced.Inc()
}

// RecordBoardRebuild records a big board rebuild and its duration.
func RecordBoardRebuild(durationMs float64) {
	globalManager.boardRebuilds.Inc()
	globalManager.boardRebuildDuration.Observe(durationMs)
	globalManager.boardLastRebuildUnix.Set(float64(time.Now().Unix()))
}

// UpdateBoardSize sets the number of prospects on the big board.
func UpdateBoardSize(count int) {
	globalManager.boardSize.Set(float64(count))
}

// UpdateProspectCount sets the total prospect count.
func UpdateProspectCount(count int) {
	globalManager.prospectCount.Set(float64(count))
}

// UpdateScoutCount sets the total scout count.
func UpdateScoutCount(count int) {
	globalManager.scoutCount.Set(float64(count))
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordAssignmentDuplicate increments the duplicate assignments counter.
func RecordAssignmentDuplicate() {
	globalManager.assignmentsDuplicate.Inc()
}

// Worker Metrics Functions.

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrorRate.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
