// Package metrics provides Prometheus metrics for the teamfit service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100} //nolint:gochecknoglobals // fixed score bands

// Manager manages all Prometheus metrics for the teamfit service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Scoring
	fitScoresComputed *prometheus.CounterVec
	fitScoreValue     *prometheus.HistogramVec
	scoringLatency    prometheus.Histogram
	scoringErrors     prometheus.Counter

	// Simulation
	simulationsRun prometheus.Counter

	// Batch placement
	batchRuns          *prometheus.CounterVec
	assignmentsMade    prometheus.Counter
	transfersProposed  prometheus.Counter
	batchEarlyStops    prometheus.Counter
	unplacedCandidates prometheus.Counter

	// Worker pool
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Configuration
	configErrors prometheus.Counter

	// System
	systemMemoryUsage   prometheus.Gauge
	systemGoroutines    prometheus.Gauge
	systemGCPauseTimeMs prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

var (
	globalManager  atomic.Pointer[Manager]             //nolint:gochecknoglobals // intentional global for singleton metrics manager
	globalRegistry atomic.Pointer[prometheus.Registry] //nolint:gochecknoglobals // registry backing the global manager
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// registry, so previously exported series are dropped. Call it before
// serving; handlers built from an earlier GetRegistry keep the old registry.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	m := NewManager(append([]Option{WithPrometheusRegistry(registry)}, opts...)...)
	globalRegistry.Store(registry)
	globalManager.Store(m)
}

func global() *Manager {
	return globalManager.Load()
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teamfit",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.fitScoresComputed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fit_scores_computed_total",
		Help:        "Total number of fit scores computed by preference mode",
		ConstLabels: m.customLabels,
	}, []string{"mode"})
	m.fitScoreValue = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fit_score",
		Help:        "Distribution of total fit scores by preference mode",
		Buckets:     scoreBuckets,
		ConstLabels: m.customLabels,
	}, []string{"mode"})
	m.scoringLatency = m.histogram("scoring_latency_milliseconds", "Histogram of fit score computation latency in milliseconds")
	m.scoringErrors = m.counter("scoring_errors_total", "Total number of failed fit score computations")

	m.simulationsRun = m.counter("simulations_total", "Total number of team simulations run")

	m.batchRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_runs_total",
		Help:        "Total number of batch placement runs by strategy",
		ConstLabels: m.customLabels,
	}, []string{"strategy"})
	m.assignmentsMade = m.counter("assignments_total", "Total number of candidate assignments made")
	m.transfersProposed = m.counter("transfers_proposed_total", "Total number of transfer proposals emitted")
	m.batchEarlyStops = m.counter("batch_early_stops_total", "Total number of batch runs that stopped at an unmatched candidate")
	m.unplacedCandidates = m.counter("unplaced_candidates_total", "Total number of candidates left without a team")

	m.workerCount = m.gauge("worker_count", "Configured number of scoring workers")
	m.workerActiveCount = m.gauge("worker_active_count", "Number of workers currently scoring")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Histogram of worker task latency in milliseconds")
	m.workerErrors = m.counter("worker_errors_total", "Total number of failed worker tasks")

	m.configErrors = m.counter("config_errors_total", "Total number of configuration errors")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap memory allocated by the process in bytes")
	m.systemGoroutines = m.gauge("system_goroutines", "Number of running goroutines")
	m.systemGCPauseTimeMs = m.histogram("system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds")

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total number of errors by endpoint",
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "error_type"})
}

// RecordFitScore records one computed fit score.
func (m *Manager) RecordFitScore(mode string, score, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.fitScoresComputed.WithLabelValues(mode).Inc()
	m.fitScoreValue.WithLabelValues(mode).Observe(score)
	m.scoringLatency.Observe(latencyMs)
}

// RecordScoringError records a failed fit score computation.
func (m *Manager) RecordScoringError() {
	if m.enabled {
		m.scoringErrors.Inc()
	}
}

// RecordSimulation records one team simulation.
func (m *Manager) RecordSimulation() {
	if m.enabled {
		m.simulationsRun.Inc()
	}
}

// RecordBatchRun records the outcome of a batch placement run.
func (m *Manager) RecordBatchRun(strategy string, assignments, transfers, unplaced int, stoppedEarly bool) {
	if !m.enabled {
		return
	}
	m.batchRuns.WithLabelValues(strategy).Inc()
	m.assignmentsMade.Add(float64(assignments))
	m.transfersProposed.Add(float64(transfers))
	m.unplacedCandidates.Add(float64(unplaced))
	if stoppedEarly {
		m.batchEarlyStops.Inc()
	}
}

// UpdateWorkerCount sets the configured worker count.
func (m *Manager) UpdateWorkerCount(count int) {
	if m.enabled {
		m.workerCount.Set(float64(count))
	}
}

// AddWorkerActive adjusts the number of busy workers by delta.
func (m *Manager) AddWorkerActive(delta int) {
	if m.enabled {
		m.workerActiveCount.Add(float64(delta))
	}
}

// RecordWorkerProcessingLatency records one worker task latency.
func (m *Manager) RecordWorkerProcessingLatency(latencyMs float64) {
	if m.enabled {
		m.workerProcessingLatency.Observe(latencyMs)
	}
}

// RecordWorkerError records a failed worker task.
func (m *Manager) RecordWorkerError() {
	if m.enabled {
		m.workerErrors.Inc()
	}
}

// RecordConfigError records a configuration load or validation failure.
func (m *Manager) RecordConfigError() {
	if m.enabled {
		m.configErrors.Inc()
	}
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if m.enabled {
		m.systemGoroutines.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records the average GC pause in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(ms float64) {
	if m.enabled {
		m.systemGCPauseTimeMs.Observe(ms)
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records an HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordErrorByEndpoint records an error returned by an endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// Package-level helpers delegate to the global manager.

// RecordFitScore records one computed fit score.
func RecordFitScore(mode string, score, latencyMs float64) {
	global().RecordFitScore(mode, score, latencyMs)
}

// RecordScoringError records a failed fit score computation.
func RecordScoringError() { global().RecordScoringError() }

// RecordSimulation records one team simulation.
func RecordSimulation() { global().RecordSimulation() }

// RecordBatchRun records the outcome of a batch placement run.
func RecordBatchRun(strategy string, assignments, transfers, unplaced int, stoppedEarly bool) {
	global().RecordBatchRun(strategy, assignments, transfers, unplaced, stoppedEarly)
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) { global().UpdateWorkerCount(count) }

// AddWorkerActive adjusts the number of busy workers by delta.
func AddWorkerActive(delta int) { global().AddWorkerActive(delta) }

// RecordWorkerProcessingLatency records one worker task latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	global().RecordWorkerProcessingLatency(latencyMs)
}

// RecordWorkerError records a failed worker task.
func RecordWorkerError() { global().RecordWorkerError() }

// RecordConfigError records a configuration load or validation failure.
func RecordConfigError() { global().RecordConfigError() }

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) { global().UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { global().UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records the average GC pause in milliseconds.
func RecordSystemGCPauseTime(ms float64) { global().RecordSystemGCPauseTime(ms) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	global().RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	global().RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByEndpoint records an error returned by an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	global().RecordErrorByEndpoint(endpoint, method, errorType)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return globalRegistry.Load()
}
