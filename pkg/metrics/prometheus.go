// Package metrics provides Prometheus metrics for the elocute scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager manages all Prometheus metrics for the scoring service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core scoring metrics
	reportsScored    prometheus.Counter
	emptyTranscripts prometheus.Counter
	scoringLatency   prometheus.Histogram
	finalScores      prometheus.Histogram

	// Signal health metrics
	signalDegraded *prometheus.CounterVec

	// Grammar checker metrics
	grammarCheckLatency prometheus.Histogram
	grammarCheckErrors  prometheus.Counter

	// Embedding metrics
	embeddingLatency    prometheus.Histogram
	embeddingErrors     prometheus.Counter
	embeddingCacheHits  prometheus.Counter
	embeddingCacheMiss  prometheus.Counter
	embeddingCacheSize  prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "elocute",
		subsystem:        "scoring",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.register()
	return m
}

func (m *Manager) register() {
	factory := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
		}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
		}
	}
	histOpts := func(name, help string, buckets []float64) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		}
	}

	m.reportsScored = prometheus.NewCounter(factory(
		"reports_scored_total", "Total number of transcripts scored"))
	m.emptyTranscripts = prometheus.NewCounter(factory(
		"empty_transcripts_total", "Total number of empty transcript submissions"))
	m.scoringLatency = prometheus.NewHistogram(histOpts(
		"scoring_latency_ms", "End-to-end scoring latency in milliseconds", m.histogramBuckets))
	m.finalScores = prometheus.NewHistogram(histOpts(
		"final_score", "Distribution of final normalized scores",
		[]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}))

	m.signalDegraded = prometheus.NewCounterVec(factory(
		"signal_degraded_total", "Scoring signals that fell back to a neutral default"),
		[]string{"signal"})

	m.grammarCheckLatency = prometheus.NewHistogram(histOpts(
		"grammar_check_latency_ms", "Grammar check request latency in milliseconds", m.histogramBuckets))
	m.grammarCheckErrors = prometheus.NewCounter(factory(
		"grammar_check_errors_total", "Grammar checker calls that failed"))

	m.embeddingLatency = prometheus.NewHistogram(histOpts(
		"embedding_latency_ms", "Embedding computation latency in milliseconds", m.histogramBuckets))
	m.embeddingErrors = prometheus.NewCounter(factory(
		"embedding_errors_total", "Embedding provider calls that failed"))
	m.embeddingCacheHits = prometheus.NewCounter(factory(
		"embedding_cache_hits_total", "Embedding cache hits"))
	m.embeddingCacheMiss = prometheus.NewCounter(factory(
		"embedding_cache_misses_total", "Embedding cache misses"))
	m.embeddingCacheSize = prometheus.NewGauge(gaugeOpts(
		"embedding_cache_size", "Current number of cached embeddings"))

	m.httpRequests = prometheus.NewCounterVec(factory(
		"http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(histOpts(
		"http_request_duration_ms", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status"})
	m.errorsByEndpoint = prometheus.NewCounterVec(factory(
		"http_errors_total", "HTTP error responses by endpoint and type"),
		[]string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = prometheus.NewGauge(gaugeOpts(
		"system_memory_bytes", "Current allocated heap bytes"))
	m.systemGoroutineCount = prometheus.NewGauge(gaugeOpts(
		"system_goroutines", "Current number of goroutines"))
	m.systemGCPauseTime = prometheus.NewHistogram(histOpts(
		"system_gc_pause_ms", "Average GC pause time in milliseconds", m.histogramBuckets))

	if !m.enabled {
		return
	}
	m.registry.MustRegister(
		m.reportsScored, m.emptyTranscripts, m.scoringLatency, m.finalScores,
		m.signalDegraded,
		m.grammarCheckLatency, m.grammarCheckErrors,
		m.embeddingLatency, m.embeddingErrors, m.embeddingCacheHits, m.embeddingCacheMiss, m.embeddingCacheSize,
		m.httpRequests, m.httpRequestDuration, m.errorsByEndpoint,
		m.systemMemoryUsage, m.systemGoroutineCount, m.systemGCPauseTime,
	)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

// RecordReportScored increments the scored-reports counter.
func RecordReportScored() { globalManager.reportsScored.Inc() }

// RecordEmptyTranscript increments the empty-transcript counter.
func RecordEmptyTranscript() { globalManager.emptyTranscripts.Inc() }

// RecordScoringLatency records the end-to-end scoring latency in milliseconds.
func RecordScoringLatency(ms float64) { globalManager.scoringLatency.Observe(ms) }

// RecordFinalScore records a final normalized score.
func RecordFinalScore(score float64) { globalManager.finalScores.Observe(score) }

// RecordSignalDegraded notes a signal that fell back to its neutral default.
func RecordSignalDegraded(signal string) {
	globalManager.signalDegraded.WithLabelValues(signal).Inc()
}

// RecordGrammarCheckLatency records one grammar-check call latency in milliseconds.
func RecordGrammarCheckLatency(ms float64) { globalManager.grammarCheckLatency.Observe(ms) }

// RecordGrammarCheckError increments the grammar-check error counter.
func RecordGrammarCheckError() { globalManager.grammarCheckErrors.Inc() }

// RecordEmbeddingLatency records one embedding call latency in milliseconds.
func RecordEmbeddingLatency(ms float64) { globalManager.embeddingLatency.Observe(ms) }

// RecordEmbeddingError increments the embedding error counter.
func RecordEmbeddingError() { globalManager.embeddingErrors.Inc() }

// RecordEmbeddingCacheHit increments the embedding cache hit counter.
func RecordEmbeddingCacheHit() { globalManager.embeddingCacheHits.Inc() }

// RecordEmbeddingCacheMiss increments the embedding cache miss counter.
func RecordEmbeddingCacheMiss() { globalManager.embeddingCacheMiss.Inc() }

// UpdateEmbeddingCacheSize sets the current embedding cache size.
func UpdateEmbeddingCacheSize(n int) { globalManager.embeddingCacheSize.Set(float64(n)) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// RecordErrorByEndpoint records an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the current allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }

// RecordSystemGCPauseTime records the average GC pause time in milliseconds.
func RecordSystemGCPauseTime(ms float64) { globalManager.systemGCPauseTime.Observe(ms) }
