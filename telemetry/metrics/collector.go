package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name
const Namespace = "blazelint"

// Collector tracks analysis metrics.
//
// Metrics:
//   - blazelint_files_analyzed_total: Files analyzed by environment
//   - blazelint_diagnostics_total: Reported diagnostics by kind
//   - blazelint_cache_hits_total: Files served from the analysis cache
//   - blazelint_file_errors_total: Files that could not be read or parsed
//   - blazelint_analysis_duration_seconds: Per file analysis duration
type Collector struct {
	registry *prometheus.Registry

	filesAnalyzed    *prometheus.CounterVec
	diagnostics      *prometheus.CounterVec
	cacheHits        prometheus.Counter
	fileErrors       prometheus.Counter
	analysisDuration prometheus.Histogram
}

// NewCollector creates and registers analysis metrics with the provided registry.
// If registry is nil, a new registry is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	c := &Collector{
		registry: registry,
		filesAnalyzed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "files_analyzed_total",
				Help:      "Total number of analyzed files",
			},
			[]string{"env"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "diagnostics_total",
				Help:      "Total number of reported diagnostics",
			},
			[]string{"kind"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of files served from the analysis cache",
		}),
		fileErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "file_errors_total",
			Help:      "Total number of files that could not be analyzed",
		}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of single file analysis in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs to 1.6s
		}),
	}
	registry.MustRegister(c.filesAnalyzed, c.diagnostics, c.cacheHits, c.fileErrors, c.analysisDuration)
	return c
}

// Registry returns the registry holding the metrics
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordFile records an analyzed file
func (c *Collector) RecordFile(env string, duration time.Duration) {
	if c == nil {
		return
	}
	c.filesAnalyzed.WithLabelValues(env).Inc()
	c.analysisDuration.Observe(duration.Seconds())
}

// RecordDiagnostic records a reported diagnostic
func (c *Collector) RecordDiagnostic(kind string) {
	if c == nil {
		return
	}
	c.diagnostics.WithLabelValues(kind).Inc()
}

// RecordCacheHit records a file served from cache
func (c *Collector) RecordCacheHit() {
	if c == nil {
		return
	}
	c.cacheHits.Inc()
}

// RecordFileError records a file that could not be analyzed
func (c *Collector) RecordFileError() {
	if c == nil {
		return
	}
	c.fileErrors.Inc()
}

// WriteToTextfile writes metrics in the Prometheus text format,
// e.g. for the node exporter textfile collector
func (c *Collector) WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, c.registry)
}
