package analyzer

import (
	"log/slog"

	"github.com/viant/blazelint/analyzer/executor"
	"github.com/viant/blazelint/config"
	"github.com/viant/blazelint/telemetry/metrics"
	"github.com/viant/blazelint/telemetry/tracing"
)

type Option func(*Analyzer)

// WithConfig sets linter configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.config = cfg
	}
}

// WithLogger sets a structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithMetrics sets a metrics collector
func WithMetrics(collector *metrics.Collector) Option {
	return func(a *Analyzer) {
		a.metrics = collector
	}
}

// WithGuards replaces configured guard predicates, e.g. to recognize framework specific conditionals
func WithGuards(guards executor.Guards) Option {
	return func(a *Analyzer) {
		a.guards = &guards
	}
}

// WithEnvironment applies one environment to every supported file
func WithEnvironment(env executor.Environment) Option {
	return func(a *Analyzer) {
		a.force = &env
	}
}

// WithCache sets an analysis cache shared across runs
func WithCache(cache *Cache) Option {
	return func(a *Analyzer) {
		a.cache = cache
	}
}

// WithTracer sets a tracer recording project and file analysis spans
func WithTracer(tracer *tracing.Tracer) Option {
	return func(a *Analyzer) {
		a.tracer = tracer
	}
}
