package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceName identifies spans exported by the linter
const DefaultServiceName = "blazelint"

const instrumentationName = "github.com/viant/blazelint"

// Config contains tracing configuration
type Config struct {
	// Enabled controls whether spans are exported
	Enabled bool `yaml:"enabled,omitempty"`
	// Endpoint is the OTLP gRPC collector address, e.g. localhost:4317
	Endpoint string `yaml:"endpoint,omitempty"`
	// Insecure disables TLS for the collector connection
	Insecure bool `yaml:"insecure,omitempty"`
	// SampleRatio is the fraction of analysis runs to sample (0.0 to 1.0), 0 means all
	SampleRatio float64 `yaml:"sampleRatio,omitempty"`
	// ServiceName defaults to DefaultServiceName
	ServiceName string `yaml:"serviceName,omitempty"`
}

// Validate checks tracing configuration
func (c *Config) Validate() error {
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("tracing.sampleRatio: %v out of range [0, 1]", c.SampleRatio)
	}
	if c.Enabled && c.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint was empty")
	}
	return nil
}

// Tracer wraps the OpenTelemetry tracer; a nil Tracer starts non-recording spans
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// New creates a tracer exporting spans over OTLP gRPC, or a noop tracer if tracing is disabled.
// The tracer must be shut down to flush pending spans.
func New(ctx context.Context, cfg *Config) (*Tracer, error) {
	if cfg == nil || !cfg.Enabled {
		return &Tracer{tracer: noop.NewTracerProvider().Tracer(instrumentationName)}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		options = append(options, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(options...))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", serviceName)))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRatio > 0 {
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRatio)
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return NewWithProvider(provider), nil
}

// NewWithProvider creates a tracer backed by provider
func NewWithProvider(provider *sdktrace.TracerProvider) *Tracer {
	return &Tracer{tracer: provider.Tracer(instrumentationName), provider: provider}
}

// Start creates a span linked to the parent span from ctx
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Shutdown flushes pending spans
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// RecordError marks span as failed
func RecordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
