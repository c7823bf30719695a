package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config selects whether an SDK provider is installed and how it samples.
type Config struct {
	Enabled     bool
	ServiceName string
	SampleRatio float64
}

// ShutdownFunc flushes and stops the provider installed by Setup.
type ShutdownFunc func(context.Context) error

// Setup installs the global propagator and, when enabled, an SDK tracer
// provider exporting to logger. With tracing disabled the no-op provider
// stays in place, but incoming trace context is still propagated.
func Setup(cfg Config, logger *slog.Logger) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
		return nil, fmt.Errorf("tracing: sample ratio %v out of range [0, 1]", cfg.SampleRatio)
	}

	tp := NewProvider(cfg, NewLogExporter(logger))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// NewProvider builds the SDK provider Setup installs, batching spans into exp.
func NewProvider(cfg Config, exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	name := cfg.ServiceName
	if name == "" {
		name = instrumentationName
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
		sdktrace.WithBatcher(exp),
	)
}
