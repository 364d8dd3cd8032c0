// Package observability provides OpenTelemetry tracing for dataprep runs.
package observability

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/ajitpratap0/dataprep"

// TracingConfig contains tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	// Output receives finished spans as JSON. Nil disables tracing.
	Output io.Writer
	// PrettyPrint indents the exported JSON.
	PrettyPrint bool
	// OmitTimestamps drops span timestamps, for reproducible output.
	OmitTimestamps bool
}

// Tracing owns a tracer provider for the lifetime of one command.
type Tracing struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// InitTracing builds a tracer provider exporting to cfg.Output and installs
// it globally. With a nil Output a no-op tracer is returned and the global
// provider is left alone.
func InitTracing(cfg TracingConfig) (*Tracing, error) {
	if cfg.Output == nil {
		return &Tracing{tracer: noop.NewTracerProvider().Tracer(instrumentationName)}, nil
	}

	opts := []stdouttrace.Option{stdouttrace.WithWriter(cfg.Output)}
	if cfg.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	if cfg.OmitTimestamps {
		opts = append(opts, stdouttrace.WithoutTimestamps())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(cfg.ServiceVersion),
	)

	// Spans are exported synchronously: a CLI run is short and must not lose
	// spans to an unflushed batch on exit.
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(provider)

	return &Tracing{provider: provider, tracer: provider.Tracer(instrumentationName)}, nil
}

// Tracer returns the tracer for dataprep spans.
func (t *Tracing) Tracer() trace.Tracer {
	return t.tracer
}

// StartSpan starts a span named name carrying attrs.
func (t *Tracing) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Shutdown flushes and stops the provider.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
