// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"

	"go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/canonical/oauth2-login/internal/logging"
)

const serviceName = "oauth2-login"

type Tracer struct {
	tracer trace.Tracer

	logger logging.LoggerInterface
}

func (t *Tracer) init(service string, e sdktrace.SpanExporter) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(e),
		sdktrace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceNameKey.String(service),
			),
		),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			jaeger.Jaeger{},
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	t.tracer = otel.Tracer(service)
}

func (t *Tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, spanName, opts...)
}

func (t *Tracer) exporter(cfg *Config) (sdktrace.SpanExporter, error) {
	ctx := context.Background()

	if cfg.OtelGRPCEndpoint != "" {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.OtelGRPCEndpoint),
		)
	}

	if cfg.OtelHTTPEndpoint != "" {
		return otlptracehttp.New(
			ctx,
			otlptracehttp.WithInsecure(),
			otlptracehttp.WithEndpoint(cfg.OtelHTTPEndpoint),
		)
	}

	if cfg.Debug {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}

	return nil, nil
}

// NewTracer returns an OpenTelemetry backed tracer, exporting over gRPC or
// HTTP depending on the configured endpoints, or to stdout in debug mode
func NewTracer(cfg *Config) *Tracer {
	t := new(Tracer)
	t.logger = cfg.Logger

	if !cfg.Enabled {
		t.tracer = noop.NewTracerProvider().Tracer(serviceName)
		return t
	}

	exp, err := t.exporter(cfg)
	if err != nil {
		t.logger.Errorf("unable to initialize tracing exporter, falling back to noop: %v", err)
		t.tracer = noop.NewTracerProvider().Tracer(serviceName)
		return t
	}

	if exp == nil {
		t.logger.Info("no tracing endpoint configured, spans are dropped")
		t.tracer = noop.NewTracerProvider().Tracer(serviceName)
		return t
	}

	t.init(serviceName, exp)

	return t
}

// NewNoopTracer returns a tracer that records nothing
func NewNoopTracer() *Tracer {
	t := new(Tracer)
	t.tracer = noop.NewTracerProvider().Tracer(serviceName)
	t.logger = logging.NewNoopLogger()

	return t
}
