package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records template metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompile records a template compilation and its shape.
	RecordCompile(ctx context.Context, template string, variables, nodes int)

	// RecordRender records a render with its duration and error status.
	RecordRender(ctx context.Context, template string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compiles      metric.Int64Counter
	variables     metric.Int64Histogram
	renders       metric.Int64Counter
	renderErrors  metric.Int64Counter
	renderLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the default OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("stringtemplate")

	compiles, err := meter.Int64Counter("stringtemplate.compiles",
		metric.WithDescription("Number of template compilations"),
	)
	if err != nil {
		return nil, err
	}

	variables, err := meter.Int64Histogram("stringtemplate.template.variables",
		metric.WithDescription("Distinct variables per compiled template"),
	)
	if err != nil {
		return nil, err
	}

	renders, err := meter.Int64Counter("stringtemplate.renders",
		metric.WithDescription("Number of template renders"),
	)
	if err != nil {
		return nil, err
	}

	renderErrors, err := meter.Int64Counter("stringtemplate.render.errors",
		metric.WithDescription("Number of failed template renders"),
	)
	if err != nil {
		return nil, err
	}

	renderLatency, err := meter.Float64Histogram("stringtemplate.render.latency_ms",
		metric.WithDescription("Template render latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compiles:      compiles,
		variables:     variables,
		renders:       renders,
		renderErrors:  renderErrors,
		renderLatency: renderLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before the first call:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCompile records a template compilation.
func (m *otelMetrics) RecordCompile(ctx context.Context, template string, variables, nodes int) {
	attrs := metric.WithAttributes(attribute.String("template", template))
	m.compiles.Add(ctx, 1, attrs)
	m.variables.Record(ctx, int64(variables), attrs)
}

// RecordRender records a template render.
func (m *otelMetrics) RecordRender(ctx context.Context, template string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("template", template),
		attribute.Bool("success", err == nil),
	)
	m.renders.Add(ctx, 1, attrs)
	m.renderLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.renderErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("template", template)))
	}
}
