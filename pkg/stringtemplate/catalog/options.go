package catalog

import (
	"log/slog"

	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate/observability"
)

// catalogConfig holds catalog configuration.
type catalogConfig struct {
	logger         *slog.Logger
	metricsEnabled bool
	tracingEnabled bool
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
}

func defaultCatalogConfig() catalogConfig {
	return catalogConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Catalog.
type Option func(*catalogConfig)

// WithLogger sets the logger for compile and render events.
// Default: nil (no logging)
func WithLogger(logger *slog.Logger) Option {
	return func(c *catalogConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics using the global meter provider.
// Default: false
func WithMetrics(enabled bool) Option {
	return func(c *catalogConfig) {
		c.metricsEnabled = enabled
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry render spans using the global tracer provider.
// Default: false
func WithTracing(enabled bool) Option {
	return func(c *catalogConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}
