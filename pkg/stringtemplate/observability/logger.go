// Package observability provides logging, metrics and tracing for template
// compilation and rendering.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds the template name to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "welcome-email")
//	enriched.Info("rendering") // includes template
func EnrichLogger(logger *slog.Logger, template string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("template", template))
}

// LogCompile logs a template compilation.
func LogCompile(logger *slog.Logger, template string, variables, nodes int) {
	if logger == nil {
		return
	}
	logger.Debug("template compiled",
		slog.String("template", template),
		slog.Int("variables", variables),
		slog.Int("nodes", nodes),
	)
}

// LogRenderComplete logs a successful render.
func LogRenderComplete(logger *slog.Logger, template string, durationMs float64, outputBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("template rendered",
		slog.String("template", template),
		slog.Float64("duration_ms", durationMs),
		slog.Int("output_bytes", outputBytes),
	)
}

// LogRenderError logs a failed render.
func LogRenderError(logger *slog.Logger, template string, err error) {
	if logger == nil {
		return
	}
	logger.Error("template render failed",
		slog.String("template", template),
		slog.String("error", err.Error()),
	)
}

// LogStoreLoad logs templates loaded from a store.
func LogStoreLoad(logger *slog.Logger, count int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("templates loaded",
		slog.Int("count", count),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogStoreError logs a failed store operation.
func LogStoreError(logger *slog.Logger, template string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("template store failed",
		slog.String("template", template),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
