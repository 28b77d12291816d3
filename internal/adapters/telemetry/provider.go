package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.ridx.dev/ridx/internal/core/ports"
)

// Setup installs a global OTel tracer provider whose spans are forwarded to
// the logger when verbose is enabled. The returned shutdown function flushes
// pending spans.
func Setup(logger ports.Logger, verbose bool) func(context.Context) error {
	var opts []sdktrace.TracerProviderOption
	if verbose {
		opts = append(opts, sdktrace.WithSpanProcessor(NewLogBridge(logger)))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)
	return provider.Shutdown
}

// LogBridge implements sdktrace.SpanProcessor, logging each completed span
// with its duration. It backs the --trace flag.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a LogBridge writing to logger.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart is a no-op; spans are reported on completion.
func (b *LogBridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the completed span.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil {
		return
	}
	b.logger.Info("span",
		"name", s.Name(),
		"duration", s.EndTime().Sub(s.StartTime()).Round(time.Microsecond).String(),
	)
}

// Shutdown implements sdktrace.SpanProcessor.
func (b *LogBridge) Shutdown(context.Context) error { return nil }

// ForceFlush implements sdktrace.SpanProcessor.
func (b *LogBridge) ForceFlush(context.Context) error { return nil }
