package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "tmux-deck"

// Metrics holds the OTEL instruments for tmux invocations.
// All methods are nil-safe and safe for concurrent use.
type Metrics struct {
	// Commands counts invocations partitioned by op and outcome
	// ("ok", "launch failed", "command failed", ...).
	Commands metric.Int64Counter
	// CommandDuration is the wall-clock duration of each invocation.
	CommandDuration metric.Float64Histogram
}

// NewMetrics creates the instruments. They are no-ops when no MeterProvider
// is registered.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Commands, err = meter.Int64Counter("tmux.commands",
		metric.WithDescription("Total tmux invocations partitioned by op and outcome"))
	if err != nil {
		return nil, err
	}

	m.CommandDuration, err = meter.Float64Histogram("tmux.command.duration",
		metric.WithDescription("Duration of tmux invocations"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCommand records one finished invocation.
func (m *Metrics) RecordCommand(ctx context.Context, op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("tmux.op", op),
		attribute.String("tmux.outcome", outcome),
	)
	m.Commands.Add(ctx, 1, attrs)
	m.CommandDuration.Record(ctx, float64(d.Microseconds())/1000, attrs)
}
