package order

import (
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/xenking/kart-orders-cli/internal/domain/order"

// Telemetry holds the tracer and instruments used by Service. Create it once
// and share it between services.
type Telemetry struct {
	tracer  trace.Tracer
	placed  metric.Int64Counter
	revenue metric.Float64Counter
}

// NewTelemetry creates Telemetry from the given providers.
func NewTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) (*Telemetry, error) {
	meter := mp.Meter(instrumentationName)

	placed, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Number of orders placed"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create orders.placed counter")
	}

	revenue, err := meter.Float64Counter("orders.revenue",
		metric.WithDescription("Sum of charged order totals"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create orders.revenue counter")
	}

	return &Telemetry{
		tracer:  tp.Tracer(instrumentationName),
		placed:  placed,
		revenue: revenue,
	}, nil
}

// NoopTelemetry returns Telemetry that records nothing.
func NoopTelemetry() *Telemetry {
	t, err := NewTelemetry(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider())
	if err != nil {
		// Noop instruments never fail.
		panic(err)
	}
	return t
}
