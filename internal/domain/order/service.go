// Package order holds the order record and the service that places it.
package order

import (
	"context"
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/kart-orders-cli/internal/domain/discount"
	"github.com/xenking/kart-orders-cli/internal/domain/payment"
)

// Service places a single order with one payment method and one discount
// policy. Build a new Service when either changes.
type Service struct {
	payment  payment.Strategy
	discount discount.Strategy
	orders   Repository
	out      io.Writer
	tel      *Telemetry
}

// Option configures a Service.
type Option func(*Service)

// WithTelemetry sets the tracer and instruments used by the service.
func WithTelemetry(t *Telemetry) Option {
	return func(s *Service) {
		if t != nil {
			s.tel = t
		}
	}
}

// NewService creates an order Service. Progress lines are written to out.
func NewService(
	p payment.Strategy,
	d discount.Strategy,
	orders Repository,
	out io.Writer,
	opts ...Option,
) *Service {
	s := &Service{
		payment:  p,
		discount: d,
		orders:   orders,
		out:      out,
	}
	for _, o := range opts {
		o(s)
	}
	if s.tel == nil {
		s.tel = NoopTelemetry()
	}
	return s
}

// PlaceOrder applies the discount to total, charges the result and saves the
// order, in that order. The first failing step aborts the rest.
func (s *Service) PlaceOrder(ctx context.Context, o *Order, total decimal.Decimal) (_ *Receipt, rerr error) {
	attrs := []attribute.KeyValue{
		attribute.String("payment.method", string(s.payment.Method())),
		attribute.String("discount", s.discount.Description()),
	}
	ctx, span := s.tel.tracer.Start(ctx, "order.PlaceOrder",
		trace.WithAttributes(append(attrs, attribute.String("order.id", o.ID))...),
	)
	defer func() {
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	discounted := s.discount.Apply(total).Round(2)
	if _, err := fmt.Fprintf(s.out, "Final total after discount: %s\n", discounted.StringFixed(2)); err != nil {
		return nil, errors.Wrap(err, "write total")
	}

	confirmation, err := s.payment.Process(ctx, discounted)
	if err != nil {
		return nil, errors.Wrap(err, "process payment")
	}
	if _, err := fmt.Fprintln(s.out, confirmation.Message); err != nil {
		return nil, errors.Wrap(err, "write confirmation")
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, errors.Wrap(err, "save order")
	}

	s.tel.placed.Add(ctx, 1, metric.WithAttributes(attrs...))
	s.tel.revenue.Add(ctx, discounted.InexactFloat64(), metric.WithAttributes(attrs...))

	zctx.From(ctx).Debug("Order placed",
		zap.String("order_id", o.ID),
		zap.String("customer", o.Customer),
		zap.Stringer("total", discounted),
		zap.String("transaction_id", confirmation.TransactionID),
	)

	return &Receipt{
		OrderID:  o.ID,
		Subtotal: total,
		Discount: total.Sub(discounted),
		Total:    discounted,
		Payment:  confirmation,
	}, nil
}
