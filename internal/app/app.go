// Package app wires configuration, logging and the order session together.
package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/xenking/kart-orders-cli/internal/cli"
	"github.com/xenking/kart-orders-cli/internal/domain/order"
	"github.com/xenking/kart-orders-cli/internal/storage/console"
)

// Run creates all dependencies and runs one interactive session reading from
// in and writing to out. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config, in io.Reader, out io.Writer) error {
	lg.Debug("Initializing",
		zap.Float64("discount_rate", cfg.Discount.Rate),
		zap.String("output_format", cfg.Output.Format),
	)

	format, err := console.ParseFormat(cfg.Output.Format)
	if err != nil {
		return errors.Wrap(err, "output format")
	}

	// Global providers are noop unless something installs an SDK.
	tel, err := order.NewTelemetry(otel.GetTracerProvider(), otel.GetMeterProvider())
	if err != nil {
		return errors.Wrap(err, "create telemetry")
	}

	repo := console.NewOrderRepository(out, format)

	session, err := cli.NewSession(in, out, repo, cli.Options{
		DiscountRate: decimal.NewFromFloat(cfg.Discount.Rate),
		Telemetry:    tel,
	})
	if err != nil {
		return errors.Wrap(err, "create session")
	}

	return session.Run(zctx.Base(ctx, lg))
}
