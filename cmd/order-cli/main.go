package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/kart-orders-cli/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	// After the first interrupt, restore the default handler so a second
	// Ctrl-C kills the process.
	context.AfterFunc(ctx, cancel)

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "order-cli: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	lg, err := app.NewLogger(cfg.Log)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer func() { _ = lg.Sync() }()

	err = app.Run(ctx, lg, cfg, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		lg.Debug("Interrupted", zap.Error(err))
		fmt.Fprintln(os.Stdout)
		return nil
	}
	if err != nil {
		lg.Debug("Session failed", zap.Error(err))
		return err
	}
	return nil
}
