// Package cli runs the interactive order placement loop on a console.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/kart-orders-cli/internal/domain/discount"
	"github.com/xenking/kart-orders-cli/internal/domain/order"
	"github.com/xenking/kart-orders-cli/internal/domain/payment"
)

const (
	welcomeMessage  = "Welcome to the online store ordering system!"
	closingMessage  = "Thank you for using the system!"
	continuePrompt  = "Place another order? (y/n): "
	customerPrompt  = "Enter the customer name: "
	itemsPrompt     = "Enter the items separated by commas: "
	totalPrompt     = "Enter the order total: "
	retryMessageFmt = "Invalid %s: %s. Try again.\n"

	// maxLineSize bounds a single line of input.
	maxLineSize = 1 << 20
)

// Options configures a Session.
type Options struct {
	// DiscountRate is the fraction taken off by the percentage discount.
	DiscountRate decimal.Decimal
	Telemetry    *order.Telemetry
}

// Session reads orders from the console until the user stops.
type Session struct {
	in        *bufio.Scanner
	lines     chan inputLine
	out       io.Writer
	werr      error
	orders    order.Repository
	payments  menu[payment.Strategy]
	discounts menu[discount.Strategy]
	tel       *order.Telemetry
}

// NewSession creates a Session reading from in and writing to out. Placed
// orders are saved to orders.
func NewSession(in io.Reader, out io.Writer, orders order.Repository, opts Options) (*Session, error) {
	pct, err := discount.NewPercentage(opts.DiscountRate)
	if err != nil {
		return nil, errors.Wrap(err, "percentage discount")
	}
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	return &Session{
		in:        sc,
		out:       out,
		orders:    orders,
		payments:  paymentMenu(),
		discounts: discountMenu(pct),
		tel:       opts.Telemetry,
	}, nil
}

// Run places orders until the user declines to continue or input ends after
// a completed order. Cancelling ctx interrupts a pending prompt and Run
// returns ctx.Err().
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.lines = make(chan inputLine)
	go s.scan(ctx)

	lg := zctx.From(ctx)
	for n := 1; ; n++ {
		if err := s.placeOne(ctx); err != nil {
			return errors.Wrapf(err, "order %d", n)
		}

		more, err := s.askContinue(ctx)
		if err != nil {
			return err
		}
		if !more {
			lg.Debug("Session finished", zap.Int("orders", n))
			s.println(closingMessage)
			return s.werr
		}
	}
}

func (s *Session) placeOne(ctx context.Context) error {
	s.println(welcomeMessage)

	customer, err := s.readLine(ctx, customerPrompt)
	if err != nil {
		return errors.Wrap(err, "read customer")
	}
	itemsLine, err := s.readLine(ctx, itemsPrompt)
	if err != nil {
		return errors.Wrap(err, "read items")
	}
	total, err := s.readAmount(ctx)
	if err != nil {
		return errors.Wrap(err, "read total")
	}

	p, err := choose(ctx, s, s.payments)
	if err != nil {
		return errors.Wrap(err, "select payment")
	}
	d, err := choose(ctx, s, s.discounts)
	if err != nil {
		return errors.Wrap(err, "select discount")
	}

	o := order.New(strings.TrimSpace(customer), ParseItems(itemsLine))
	svc := order.NewService(p, d, s.orders, s.out, order.WithTelemetry(s.tel))
	if _, err := svc.PlaceOrder(ctx, o, total); err != nil {
		return errors.Wrap(err, "place order")
	}
	return s.werr
}

func (s *Session) askContinue(ctx context.Context) (bool, error) {
	answer, err := s.readLine(ctx, continuePrompt)
	if errors.Is(err, ErrInputClosed) {
		s.println("")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "s":
		return true, nil
	default:
		return false, nil
	}
}

func (s *Session) readAmount(ctx context.Context) (decimal.Decimal, error) {
	for {
		line, err := s.readLine(ctx, totalPrompt)
		if err != nil {
			return decimal.Zero, err
		}
		v, err := ParseAmount(line)
		if err == nil {
			return v, nil
		}
		if !s.retry(ctx, "total", err) {
			return decimal.Zero, err
		}
	}
}

func (s *Session) readOption(ctx context.Context, prompt, field string) (int, error) {
	for {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := ParseOption(line)
		if err == nil {
			return n, nil
		}
		if !s.retry(ctx, field, err) {
			return 0, err
		}
	}
}

// retry reports whether err is a ParseError the user may correct.
func (s *Session) retry(ctx context.Context, field string, err error) bool {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return false
	}
	zctx.From(ctx).Debug("Rejected input",
		zap.String("field", field),
		zap.String("input", pe.Input),
		zap.Error(pe.Err),
	)
	s.printf(retryMessageFmt, field, strings.TrimSpace(pe.Input))
	return true
}

type inputLine struct {
	text string
	err  error
}

// scan feeds input lines to s.lines so that readLine can wait on ctx as well.
// It stops once ctx is done, but a Scan already blocked on the reader only
// returns when the reader does.
func (s *Session) scan(ctx context.Context) {
	defer close(s.lines)
	for s.in.Scan() {
		select {
		case s.lines <- inputLine{text: s.in.Text()}:
		case <-ctx.Done():
			return
		}
	}

	err := ErrInputClosed
	if scanErr := s.in.Err(); scanErr != nil {
		err = errors.Wrap(scanErr, "read input")
	}
	select {
	case s.lines <- inputLine{err: err}:
	case <-ctx.Done():
	}
}

func (s *Session) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.printf("%s", prompt)
	if s.werr != nil {
		return "", errors.Wrap(s.werr, "write prompt")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return l.text, l.err
	}
}

func (s *Session) printf(format string, args ...any) {
	if s.werr != nil {
		return
	}
	_, s.werr = fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(line string) {
	s.printf("%s\n", line)
}

// choose shows m, reads an option and applies the fallback policy.
func choose[T any](ctx context.Context, s *Session, m menu[T]) (T, error) {
	s.println(m.title)
	for i, c := range m.choices {
		s.printf("%d. %s\n", i+1, c.label)
	}

	n, err := s.readOption(ctx, m.prompt, m.field)
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := m.pick(n)
	if !ok {
		zctx.From(ctx).Debug("Unknown option, using fallback",
			zap.String("field", m.field),
			zap.Int("option", n),
		)
		s.println(m.warning())
	}
	return v, nil
}
