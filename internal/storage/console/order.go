// Package console implements order.Repository by printing saved orders.
package console

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/kart-orders-cli/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// Format selects how saved orders are printed.
type Format string

const (
	// FormatText prints a human readable line.
	FormatText Format = "text"
	// FormatJSON prints one JSON object per line.
	FormatJSON Format = "json"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", errors.Errorf("unsupported output format: %q", s)
	}
}

// OrderRepository writes each saved order to w. Nothing is retained.
type OrderRepository struct {
	w      io.Writer
	format Format
}

// NewOrderRepository returns an OrderRepository that prints to w.
func NewOrderRepository(w io.Writer, format Format) *OrderRepository {
	return &OrderRepository{w: w, format: format}
}

// Save prints o.
func (r *OrderRepository) Save(_ context.Context, o *order.Order) error {
	var line []byte
	switch r.format {
	case FormatJSON:
		line = encodeOrder(o)
	default:
		line = []byte("Order saved for " + o.Customer + " with items: [" + strings.Join(o.Items, ", ") + "]")
	}
	line = append(line, '\n')

	if _, err := r.w.Write(line); err != nil {
		return errors.Wrapf(err, "write order %q", o.ID)
	}
	return nil
}

func encodeOrder(o *order.Order) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("id")
	e.Str(o.ID)
	e.FieldStart("customer")
	e.Str(o.Customer)
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range o.Items {
		e.Str(item)
	}
	e.ArrEnd()
	e.FieldStart("created_at")
	e.Str(o.CreatedAt.UTC().Format(time.RFC3339))
	e.ObjEnd()
	return e.Bytes()
}
