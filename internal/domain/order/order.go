package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-orders-cli/internal/domain/payment"
)

// Order is a customer's request for a list of items. It is not modified after
// New returns it.
type Order struct {
	ID        string
	Customer  string
	Items     []string
	CreatedAt time.Time
}

// New creates an Order for customer. The items slice is copied.
func New(customer string, items []string) *Order {
	return &Order{
		ID:        uuid.New().String(),
		Customer:  customer,
		Items:     append([]string(nil), items...),
		CreatedAt: time.Now(),
	}
}

// Receipt summarizes a placed order.
type Receipt struct {
	OrderID  string
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Payment  *payment.Confirmation
}

// Repository records finalized orders.
type Repository interface {
	Save(ctx context.Context, order *Order) error
}
