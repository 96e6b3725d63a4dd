// Package payment implements the simulated payment methods an order can be
// charged with. No money moves; each method only produces a confirmation.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method enumerates the supported payment methods.
type Method string

const (
	// MethodCreditCard charges a credit card.
	MethodCreditCard Method = "credit_card"
	// MethodPix charges through an instant Pix transfer.
	MethodPix Method = "pix"
)

// ErrNegativeAmount is returned when asked to charge less than zero.
var ErrNegativeAmount = errors.New("payment amount must not be negative")

// Confirmation describes a processed payment.
type Confirmation struct {
	TransactionID string
	Method        Method
	Amount        decimal.Decimal
	Message       string
	ProcessedAt   time.Time
}

// Strategy charges an amount using one payment method.
type Strategy interface {
	Method() Method
	Process(ctx context.Context, amount decimal.Decimal) (*Confirmation, error)
}

var (
	_ Strategy = CreditCard{}
	_ Strategy = Pix{}
)

// CreditCard processes payments by credit card.
type CreditCard struct{}

// Method implements Strategy.
func (CreditCard) Method() Method { return MethodCreditCard }

// Process implements Strategy.
func (CreditCard) Process(_ context.Context, amount decimal.Decimal) (*Confirmation, error) {
	return confirm(MethodCreditCard, "Credit card payment processed for %s.", amount)
}

// Pix processes payments by Pix transfer.
type Pix struct{}

// Method implements Strategy.
func (Pix) Method() Method { return MethodPix }

// Process implements Strategy.
func (Pix) Process(_ context.Context, amount decimal.Decimal) (*Confirmation, error) {
	return confirm(MethodPix, "Pix payment processed for %s.", amount)
}

func confirm(m Method, format string, amount decimal.Decimal) (*Confirmation, error) {
	if amount.IsNegative() {
		return nil, errors.Wrapf(ErrNegativeAmount, "%s %s", m, amount)
	}
	return &Confirmation{
		TransactionID: uuid.New().String(),
		Method:        m,
		Amount:        amount,
		Message:       fmt.Sprintf(format, amount.StringFixed(2)),
		ProcessedAt:   time.Now(),
	}, nil
}
