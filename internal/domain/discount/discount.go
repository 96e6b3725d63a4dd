// Package discount implements the discount policies that can be applied to an
// order total before it is charged.
package discount

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ErrInvalidRate is returned when a percentage rate is outside [0, 1).
var ErrInvalidRate = errors.New("discount rate must be in [0, 1)")

// Strategy transforms an order total into the amount to charge.
type Strategy interface {
	Apply(total decimal.Decimal) decimal.Decimal
	Description() string
}

var (
	_ Strategy = None{}
	_ Strategy = (*Percentage)(nil)
)

// None leaves the total unchanged.
type None struct{}

// Apply returns total as is.
func (None) Apply(total decimal.Decimal) decimal.Decimal {
	return total
}

// Description implements Strategy.
func (None) Description() string {
	return "No discount"
}

// Percentage takes a fixed fraction off the total.
type Percentage struct {
	rate decimal.Decimal
}

// NewPercentage creates a Percentage discount. The rate is a fraction, so 0.1
// means 10% off.
func NewPercentage(rate decimal.Decimal) (*Percentage, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(one) {
		return nil, errors.Wrapf(ErrInvalidRate, "rate %s", rate)
	}
	return &Percentage{rate: rate}, nil
}

// Rate returns the configured fraction.
func (p *Percentage) Rate() decimal.Decimal {
	return p.rate
}

// Apply returns total * (1 - rate).
func (p *Percentage) Apply(total decimal.Decimal) decimal.Decimal {
	return total.Mul(one.Sub(p.rate))
}

// Description implements Strategy.
func (p *Percentage) Description() string {
	return p.rate.Mul(hundred).String() + "% discount"
}
