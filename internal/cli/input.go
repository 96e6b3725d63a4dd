package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-orders-cli/internal/domain/payment"
)

// ErrInputClosed is returned when input ends before an order is complete.
var ErrInputClosed = errors.New("input closed")

// ParseError reports console input that could not be converted.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseAmount parses a non-negative decimal total.
func ParseAmount(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ParseError{Field: "total", Input: s, Err: err}
	}
	if v.IsNegative() {
		return decimal.Zero, &ParseError{Field: "total", Input: s, Err: payment.ErrNegativeAmount}
	}
	return v, nil
}

// ParseOption parses a menu option number. Any integer is accepted; mapping
// it to a choice is up to the menu.
func ParseOption(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ParseError{Field: "option", Input: s, Err: err}
	}
	return n, nil
}

// ParseItems splits a comma separated item list. Items are trimmed and
// empty entries dropped.
func ParseItems(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
