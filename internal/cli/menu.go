package cli

import (
	"strings"

	"github.com/xenking/kart-orders-cli/internal/domain/discount"
	"github.com/xenking/kart-orders-cli/internal/domain/payment"
)

type choice[T any] struct {
	label string
	value T
}

// menu is a numbered list of choices. Options are 1-based.
type menu[T any] struct {
	title    string
	prompt   string
	field    string
	choices  []choice[T]
	fallback int
}

// pick returns the choice for option n. For an unknown option it returns the
// fallback choice and false.
func (m menu[T]) pick(n int) (T, bool) {
	if n >= 1 && n <= len(m.choices) {
		return m.choices[n-1].value, true
	}
	return m.choices[m.fallback].value, false
}

func (m menu[T]) warning() string {
	return "Invalid option! Using " + strings.ToLower(m.choices[m.fallback].label) + " by default."
}

func paymentMenu() menu[payment.Strategy] {
	return menu[payment.Strategy]{
		title:  "Choose the payment method:",
		prompt: "Enter the payment option: ",
		field:  "payment option",
		choices: []choice[payment.Strategy]{
			{label: "Credit card", value: payment.CreditCard{}},
			{label: "Pix", value: payment.Pix{}},
		},
	}
}

func discountMenu(pct *discount.Percentage) menu[discount.Strategy] {
	return menu[discount.Strategy]{
		title:  "Choose the discount type:",
		prompt: "Enter the discount option: ",
		field:  "discount option",
		choices: []choice[discount.Strategy]{
			{label: discount.None{}.Description(), value: discount.None{}},
			{label: pct.Description(), value: pct},
		},
	}
}
