package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/kart-orders-cli/internal/domain/discount"
	"github.com/xenking/kart-orders-cli/internal/domain/payment"
	"github.com/xenking/kart-orders-cli/internal/storage/console"
)

func runSession(t *testing.T, input string) (string, error) {
	t.Helper()
	return runSessionWithRate(t, input, "0.1")
}

func runSessionWithRate(t *testing.T, input, rate string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	s, err := NewSession(
		strings.NewReader(input),
		&out,
		console.NewOrderRepository(&out, console.FormatText),
		Options{DiscountRate: decimal.RequireFromString(rate)},
	)
	require.NoError(t, err)
	err = s.Run(context.Background())
	return out.String(), err
}

// assertOrdered checks that each of parts occurs in s, in the given order.
func assertOrdered(t *testing.T, s string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(s[pos:], p)
		if !assert.GreaterOrEqual(t, i, 0, "%q not found after offset %d in:\n%s", p, pos, s) {
			return
		}
		pos += i + len(p)
	}
}

func TestSession_CreditCardWithDiscount(t *testing.T) {
	out, err := runSession(t, "Ana\nbread,milk\n100\n1\n2\nn\n")
	require.NoError(t, err)

	assertOrdered(t, out,
		welcomeMessage,
		customerPrompt,
		itemsPrompt,
		totalPrompt,
		"Choose the payment method:\n1. Credit card\n2. Pix\n",
		"Choose the discount type:\n1. No discount\n2. 10% discount\n",
		"Final total after discount: 90.00\n",
		"Credit card payment processed for 90.00.\n",
		"Order saved for Ana with items: [bread, milk]\n",
		continuePrompt,
		closingMessage,
	)
	assert.NotContains(t, out, "Invalid option")
}

func TestSession_PixWithoutDiscount(t *testing.T) {
	out, err := runSession(t, "Bia\nrice\n50\n2\n1\nn\n")
	require.NoError(t, err)

	assertOrdered(t, out,
		"Final total after discount: 50.00\n",
		"Pix payment processed for 50.00.\n",
		"Order saved for Bia with items: [rice]\n",
	)
}

func TestSession_UnknownPaymentFallsBackToCreditCard(t *testing.T) {
	out, err := runSession(t, "Ana\nbread\n10\n9\n1\nn\n")
	require.NoError(t, err)

	assertOrdered(t, out,
		"Invalid option! Using credit card by default.\n",
		"Choose the discount type:",
		"Credit card payment processed for 10.00.\n",
	)
}

func TestSession_UnknownDiscountFallsBackToNone(t *testing.T) {
	out, err := runSession(t, "Ana\nbread\n10\n2\n3\nn\n")
	require.NoError(t, err)

	assertOrdered(t, out,
		"Invalid option! Using no discount by default.\n",
		"Final total after discount: 10.00\n",
		"Pix payment processed for 10.00.\n",
	)
}

func TestSession_ConfiguredDiscountRate(t *testing.T) {
	out, err := runSessionWithRate(t, "Ana\nbread\n200\n1\n2\nn\n", "0.15")
	require.NoError(t, err)

	assertOrdered(t, out,
		"2. 15% discount\n",
		"Final total after discount: 170.00\n",
	)
}

func TestSession_ContinueLoop(t *testing.T) {
	order := "Ana\nbread\n10\n1\n1\n"

	tests := []struct {
		name      string
		input     string
		wantCount int
	}{
		{name: "n stops after one", input: order + "n\n", wantCount: 1},
		{name: "uppercase N stops after one", input: order + "N\n", wantCount: 1},
		{name: "other answer stops", input: order + "maybe\n", wantCount: 1},
		{name: "s then n places two", input: order + "s\n" + order + "n\n", wantCount: 2},
		{name: "uppercase S continues", input: order + "S\n" + order + "n\n", wantCount: 2},
		{name: "y continues", input: order + "y\n" + order + "y\n" + order + "n\n", wantCount: 3},
		{name: "end of input stops", input: order, wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runSession(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, strings.Count(out, "Order saved for"))
			assert.Equal(t, tt.wantCount, strings.Count(out, welcomeMessage))
			assert.Equal(t, 1, strings.Count(out, closingMessage))
		})
	}
}

func TestSession_RetriesMalformedNumbers(t *testing.T) {
	out, err := runSession(t, "Ana\nbread\nabc\n-5\n20\nx\n2\none\n1\nn\n")
	require.NoError(t, err)

	assertOrdered(t, out,
		"Invalid total: abc. Try again.\n",
		"Invalid total: -5. Try again.\n",
		"Invalid payment option: x. Try again.\n",
		"Invalid discount option: one. Try again.\n",
		"Final total after discount: 20.00\n",
		"Pix payment processed for 20.00.\n",
	)
}

func TestSession_InputClosedMidOrder(t *testing.T) {
	out, err := runSession(t, "Ana\nbread\n")
	require.ErrorIs(t, err, ErrInputClosed)
	assert.Contains(t, err.Error(), "read total")
	assert.NotContains(t, out, "Order saved")
	assert.NotContains(t, out, closingMessage)
}

func TestSession_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s, err := NewSession(strings.NewReader("Ana\n"), &out, console.NewOrderRepository(&out, console.FormatText),
		Options{DiscountRate: decimal.RequireFromString("0.1")})
	require.NoError(t, err)

	err = s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSession_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	var out bytes.Buffer
	s, err := NewSession(pr, &out, console.NewOrderRepository(&out, console.FormatText),
		Options{DiscountRate: decimal.RequireFromString("0.1")})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(20*time.Millisecond, cancel)
	t.Cleanup(func() { timer.Stop(); cancel() })

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, err.Error(), "read customer")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSession_LongItemLine(t *testing.T) {
	items := strings.Repeat("bread,", 20_000) + "milk"
	require.Greater(t, len(items), bufio.MaxScanTokenSize)

	out, err := runSession(t, "Ana\n"+items+"\n10\n1\n1\nn\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Credit card payment processed for 10.00.\n")
	assert.Contains(t, out, ", milk]\n")
}

func TestNewSession_InvalidRate(t *testing.T) {
	_, err := NewSession(strings.NewReader(""), &bytes.Buffer{}, nil,
		Options{DiscountRate: decimal.RequireFromString("1.2")})
	require.ErrorIs(t, err, discount.ErrInvalidRate)
}

func TestPaymentMenu_Pick(t *testing.T) {
	m := paymentMenu()
	tests := []struct {
		option int
		want   payment.Method
		known  bool
	}{
		{option: 1, want: payment.MethodCreditCard, known: true},
		{option: 2, want: payment.MethodPix, known: true},
		{option: 0, want: payment.MethodCreditCard},
		{option: 3, want: payment.MethodCreditCard},
		{option: 9, want: payment.MethodCreditCard},
		{option: -1, want: payment.MethodCreditCard},
	}

	for _, tt := range tests {
		got, ok := m.pick(tt.option)
		assert.Equal(t, tt.want, got.Method(), "option %d", tt.option)
		assert.Equal(t, tt.known, ok, "option %d", tt.option)
	}
}

func TestDiscountMenu_Pick(t *testing.T) {
	pct, err := discount.NewPercentage(decimal.RequireFromString("0.1"))
	require.NoError(t, err)
	m := discountMenu(pct)

	total := decimal.NewFromInt(100)
	tests := []struct {
		option int
		want   decimal.Decimal
		known  bool
	}{
		{option: 1, want: total, known: true},
		{option: 2, want: decimal.NewFromInt(90), known: true},
		{option: 0, want: total},
		{option: 3, want: total},
		{option: 42, want: total},
	}

	for _, tt := range tests {
		got, ok := m.pick(tt.option)
		assert.True(t, tt.want.Equal(got.Apply(total)), "option %d", tt.option)
		assert.Equal(t, tt.known, ok, "option %d", tt.option)
	}
}
