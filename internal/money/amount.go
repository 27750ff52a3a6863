package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Common errors.
var (
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
	ErrNegativeAmount   = errors.New("money: negative amount")
)

// Money is an immutable Value Object pairing a decimal amount with its
// ISO-4217 currency. It never exposes a float64 conversion; all arithmetic
// stays in decimal.Decimal.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// New creates a Money value. currency is normalized (upper-cased, trimmed)
// but not validated against a registry -- callers that need registry
// validation should consult the Catalog first.
func New(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: NormalizeCurrency(currency)}
}

// Zero returns a zero-valued Money in currency.
func Zero(currency string) Money {
	return New(decimal.Zero, currency)
}

// NewNonNegative is New with the domain invariant that a Money value
// representing a quoted amount or fee can never be negative -- a provider
// that reports a negative fee or destination amount has sent a malformed
// response, not a legal edge case.
func NewNonNegative(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s %s", ErrNegativeAmount, amount.String(), NormalizeCurrency(currency))
	}
	return New(amount, currency), nil
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the ISO-4217 currency code.
func (m Money) Currency() string { return m.currency }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Round rounds the amount to the currency's configured minor-unit scale.
func (m Money) Round() Money {
	return New(m.amount.Round(AmountDecimals(m.currency)), m.currency)
}

// Add returns m+other. Both must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return Money{}, err
	}
	return New(m.amount.Add(other.amount), m.currency), nil
}

// Sub returns m-other. Both must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return Money{}, err
	}
	return New(m.amount.Sub(other.amount), m.currency), nil
}

// MulRate multiplies the amount by a dimensionless rate, keeping currency.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return New(m.amount.Mul(rate), m.currency)
}

// Cmp compares m to other, which must share a currency.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

// String renders "amount CUR", e.g. "1000.00 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(AmountDecimals(m.currency)), m.currency)
}

func (m Money) checkSameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

// ToWireFloat converts d to a float64 for outgoing request bodies that
// require a JSON number rather than a string. It is a one-way boundary
// function: never use it on an amount that still needs further decimal
// arithmetic, and never parse a provider-supplied amount back into a
// decimal via float64.
func ToWireFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ParseLocaleDecimal parses a provider-supplied numeric string using
// locale-neutral decimal rules: thousand-separator commas are stripped,
// the decimal point is always '.'. This is a boundary function for adapter
// payload parsing, per the adapter contract's rule on rate/fee parsing.
func ParseLocaleDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return decimal.Decimal{}, errors.New("money: empty decimal string")
	}
	return decimal.NewFromString(cleaned)
}
