// Package money provides decimal-safe monetary value objects and currency
// metadata for fiat-to-fiat remittance quoting. Arithmetic on amounts,
// rates, and fees stays in decimal; float64 appears only in ToWireFloat,
// the one-way conversion for outgoing request bodies.
package money

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidCurrency is returned when a string is not a well-formed
// ISO-4217 alphabetic currency code.
var ErrInvalidCurrency = errors.New("money: invalid ISO-4217 currency code")

var isoCurrencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// zeroDecimalCurrencies lists currencies with no minor unit, per §4.D's
// currency-specific scale rule.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
	"IDR": true,
}

// AmountDecimals returns the number of decimal places a monetary amount in
// currency should be rounded to for display and comparison.
func AmountDecimals(currency string) int32 {
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return 0
	}
	return 2
}

// RateDecimals is the fixed precision every exchange rate is rounded to,
// regardless of currency.
const RateDecimals int32 = 6

// ValidateISOCurrency reports whether code is a syntactically valid
// ISO-4217 alphabetic currency code. It does not consult a registry of
// currently-assigned codes; that is the Catalog's job.
func ValidateISOCurrency(code string) error {
	if !isoCurrencyPattern.MatchString(strings.ToUpper(code)) {
		return ErrInvalidCurrency
	}
	return nil
}

// NormalizeCurrency upper-cases and trims a currency code for storage and
// comparison.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
