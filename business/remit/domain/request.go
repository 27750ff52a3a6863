package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of ways a sender funds a transfer.
type PaymentMethod string

const (
	PaymentMethodBankAccount  PaymentMethod = "bank_account"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBalance      PaymentMethod = "balance"
	PaymentMethodOpenBanking  PaymentMethod = "open_banking"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodMobileWallet PaymentMethod = "mobile_wallet"
	PaymentMethodUnknown      PaymentMethod = "unknown"
)

// DeliveryMethod is the closed set of ways a recipient receives funds.
type DeliveryMethod string

const (
	DeliveryMethodBankDeposit       DeliveryMethod = "bank_deposit"
	DeliveryMethodCashPickup        DeliveryMethod = "cash_pickup"
	DeliveryMethodMobileWallet      DeliveryMethod = "mobile_wallet"
	DeliveryMethodDebitCardDeposit  DeliveryMethod = "debit_card_deposit"
	DeliveryMethodHomeDelivery      DeliveryMethod = "home_delivery"
	DeliveryMethodUnknown           DeliveryMethod = "unknown"
)

// SortBy selects the comparison criterion for the filter/sort pipeline.
type SortBy string

const (
	SortByBestRate    SortBy = "best_rate"
	SortByLowestFee   SortBy = "lowest_fee"
	SortByFastestTime SortBy = "fastest_time"
	SortByBestValue   SortBy = "best_value"
)

// Options holds the recognized QuoteRequest options. It is a typed
// struct, not an opaque map, matching the closed option set in the
// external contract.
type Options struct {
	ForceRefresh           bool
	SortBy                 SortBy
	MaxFee                 *decimal.Decimal
	MaxDeliveryTimeMinutes *int
	IncludeProviders       []string
	ExcludeProviders       []string
	PerProviderTimeoutMS   *int
	MaxWorkers             *int
	IncludeRaw             bool

	// CustomPredicate is an in-process-only filter hook for library
	// embedders; it is never serialized over the HTTP surface.
	CustomPredicate func(Quote) bool
}

// QuoteRequest is the aggregator's sole public input.
type QuoteRequest struct {
	SourceCountry  string
	DestCountry    string
	SourceCurrency string
	DestCurrency   string
	Amount         decimal.Decimal
	PaymentMethod  PaymentMethod
	DeliveryMethod DeliveryMethod
	Options        Options
}
