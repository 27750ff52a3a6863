// Package worldremit implements the ProviderAdapter interface for
// WorldRemit.
package worldremit

import "github.com/shopspring/decimal"

// rateTier is one amount band of WorldRemit's tiered-rate response.
type rateTier struct {
	Min  decimal.Decimal `json:"min"`
	Max  decimal.Decimal `json:"max"`
	Rate decimal.Decimal `json:"rate"`
}

// sendOption is one payment x delivery combination.
type sendOption struct {
	PaymentMethod  string          `json:"payment_method"`
	DeliveryMethod string          `json:"delivery_method"`
	Fee            decimal.Decimal `json:"fee"`
	IsDefault      bool            `json:"is_default"`
	DeliveryEtaMin int             `json:"delivery_eta_minutes"`
}

// pricingResponseBody is WorldRemit's pricing-lookup response.
type pricingResponseBody struct {
	SourceCurrency string          `json:"source_currency"`
	TargetCurrency string          `json:"target_currency"`
	Supported      bool            `json:"supported"`
	Tiers          []rateTier      `json:"tiers"`
	Options        []sendOption    `json:"options"`
}

// apiErrorBody is WorldRemit's error envelope.
type apiErrorBody struct {
	Status  int    `json:"status"`
	Detail  string `json:"detail"`
}
