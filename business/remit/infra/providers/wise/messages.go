// Package wise implements the ProviderAdapter interface for Wise.
package wise

import "github.com/shopspring/decimal"

// quoteRequestBody is the JSON body Wise's quote-creation endpoint expects.
type quoteRequestBody struct {
	SourceCurrency string  `json:"sourceCurrency"`
	TargetCurrency string  `json:"targetCurrency"`
	SourceAmount   float64 `json:"sourceAmount"`
	PayOut         string  `json:"payOut,omitempty"`
}

// quoteResponseBody is the JSON response from Wise's quote endpoint.
type quoteResponseBody struct {
	ID               string              `json:"id"`
	SourceCurrency   string              `json:"sourceCurrency"`
	TargetCurrency   string              `json:"targetCurrency"`
	SourceAmount     decimal.Decimal     `json:"sourceAmount"`
	TargetAmount     decimal.Decimal     `json:"targetAmount"`
	Rate             decimal.Decimal     `json:"rate"`
	PaymentOptions   []wisePaymentOption `json:"paymentOptions"`
}

// wisePaymentOption describes one (payIn, payOut) combination and its fee
// and delivery estimate. Wise returns several; the adapter picks the one
// whose payOut matches the request's delivery method, falling back to the
// cheapest BANK_TRANSFER option.
type wisePaymentOption struct {
	PayIn               string          `json:"payIn"`
	PayOut              string          `json:"payOut"`
	Fee                 wiseFee         `json:"fee"`
	EstimatedDelivery   string          `json:"estimatedDeliveryDelay"`
	FormattedEstimatedDeliveryMinutes int `json:"formattedEstimatedDeliveryMinutes"`
	TargetAmount        decimal.Decimal `json:"targetAmount"`
}

type wiseFee struct {
	Total decimal.Decimal `json:"total"`
}

// errorResponseBody is Wise's structured error envelope.
type errorResponseBody struct {
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}
