// Package instarem implements the ProviderAdapter interface for Instarem.
package instarem

import "github.com/shopspring/decimal"

// rateRequestBody is Instarem's rate-lookup request.
type rateRequestBody struct {
	SourceCountry   string  `json:"sourceCountry"`
	DestCountry     string  `json:"destCountry"`
	SourceCurrency  string  `json:"sourceCurrency"`
	DestCurrency    string  `json:"destCurrency"`
	SourceAmount    float64 `json:"sourceAmount"`
	PayInMethod     string  `json:"payInMethod"`
	PayOutMethod    string  `json:"payOutMethod"`
}

// rateResponseBody is Instarem's rate-lookup response.
type rateResponseBody struct {
	CorridorSupported bool            `json:"corridorSupported"`
	SourceAmount      decimal.Decimal `json:"sourceAmount"`
	SourceCurrency    string          `json:"sourceCurrency"`
	DestAmount        decimal.Decimal `json:"destAmount"`
	DestCurrency      string          `json:"destCurrency"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	ServiceFee        decimal.Decimal `json:"serviceFee"`
	PayInMethod       string          `json:"payInMethod"`
	PayOutMethod      string          `json:"payOutMethod"`
	DeliverySpeed     string          `json:"deliverySpeed"`
}

// apiErrorBody is Instarem's error envelope.
type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
