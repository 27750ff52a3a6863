// Package xoom implements the ProviderAdapter interface for Xoom.
package xoom

import "github.com/shopspring/decimal"

// quoteRequestBody is Xoom's quote-lookup request.
type quoteRequestBody struct {
	SendCountry    string  `json:"sendCountry"`
	ReceiveCountry string  `json:"receiveCountry"`
	SendCurrency   string  `json:"sendCurrency"`
	ReceiveCurrency string `json:"receiveCurrency"`
	SendAmount     float64 `json:"sendAmount"`
	FundingSource  string  `json:"fundingSource"`
	DisbursementType string `json:"disbursementType"`
}

// quoteResponseBody is Xoom's quote-lookup response. Fx and TotalFee come
// back as locale-formatted strings (thousand-separator commas included),
// not bare JSON numbers, so they're decoded as strings and parsed
// explicitly rather than left to decimal.Decimal's own unmarshaler.
type quoteResponseBody struct {
	Available        bool            `json:"available"`
	SendAmount       decimal.Decimal `json:"sendAmount"`
	SendCurrency     string          `json:"sendCurrency"`
	ReceiveAmount    decimal.Decimal `json:"receiveAmount"`
	ReceiveCurrency  string          `json:"receiveCurrency"`
	Fx               string          `json:"fx"`
	TotalFee         string          `json:"totalFee"`
	FundingSource    string          `json:"fundingSource"`
	DisbursementType string          `json:"disbursementType"`
	EtaMinutes       int             `json:"etaMinutes"`
}

// apiErrorBody is Xoom's error envelope.
type apiErrorBody struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}
