// Package remitly implements the ProviderAdapter interface for Remitly.
package remitly

import "github.com/shopspring/decimal"

// estimateRequestBody is Remitly's rate-estimate request payload.
type estimateRequestBody struct {
	OriginCountry      string  `json:"origin_country"`
	DestinationCountry string  `json:"destination_country"`
	SendCurrency       string  `json:"send_currency"`
	ReceiveCurrency    string  `json:"receive_currency"`
	SendAmount         float64 `json:"send_amount"`
	DeliveryMethod     string  `json:"delivery_method,omitempty"`
	PaymentMethod      string  `json:"payment_method,omitempty"`
}

// estimateResponseBody is Remitly's rate-estimate response.
type estimateResponseBody struct {
	SendAmount        decimal.Decimal `json:"send_amount"`
	SendCurrency      string          `json:"send_currency"`
	ReceiveAmount     decimal.Decimal `json:"receive_amount"`
	ReceiveCurrency   string          `json:"receive_currency"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	TransferFee       decimal.Decimal `json:"transfer_fee"`
	DeliveryMethod    string          `json:"delivery_method"`
	PaymentMethod     string          `json:"payment_method"`
	DeliverySpeed     string          `json:"delivery_speed_text"`
	Supported         bool            `json:"corridor_supported"`
}

// apiErrorBody is Remitly's error envelope.
type apiErrorBody struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}
