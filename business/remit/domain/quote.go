package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RawResult is what a provider adapter returns: a Quote minus the
// canonical-only fields (timestamp is stamped by the normalizer) plus
// nothing provider-native -- the adapter has already converted any
// provider-specific numeric scale into decimal.Decimal before
// returning. floating point never appears on this path.
type RawResult struct {
	ProviderID            string
	Success               bool
	ErrorKind             ErrorKind
	ErrorMessage          string
	SendAmount            decimal.Decimal
	SourceCurrency        string
	DestinationAmount     decimal.Decimal
	DestinationCurrency   string
	ExchangeRate          *decimal.Decimal
	Fee                   *decimal.Decimal
	PaymentMethod         PaymentMethod
	DeliveryMethod        DeliveryMethod
	DeliveryTimeMinutes   *int
	Raw                   json.RawMessage
}

// Quote is the canonical per-provider result, constructed by the
// normalizer and read-only thereafter.
type Quote struct {
	ProviderID            string          `json:"provider_id"`
	Success               bool            `json:"success"`
	ErrorKind             ErrorKind       `json:"error_kind,omitempty"`
	ErrorMessage          string          `json:"error_message,omitempty"`
	SendAmount            decimal.Decimal `json:"send_amount"`
	SourceCurrency        string          `json:"source_currency"`
	DestinationAmount     decimal.Decimal `json:"destination_amount"`
	DestinationCurrency   string          `json:"destination_currency"`
	ExchangeRate          *decimal.Decimal `json:"exchange_rate,omitempty"`
	Fee                   *decimal.Decimal `json:"fee,omitempty"`
	PaymentMethod         PaymentMethod   `json:"payment_method"`
	DeliveryMethod        DeliveryMethod  `json:"delivery_method"`
	DeliveryTimeMinutes   *int            `json:"delivery_time_minutes,omitempty"`
	Timestamp             time.Time       `json:"timestamp"`
	Raw                   json.RawMessage `json:"raw,omitempty"`
}

// FeeOrZero returns the fee if present, otherwise zero. Callers that need
// to distinguish "provider reported zero" from "provider omitted fee"
// must use Fee directly.
func (q Quote) FeeOrZero() decimal.Decimal {
	if q.Fee == nil {
		return decimal.Zero
	}
	return *q.Fee
}

// EffectiveExchangeRate returns ExchangeRate if set, else recomputes it
// from DestinationAmount/SendAmount (the normalizer backfill rule for
// best_value sorting).
func (q Quote) EffectiveExchangeRate() decimal.Decimal {
	if q.ExchangeRate != nil {
		return *q.ExchangeRate
	}
	if q.SendAmount.IsZero() {
		return decimal.Zero
	}
	return q.DestinationAmount.Div(q.SendAmount)
}

// NewFailureQuote builds the canonical failure-shaped Quote for
// providerID, satisfying invariant 1: success=false implies
// exchange_rate=null and destination_amount=0. raw, if non-nil, preserves
// the provider's original payload for diagnostics.
func NewFailureQuote(providerID string, kind ErrorKind, message string, raw json.RawMessage) Quote {
	return Quote{
		ProviderID:   providerID,
		Success:      false,
		ErrorKind:    kind,
		ErrorMessage: message,
		Timestamp:    time.Now().UTC(),
		Raw:          raw,
	}
}
