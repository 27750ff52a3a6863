package app

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/money"
)

// inconsistencyTolerance is the maximum allowed relative difference
// between an adapter-supplied exchange rate and the rate recomputed from
// destination_amount/send_amount before the normalizer downgrades the
// quote to InconsistentResponse.
var inconsistencyTolerance = decimal.NewFromFloat(0.005)

// deliveryTimeFreeText maps known provider free-text delivery estimates
// to minutes, per the external contract's closed table.
var deliveryTimeFreeText = map[string]int{
	"instant":           10,
	"minutes":           10,
	"within 24 hours":   1440,
	"1 business day":    1440,
	"2 business days":   2880,
	"3 business days":   4320,
	"5 business days":   7200,
}

// Normalizer converts a RawResult into the canonical Quote.
type Normalizer struct{}

// NewNormalizer builds a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize applies the rounding, consistency, and clamping rules of the
// normalization contract. raw.Raw is only attached to the returned Quote
// when includeRaw is set -- callers that didn't opt in never see the
// upstream provider payload, success or failure.
func (n *Normalizer) Normalize(raw domain.RawResult, includeRaw bool) domain.Quote {
	now := time.Now().UTC()

	rawPayload := raw.Raw
	if !includeRaw {
		rawPayload = nil
	}

	if !raw.Success {
		q := domain.NewFailureQuote(raw.ProviderID, raw.ErrorKind, raw.ErrorMessage, rawPayload)
		q.Timestamp = now
		return q
	}

	if raw.Fee == nil {
		q := domain.NewFailureQuote(raw.ProviderID, domain.ErrorKindParsing,
			"adapter omitted fee; a successful quote requires an explicit fee, zero or otherwise", rawPayload)
		q.Timestamp = now
		return q
	}

	if _, err := money.NewNonNegative(*raw.Fee, raw.SourceCurrency); err != nil {
		q := domain.NewFailureQuote(raw.ProviderID, domain.ErrorKindParsing, err.Error(), rawPayload)
		q.Timestamp = now
		return q
	}
	if _, err := money.NewNonNegative(raw.DestinationAmount, raw.DestinationCurrency); err != nil {
		q := domain.NewFailureQuote(raw.ProviderID, domain.ErrorKindParsing, err.Error(), rawPayload)
		q.Timestamp = now
		return q
	}

	sendAmount := raw.SendAmount.Round(money.AmountDecimals(raw.SourceCurrency))
	fee := n.roundFee(raw.Fee, raw.SourceCurrency)
	destAmount := raw.DestinationAmount.Round(money.AmountDecimals(raw.DestinationCurrency))

	recomputedRate := decimal.Zero
	if !sendAmount.IsZero() {
		recomputedRate = destAmount.Div(sendAmount).Round(money.RateDecimals)
	}

	var exchangeRate decimal.Decimal
	switch {
	case raw.ExchangeRate != nil:
		providedRate := raw.ExchangeRate.Round(money.RateDecimals)
		if !ratesAgree(providedRate, recomputedRate) {
			q := domain.NewFailureQuote(raw.ProviderID, domain.ErrorKindInconsistentResp,
				"adapter exchange_rate disagrees with destination_amount/send_amount by more than 0.5%", rawPayload)
			q.Timestamp = now
			return q
		}
		exchangeRate = providedRate
	default:
		exchangeRate = recomputedRate
	}

	deliveryMinutes := n.clampDeliveryMinutes(raw.DeliveryTimeMinutes)

	return domain.Quote{
		ProviderID:          raw.ProviderID,
		Success:             true,
		SendAmount:          sendAmount,
		SourceCurrency:      money.NormalizeCurrency(raw.SourceCurrency),
		DestinationAmount:   destAmount,
		DestinationCurrency: money.NormalizeCurrency(raw.DestinationCurrency),
		ExchangeRate:        &exchangeRate,
		Fee:                 fee,
		PaymentMethod:       raw.PaymentMethod,
		DeliveryMethod:      raw.DeliveryMethod,
		DeliveryTimeMinutes: deliveryMinutes,
		Timestamp:           now,
		Raw:                 rawPayload,
	}
}

// roundFee rounds an adapter-supplied fee to currency scale. Callers must
// have already rejected a nil fee -- a successful quote never reports a
// fee the provider didn't explicitly state, not even as a zero default.
func (n *Normalizer) roundFee(fee *decimal.Decimal, currency string) *decimal.Decimal {
	rounded := fee.Round(money.AmountDecimals(currency))
	return &rounded
}

// clampDeliveryMinutes clamps to non-negative; nil stays nil ("unknown
// but supported").
func (n *Normalizer) clampDeliveryMinutes(minutes *int) *int {
	if minutes == nil {
		return nil
	}
	v := *minutes
	if v < 0 {
		v = 0
	}
	return &v
}

// ResolveFreeTextDeliveryTime translates a provider free-text delivery
// estimate into minutes using the closed lookup table. Adapters call this
// before constructing their RawResult; it is exported so per-provider
// adapters can extend matching with their own local patterns first.
func ResolveFreeTextDeliveryTime(text string) (int, bool) {
	minutes, ok := deliveryTimeFreeText[strings.ToLower(strings.TrimSpace(text))]
	return minutes, ok
}

func ratesAgree(a, b decimal.Decimal) bool {
	if a.IsZero() && b.IsZero() {
		return true
	}
	denom := a
	if denom.IsZero() {
		denom = b
	}
	diff := a.Sub(b).Abs()
	return diff.Div(denom.Abs()).LessThanOrEqual(inconsistencyTolerance)
}
