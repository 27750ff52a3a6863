package worldremit

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/apperror"
)

const providerID = "worldremit"

// Adapter implements app.ProviderAdapter for WorldRemit.
type Adapter struct {
	client *client
}

var _ app.ProviderAdapter = (*Adapter)(nil)

// New returns an app.AdapterConstructor building a WorldRemit Adapter.
func New(cfg Config) app.AdapterConstructor {
	return func(app.AdapterContext) (app.ProviderAdapter, error) {
		c, err := newClient(cfg)
		if err != nil {
			return nil, err
		}
		return &Adapter{client: c}, nil
	}
}

func (a *Adapter) ID() string                        { return providerID }
func (a *Adapter) DisplayName() string               { return "WorldRemit" }
func (a *Adapter) SupportedCorridors() []app.Corridor { return nil }

func (a *Adapter) Quote(ctx context.Context, req domain.QuoteRequest) domain.RawResult {
	resp, err := a.client.getPricing(ctx, req.SourceCountry, req.DestCountry, req.SourceCurrency, req.DestCurrency)
	if err != nil {
		return failureResult(err)
	}
	if !resp.Supported {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindUnsupportedCorridor,
			ErrorMessage: "corridor not supported by worldremit",
		}
	}

	rate, ok := selectTier(resp.Tiers, req.Amount)
	if !ok {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindParsing,
			ErrorMessage: "no tier covers the requested amount",
		}
	}

	option := selectPrimaryOption(resp.Options)
	if option == nil {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindUnsupportedCorridor,
			ErrorMessage: "no payment/delivery options returned",
		}
	}

	raw, _ := json.Marshal(resp)
	destAmount := req.Amount.Sub(option.Fee).Mul(rate)
	fee := option.Fee
	deliveryMinutes := option.DeliveryEtaMin

	return domain.RawResult{
		ProviderID:          providerID,
		Success:             true,
		SendAmount:          req.Amount,
		SourceCurrency:      resp.SourceCurrency,
		DestinationAmount:   destAmount,
		DestinationCurrency: resp.TargetCurrency,
		ExchangeRate:        &rate,
		Fee:                 &fee,
		PaymentMethod:       paymentMethodFromWorldRemit(option.PaymentMethod),
		DeliveryMethod:      deliveryMethodFromWorldRemit(option.DeliveryMethod),
		DeliveryTimeMinutes: &deliveryMinutes,
		Raw:                 raw,
	}
}

// selectTier implements the tiered-rate selection rule: the tier whose
// [min, max] band contains amount; ties broken by the lower min.
func selectTier(tiers []rateTier, amount decimal.Decimal) (decimal.Decimal, bool) {
	var best *rateTier
	for i := range tiers {
		t := tiers[i]
		if amount.LessThan(t.Min) || amount.GreaterThan(t.Max) {
			continue
		}
		if best == nil || t.Min.LessThan(best.Min) {
			best = &tiers[i]
		}
	}
	if best == nil {
		return decimal.Zero, false
	}
	return best.Rate, true
}

// selectPrimaryOption picks the provider-marked default, else the
// lowest-fee option, tie-broken by fastest delivery then lexicographic
// (payment_method, delivery_method).
func selectPrimaryOption(options []sendOption) *sendOption {
	for i := range options {
		if options[i].IsDefault {
			return &options[i]
		}
	}
	if len(options) == 0 {
		return nil
	}
	sorted := make([]sendOption, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Fee.Equal(sorted[j].Fee) {
			return sorted[i].Fee.LessThan(sorted[j].Fee)
		}
		if sorted[i].DeliveryEtaMin != sorted[j].DeliveryEtaMin {
			return sorted[i].DeliveryEtaMin < sorted[j].DeliveryEtaMin
		}
		if sorted[i].PaymentMethod != sorted[j].PaymentMethod {
			return sorted[i].PaymentMethod < sorted[j].PaymentMethod
		}
		return sorted[i].DeliveryMethod < sorted[j].DeliveryMethod
	})
	return &sorted[0]
}

func paymentMethodFromWorldRemit(s string) domain.PaymentMethod {
	switch s {
	case "card":
		return domain.PaymentMethodCard
	case "bank_account":
		return domain.PaymentMethodBankAccount
	default:
		return domain.PaymentMethodUnknown
	}
}

func deliveryMethodFromWorldRemit(s string) domain.DeliveryMethod {
	switch s {
	case "bank_deposit":
		return domain.DeliveryMethodBankDeposit
	case "cash_pickup":
		return domain.DeliveryMethodCashPickup
	case "mobile_wallet":
		return domain.DeliveryMethodMobileWallet
	default:
		return domain.DeliveryMethodUnknown
	}
}

func failureResult(err error) domain.RawResult {
	kind := domain.ErrorKindProviderAPI
	switch apperror.GetCode(err) {
	case apperror.CodeProviderAuthFailed:
		kind = domain.ErrorKindAuthentication
	case apperror.CodeProviderRateLimited:
		kind = domain.ErrorKindRateLimit
	case apperror.CodeProviderConnectionFailed:
		kind = domain.ErrorKindConnection
	}
	return domain.RawResult{
		ProviderID:   providerID,
		Success:      false,
		ErrorKind:    kind,
		ErrorMessage: err.Error(),
	}
}
