package wise

import (
	"context"
	"encoding/json"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/apperror"
	"github.com/fd1az/remit-aggregator/internal/money"
)

const providerID = "wise"

// Adapter implements app.ProviderAdapter for Wise.
type Adapter struct {
	client *client
}

var _ app.ProviderAdapter = (*Adapter)(nil)

// New returns an app.AdapterConstructor building a Wise Adapter from cfg.
func New(cfg Config) app.AdapterConstructor {
	return func(app.AdapterContext) (app.ProviderAdapter, error) {
		c, err := newClient(cfg)
		if err != nil {
			return nil, err
		}
		return &Adapter{client: c}, nil
	}
}

func (a *Adapter) ID() string          { return providerID }
func (a *Adapter) DisplayName() string { return "Wise" }

// SupportedCorridors returns nil: Wise serves a broad, frequently
// changing corridor set better discovered per-request than hardcoded.
func (a *Adapter) SupportedCorridors() []app.Corridor { return nil }

func (a *Adapter) Quote(ctx context.Context, req domain.QuoteRequest) domain.RawResult {
	body := quoteRequestBody{
		SourceCurrency: req.SourceCurrency,
		TargetCurrency: req.DestCurrency,
		SourceAmount:   money.ToWireFloat(req.Amount),
	}

	resp, err := a.client.getQuote(ctx, body)
	if err != nil {
		return failureResult(err)
	}

	option := pickPaymentOption(resp.PaymentOptions, req)
	if option == nil {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindUnsupportedCorridor,
			ErrorMessage: "no matching payment/delivery option for requested corridor",
		}
	}

	raw, _ := json.Marshal(resp)
	fee := option.Fee.Total
	rate := resp.Rate
	deliveryMinutes := option.FormattedEstimatedDeliveryMinutes

	return domain.RawResult{
		ProviderID:          providerID,
		Success:             true,
		SendAmount:          resp.SourceAmount,
		SourceCurrency:      resp.SourceCurrency,
		DestinationAmount:   option.TargetAmount,
		DestinationCurrency: resp.TargetCurrency,
		ExchangeRate:        &rate,
		Fee:                 &fee,
		PaymentMethod:       req.PaymentMethod,
		DeliveryMethod:      req.DeliveryMethod,
		DeliveryTimeMinutes: &deliveryMinutes,
		Raw:                 raw,
	}
}

// pickPaymentOption selects the option matching the requested delivery
// method, falling back to the cheapest bank-transfer option.
func pickPaymentOption(options []wisePaymentOption, req domain.QuoteRequest) *wisePaymentOption {
	wantPayOut := deliveryMethodToWise(req.DeliveryMethod)
	for i := range options {
		if wantPayOut != "" && options[i].PayOut == wantPayOut {
			return &options[i]
		}
	}
	var cheapest *wisePaymentOption
	for i := range options {
		if options[i].PayOut != "BANK_TRANSFER" {
			continue
		}
		if cheapest == nil || options[i].Fee.Total.LessThan(cheapest.Fee.Total) {
			cheapest = &options[i]
		}
	}
	return cheapest
}

func deliveryMethodToWise(method domain.DeliveryMethod) string {
	switch method {
	case domain.DeliveryMethodBankDeposit:
		return "BANK_TRANSFER"
	case domain.DeliveryMethodCashPickup:
		return "CASH_PICKUP"
	case domain.DeliveryMethodMobileWallet:
		return "MOBILE_WALLET"
	default:
		return ""
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
