package instarem

import (
	"context"
	"encoding/json"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/apperror"
	"github.com/fd1az/remit-aggregator/internal/money"
)

const providerID = "instarem"

// Adapter implements app.ProviderAdapter for Instarem.
type Adapter struct {
	client *client
}

var _ app.ProviderAdapter = (*Adapter)(nil)

// New returns an app.AdapterConstructor building an Instarem Adapter from cfg.
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
func (a *Adapter) DisplayName() string { return "Instarem" }

func (a *Adapter) SupportedCorridors() []app.Corridor { return nil }

func (a *Adapter) Quote(ctx context.Context, req domain.QuoteRequest) domain.RawResult {
	body := rateRequestBody{
		SourceCountry:  req.SourceCountry,
		DestCountry:    req.DestCountry,
		SourceCurrency: req.SourceCurrency,
		DestCurrency:   req.DestCurrency,
		SourceAmount:   money.ToWireFloat(req.Amount),
		PayInMethod:    payInMethodFromPaymentMethod(req.PaymentMethod),
		PayOutMethod:   payOutMethodFromDeliveryMethod(req.DeliveryMethod),
	}

	resp, err := a.client.getRate(ctx, body)
	if err != nil {
		return failureResult(err)
	}

	if !resp.CorridorSupported {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindUnsupportedCorridor,
			ErrorMessage: "corridor not supported by instarem",
		}
	}

	raw, _ := json.Marshal(resp)
	rate := resp.ExchangeRate
	fee := resp.ServiceFee

	var deliveryMinutes *int
	if minutes, ok := app.ResolveFreeTextDeliveryTime(resp.DeliverySpeed); ok {
		deliveryMinutes = &minutes
	}

	return domain.RawResult{
		ProviderID:          providerID,
		Success:             true,
		SendAmount:          resp.SourceAmount,
		SourceCurrency:      resp.SourceCurrency,
		DestinationAmount:   resp.DestAmount,
		DestinationCurrency: resp.DestCurrency,
		ExchangeRate:        &rate,
		Fee:                 &fee,
		PaymentMethod:       req.PaymentMethod,
		DeliveryMethod:      req.DeliveryMethod,
		DeliveryTimeMinutes: deliveryMinutes,
		Raw:                 raw,
	}
}

func payInMethodFromPaymentMethod(method domain.PaymentMethod) string {
	switch method {
	case domain.PaymentMethodDebitCard, domain.PaymentMethodCreditCard:
		return "card"
	case domain.PaymentMethodBankAccount:
		return "bank_transfer"
	default:
		return ""
	}
}

func payOutMethodFromDeliveryMethod(method domain.DeliveryMethod) string {
	switch method {
	case domain.DeliveryMethodBankDeposit:
		return "bank_transfer"
	case domain.DeliveryMethodCashPickup:
		return "cash_pickup"
	case domain.DeliveryMethodMobileWallet:
		return "ewallet"
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
	case apperror.CodeUnsupportedCorridor:
		kind = domain.ErrorKindUnsupportedCorridor
	}
	return domain.RawResult{
		ProviderID:   providerID,
		Success:      false,
		ErrorKind:    kind,
		ErrorMessage: err.Error(),
	}
}
