package remitly

import (
	"context"
	"encoding/json"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/apperror"
	"github.com/fd1az/remit-aggregator/internal/money"
)

const providerID = "remitly"

// Adapter implements app.ProviderAdapter for Remitly.
type Adapter struct {
	client *client
}

var _ app.ProviderAdapter = (*Adapter)(nil)

// New returns an app.AdapterConstructor building a Remitly Adapter from cfg.
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
func (a *Adapter) DisplayName() string { return "Remitly" }

func (a *Adapter) SupportedCorridors() []app.Corridor { return nil }

func (a *Adapter) Quote(ctx context.Context, req domain.QuoteRequest) domain.RawResult {
	body := estimateRequestBody{
		OriginCountry:      req.SourceCountry,
		DestinationCountry: req.DestCountry,
		SendCurrency:       req.SourceCurrency,
		ReceiveCurrency:    req.DestCurrency,
		SendAmount:         money.ToWireFloat(req.Amount),
		DeliveryMethod:     deliveryMethodToRemitly(req.DeliveryMethod),
		PaymentMethod:      paymentMethodToRemitly(req.PaymentMethod),
	}

	resp, err := a.client.getEstimate(ctx, body)
	if err != nil {
		return failureResult(err)
	}

	if !resp.Supported {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindUnsupportedCorridor,
			ErrorMessage: "corridor not supported by remitly",
		}
	}

	raw, _ := json.Marshal(resp)
	rate := resp.ExchangeRate
	fee := resp.TransferFee

	var deliveryMinutes *int
	if minutes, ok := app.ResolveFreeTextDeliveryTime(resp.DeliverySpeed); ok {
		deliveryMinutes = &minutes
	}

	return domain.RawResult{
		ProviderID:          providerID,
		Success:             true,
		SendAmount:          resp.SendAmount,
		SourceCurrency:      resp.SendCurrency,
		DestinationAmount:   resp.ReceiveAmount,
		DestinationCurrency: resp.ReceiveCurrency,
		ExchangeRate:        &rate,
		Fee:                 &fee,
		PaymentMethod:       req.PaymentMethod,
		DeliveryMethod:      req.DeliveryMethod,
		DeliveryTimeMinutes: deliveryMinutes,
		Raw:                 raw,
	}
}

func deliveryMethodToRemitly(method domain.DeliveryMethod) string {
	switch method {
	case domain.DeliveryMethodBankDeposit:
		return "bank_account"
	case domain.DeliveryMethodCashPickup:
		return "cash_pickup"
	case domain.DeliveryMethodMobileWallet:
		return "mobile_wallet"
	case domain.DeliveryMethodHomeDelivery:
		return "home_delivery"
	default:
		return ""
	}
}

func paymentMethodToRemitly(method domain.PaymentMethod) string {
	switch method {
	case domain.PaymentMethodDebitCard, domain.PaymentMethodCreditCard:
		return "card"
	case domain.PaymentMethodBankAccount:
		return "bank_account"
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
