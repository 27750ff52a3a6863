package xoom

import (
	"context"
	"encoding/json"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/apperror"
	"github.com/fd1az/remit-aggregator/internal/money"
)

const providerID = "xoom"

// Adapter implements app.ProviderAdapter for Xoom.
type Adapter struct {
	client *client
}

var _ app.ProviderAdapter = (*Adapter)(nil)

// New returns an app.AdapterConstructor building a Xoom Adapter from cfg.
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
func (a *Adapter) DisplayName() string { return "Xoom" }

func (a *Adapter) SupportedCorridors() []app.Corridor { return nil }

func (a *Adapter) Quote(ctx context.Context, req domain.QuoteRequest) domain.RawResult {
	body := quoteRequestBody{
		SendCountry:      req.SourceCountry,
		ReceiveCountry:   req.DestCountry,
		SendCurrency:     req.SourceCurrency,
		ReceiveCurrency:  req.DestCurrency,
		SendAmount:       money.ToWireFloat(req.Amount),
		FundingSource:    fundingSourceFromPaymentMethod(req.PaymentMethod),
		DisbursementType: disbursementTypeFromDeliveryMethod(req.DeliveryMethod),
	}

	resp, err := a.client.getQuote(ctx, body)
	if err != nil {
		return failureResult(err)
	}

	if !resp.Available {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindUnsupportedCorridor,
			ErrorMessage: "corridor not available via xoom",
		}
	}

	raw, _ := json.Marshal(resp)

	rate, err := money.ParseLocaleDecimal(resp.Fx)
	if err != nil {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindParsing,
			ErrorMessage: "xoom: parsing fx: " + err.Error(),
			Raw:          raw,
		}
	}
	fee, err := money.ParseLocaleDecimal(resp.TotalFee)
	if err != nil {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindParsing,
			ErrorMessage: "xoom: parsing totalFee: " + err.Error(),
			Raw:          raw,
		}
	}
	etaMinutes := resp.EtaMinutes

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
		DeliveryTimeMinutes: &etaMinutes,
		Raw:                 raw,
	}
}

func fundingSourceFromPaymentMethod(method domain.PaymentMethod) string {
	switch method {
	case domain.PaymentMethodDebitCard:
		return "debit_card"
	case domain.PaymentMethodCreditCard:
		return "credit_card"
	case domain.PaymentMethodBankAccount:
		return "bank_account"
	default:
		return ""
	}
}

func disbursementTypeFromDeliveryMethod(method domain.DeliveryMethod) string {
	switch method {
	case domain.DeliveryMethodBankDeposit:
		return "bank_deposit"
	case domain.DeliveryMethodCashPickup:
		return "cash_pickup"
	case domain.DeliveryMethodMobileWallet:
		return "mobile_wallet"
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
