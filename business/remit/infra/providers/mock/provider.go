// Package mock implements a deterministic in-memory ProviderAdapter used
// in tests and local development, standing in for a real money-transfer
// provider without any network dependency.
package mock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
)

const providerID = "mock"

var defaultRate = decimal.RequireFromString("1.10")
var defaultFee = decimal.RequireFromString("2.50")

// Adapter returns a fixed-rate quote for every corridor unless
// UnsupportedCorridors marks it as unsupported.
type Adapter struct {
	rate                  decimal.Decimal
	fee                   decimal.Decimal
	deliveryMinutes       int
	unsupportedCorridors  map[string]bool
	fail                  bool
	failMessage           string
}

var _ app.ProviderAdapter = (*Adapter)(nil)

// New builds a mock Adapter with sensible defaults.
func New() app.AdapterConstructor {
	return func(app.AdapterContext) (app.ProviderAdapter, error) {
		return &Adapter{
			rate:                 defaultRate,
			fee:                  defaultFee,
			deliveryMinutes:      60,
			unsupportedCorridors: map[string]bool{},
		}, nil
	}
}

// NewWithOptions builds a mock Adapter with test-controlled behavior.
func NewWithOptions(rate, fee decimal.Decimal, deliveryMinutes int) *Adapter {
	return &Adapter{
		rate:                 rate,
		fee:                  fee,
		deliveryMinutes:      deliveryMinutes,
		unsupportedCorridors: map[string]bool{},
	}
}

// MarkUnsupported makes Quote return ErrorKindUnsupportedCorridor for
// the given (source, dest) country pair.
func (a *Adapter) MarkUnsupported(sourceCountry, destCountry string) {
	a.unsupportedCorridors[sourceCountry+":"+destCountry] = true
}

// FailWith makes every subsequent Quote call fail with the given
// message and ErrorKindProviderAPI.
func (a *Adapter) FailWith(message string) {
	a.fail = true
	a.failMessage = message
}

func (a *Adapter) ID() string          { return providerID }
func (a *Adapter) DisplayName() string { return "Mock Provider" }

func (a *Adapter) SupportedCorridors() []app.Corridor { return nil }

func (a *Adapter) Quote(ctx context.Context, req domain.QuoteRequest) domain.RawResult {
	if a.fail {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindProviderAPI,
			ErrorMessage: a.failMessage,
		}
	}
	if a.unsupportedCorridors[req.SourceCountry+":"+req.DestCountry] {
		return domain.RawResult{
			ProviderID:   providerID,
			Success:      false,
			ErrorKind:    domain.ErrorKindUnsupportedCorridor,
			ErrorMessage: "corridor marked unsupported",
		}
	}

	rate := a.rate
	fee := a.fee
	deliveryMinutes := a.deliveryMinutes
	destAmount := req.Amount.Sub(fee).Mul(rate)

	return domain.RawResult{
		ProviderID:          providerID,
		Success:             true,
		SendAmount:          req.Amount,
		SourceCurrency:      req.SourceCurrency,
		DestinationAmount:   destAmount,
		DestinationCurrency: req.DestCurrency,
		ExchangeRate:        &rate,
		Fee:                 &fee,
		PaymentMethod:       req.PaymentMethod,
		DeliveryMethod:      req.DeliveryMethod,
		DeliveryTimeMinutes: &deliveryMinutes,
	}
}
