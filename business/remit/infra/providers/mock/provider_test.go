package mock

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
)

func TestAdapter_Quote_DefaultRateAndFee(t *testing.T) {
	adapter, err := New()(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}

	amount := decimal.RequireFromString("100")
	result := adapter.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount: amount,
	})

	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.ErrorMessage)
	}
	want := amount.Sub(decimal.RequireFromString("2.50")).Mul(decimal.RequireFromString("1.10"))
	if !result.DestinationAmount.Equal(want) {
		t.Errorf("expected destination amount %s, got %s", want, result.DestinationAmount)
	}
}

func TestAdapter_Quote_CustomRateFeeAndDelivery(t *testing.T) {
	adapter := NewWithOptions(decimal.RequireFromString("2.0"), decimal.RequireFromString("5.0"), 30)

	amount := decimal.RequireFromString("200")
	result := adapter.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "IN", SourceCurrency: "USD", DestCurrency: "INR",
		Amount: amount,
	})

	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.ErrorMessage)
	}
	if result.DeliveryTimeMinutes == nil || *result.DeliveryTimeMinutes != 30 {
		t.Errorf("expected 30 minute delivery, got %v", result.DeliveryTimeMinutes)
	}
	want := amount.Sub(decimal.RequireFromString("5.0")).Mul(decimal.RequireFromString("2.0"))
	if !result.DestinationAmount.Equal(want) {
		t.Errorf("expected destination amount %s, got %s", want, result.DestinationAmount)
	}
}

func TestAdapter_MarkUnsupported(t *testing.T) {
	adapter, err := New()(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}
	a := adapter.(*Adapter)
	a.MarkUnsupported("US", "KP")

	result := a.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "KP", SourceCurrency: "USD", DestCurrency: "KPW",
		Amount: decimal.RequireFromString("50"),
	})

	if result.Success {
		t.Fatalf("expected failure for marked-unsupported corridor")
	}
	if result.ErrorKind != domain.ErrorKindUnsupportedCorridor {
		t.Errorf("expected ErrorKindUnsupportedCorridor, got %s", result.ErrorKind)
	}

	other := a.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount: decimal.RequireFromString("50"),
	})
	if !other.Success {
		t.Errorf("expected other corridors to remain unaffected, got error: %s", other.ErrorMessage)
	}
}

func TestAdapter_FailWith(t *testing.T) {
	adapter, err := New()(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}
	a := adapter.(*Adapter)
	a.FailWith("simulated outage")

	result := a.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount: decimal.RequireFromString("50"),
	})

	if result.Success {
		t.Fatalf("expected failure after FailWith")
	}
	if result.ErrorKind != domain.ErrorKindProviderAPI {
		t.Errorf("expected ErrorKindProviderAPI, got %s", result.ErrorKind)
	}
	if result.ErrorMessage != "simulated outage" {
		t.Errorf("expected failure message to propagate, got %q", result.ErrorMessage)
	}
}
