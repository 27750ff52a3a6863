package worldremit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSelectTier_PicksBandContainingAmount(t *testing.T) {
	tiers := []rateTier{
		{Min: dec("0"), Max: dec("500"), Rate: dec("1.10")},
		{Min: dec("500.01"), Max: dec("2000"), Rate: dec("1.12")},
	}

	rate, ok := selectTier(tiers, dec("1000"))
	if !ok {
		t.Fatalf("expected a tier to match")
	}
	if !rate.Equal(dec("1.12")) {
		t.Errorf("expected rate 1.12, got %s", rate)
	}
}

func TestSelectTier_TieBreaksOnLowerMin(t *testing.T) {
	tiers := []rateTier{
		{Min: dec("0"), Max: dec("1000"), Rate: dec("1.05")},
		{Min: dec("100"), Max: dec("1000"), Rate: dec("1.20")},
	}

	rate, ok := selectTier(tiers, dec("500"))
	if !ok {
		t.Fatalf("expected a tier to match")
	}
	if !rate.Equal(dec("1.05")) {
		t.Errorf("expected the lower-min tier's rate 1.05, got %s", rate)
	}
}

func TestSelectTier_NoBandCovers(t *testing.T) {
	tiers := []rateTier{{Min: dec("0"), Max: dec("100"), Rate: dec("1.10")}}

	if _, ok := selectTier(tiers, dec("500")); ok {
		t.Errorf("expected no tier to match")
	}
}

func TestSelectPrimaryOption_PrefersProviderDefault(t *testing.T) {
	options := []sendOption{
		{PaymentMethod: "card", DeliveryMethod: "cash_pickup", Fee: dec("5.00")},
		{PaymentMethod: "bank_account", DeliveryMethod: "bank_deposit", Fee: dec("1.00"), IsDefault: true},
	}

	got := selectPrimaryOption(options)
	if got == nil || got.PaymentMethod != "bank_account" {
		t.Fatalf("expected the provider-flagged default, got %+v", got)
	}
}

func TestSelectPrimaryOption_FallsBackToLowestFeeThenFastest(t *testing.T) {
	options := []sendOption{
		{PaymentMethod: "card", DeliveryMethod: "cash_pickup", Fee: dec("2.00"), DeliveryEtaMin: 60},
		{PaymentMethod: "bank_account", DeliveryMethod: "bank_deposit", Fee: dec("2.00"), DeliveryEtaMin: 30},
		{PaymentMethod: "card", DeliveryMethod: "mobile_wallet", Fee: dec("3.00"), DeliveryEtaMin: 10},
	}

	got := selectPrimaryOption(options)
	if got == nil || got.DeliveryMethod != "bank_deposit" {
		t.Fatalf("expected the lowest-fee, fastest-delivery option, got %+v", got)
	}
}

func TestAdapter_Quote_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := pricingResponseBody{
			SourceCurrency: "USD",
			TargetCurrency: "MXN",
			Supported:      true,
			Tiers: []rateTier{
				{Min: dec("0"), Max: dec("1000"), Rate: dec("17.50")},
			},
			Options: []sendOption{
				{PaymentMethod: "bank_account", DeliveryMethod: "bank_deposit", Fee: dec("1.99"), IsDefault: true, DeliveryEtaMin: 15},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adapter, err := New(Config{BaseURL: server.URL})(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}

	result := adapter.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry:  "US",
		DestCountry:    "MX",
		SourceCurrency: "USD",
		DestCurrency:   "MXN",
		Amount:         dec("100"),
	})

	if !result.Success {
		t.Fatalf("expected success, got error kind %s: %s", result.ErrorKind, result.ErrorMessage)
	}
	if result.Fee == nil || !result.Fee.Equal(dec("1.99")) {
		t.Errorf("expected fee 1.99, got %v", result.Fee)
	}
	wantDest := dec("100").Sub(dec("1.99")).Mul(dec("17.50"))
	if !result.DestinationAmount.Equal(wantDest) {
		t.Errorf("expected destination amount %s, got %s", wantDest, result.DestinationAmount)
	}
}

func TestAdapter_Quote_UnsupportedCorridor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pricingResponseBody{Supported: false})
	}))
	defer server.Close()

	adapter, err := New(Config{BaseURL: server.URL})(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}

	result := adapter.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "KP", SourceCurrency: "USD", DestCurrency: "KPW", Amount: dec("100"),
	})

	if result.Success {
		t.Fatalf("expected failure for unsupported corridor")
	}
	if result.ErrorKind != domain.ErrorKindUnsupportedCorridor {
		t.Errorf("expected ErrorKindUnsupportedCorridor, got %s", result.ErrorKind)
	}
}
