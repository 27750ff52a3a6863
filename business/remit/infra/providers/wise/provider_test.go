package wise

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

func TestPickPaymentOption_MatchesRequestedDeliveryMethod(t *testing.T) {
	options := []wisePaymentOption{
		{PayOut: "BANK_TRANSFER", Fee: wiseFee{Total: dec("1.00")}, TargetAmount: dec("100")},
		{PayOut: "CASH_PICKUP", Fee: wiseFee{Total: dec("3.00")}, TargetAmount: dec("98")},
	}

	got := pickPaymentOption(options, domain.QuoteRequest{DeliveryMethod: domain.DeliveryMethodCashPickup})
	if got == nil || got.PayOut != "CASH_PICKUP" {
		t.Fatalf("expected the cash pickup option, got %+v", got)
	}
}

func TestPickPaymentOption_FallsBackToCheapestBankTransfer(t *testing.T) {
	options := []wisePaymentOption{
		{PayOut: "BANK_TRANSFER", Fee: wiseFee{Total: dec("2.50")}, TargetAmount: dec("100")},
		{PayOut: "BANK_TRANSFER", Fee: wiseFee{Total: dec("1.25")}, TargetAmount: dec("101")},
	}

	got := pickPaymentOption(options, domain.QuoteRequest{DeliveryMethod: domain.DeliveryMethodUnknown})
	if got == nil || !got.Fee.Total.Equal(dec("1.25")) {
		t.Fatalf("expected the cheaper bank transfer option, got %+v", got)
	}
}

func TestPickPaymentOption_NoneMatch(t *testing.T) {
	options := []wisePaymentOption{{PayOut: "CASH_PICKUP", Fee: wiseFee{Total: dec("3.00")}}}

	got := pickPaymentOption(options, domain.QuoteRequest{DeliveryMethod: domain.DeliveryMethodBankDeposit})
	if got != nil {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestAdapter_Quote_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/quotes" {
			t.Errorf("expected path /v3/quotes, got %s", r.URL.Path)
		}
		resp := quoteResponseBody{
			ID:             "abc123",
			SourceCurrency: "USD",
			TargetCurrency: "EUR",
			SourceAmount:   dec("500"),
			TargetAmount:   dec("460"),
			Rate:           dec("0.92"),
			PaymentOptions: []wisePaymentOption{
				{PayOut: "BANK_TRANSFER", Fee: wiseFee{Total: dec("4.50")}, TargetAmount: dec("460"), FormattedEstimatedDeliveryMinutes: 60},
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
		SourceCountry: "US", DestCountry: "DE", SourceCurrency: "USD", DestCurrency: "EUR",
		Amount:         dec("500"),
		DeliveryMethod: domain.DeliveryMethodBankDeposit,
	})

	if !result.Success {
		t.Fatalf("expected success, got error kind %s: %s", result.ErrorKind, result.ErrorMessage)
	}
	if result.Fee == nil || !result.Fee.Equal(dec("4.50")) {
		t.Errorf("expected fee 4.50, got %v", result.Fee)
	}
	if result.DeliveryTimeMinutes == nil || *result.DeliveryTimeMinutes != 60 {
		t.Errorf("expected 60 minute eta, got %v", result.DeliveryTimeMinutes)
	}
}

func TestAdapter_Quote_NoMatchingOption(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := quoteResponseBody{SourceCurrency: "USD", TargetCurrency: "EUR", PaymentOptions: nil}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adapter, err := New(Config{BaseURL: server.URL})(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}

	result := adapter.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "DE", SourceCurrency: "USD", DestCurrency: "EUR",
		Amount: dec("500"),
	})

	if result.Success {
		t.Fatalf("expected failure when no payment options are returned")
	}
	if result.ErrorKind != domain.ErrorKindUnsupportedCorridor {
		t.Errorf("expected ErrorKindUnsupportedCorridor, got %s", result.ErrorKind)
	}
}

func TestAdapter_Quote_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errorResponseBody{})
	}))
	defer server.Close()

	adapter, err := New(Config{BaseURL: server.URL})(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}

	result := adapter.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "DE", SourceCurrency: "USD", DestCurrency: "EUR",
		Amount: dec("500"),
	})

	if result.Success {
		t.Fatalf("expected failure on 401")
	}
	if result.ErrorKind != domain.ErrorKindAuthentication {
		t.Errorf("expected ErrorKindAuthentication, got %s", result.ErrorKind)
	}
}
