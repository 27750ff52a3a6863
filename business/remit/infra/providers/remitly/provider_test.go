package remitly

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

func TestAdapter_Quote_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/estimates" {
			t.Errorf("expected path /v2/estimates, got %s", r.URL.Path)
		}
		resp := estimateResponseBody{
			SendAmount:      decimal.RequireFromString("150"),
			SendCurrency:    "USD",
			ReceiveAmount:   decimal.RequireFromString("2700.00"),
			ReceiveCurrency: "PHP",
			ExchangeRate:    decimal.RequireFromString("18.25"),
			TransferFee:     decimal.RequireFromString("1.99"),
			DeliveryMethod:  "bank_account",
			PaymentMethod:   "card",
			DeliverySpeed:   "within 24 hours",
			Supported:       true,
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
		SourceCountry: "US", DestCountry: "PH", SourceCurrency: "USD", DestCurrency: "PHP",
		Amount:         decimal.RequireFromString("150"),
		PaymentMethod:  domain.PaymentMethodCreditCard,
		DeliveryMethod: domain.DeliveryMethodBankDeposit,
	})

	if !result.Success {
		t.Fatalf("expected success, got error kind %s: %s", result.ErrorKind, result.ErrorMessage)
	}
	if result.Fee == nil || !result.Fee.Equal(decimal.RequireFromString("1.99")) {
		t.Errorf("expected fee 1.99, got %v", result.Fee)
	}
	if result.DeliveryTimeMinutes == nil || *result.DeliveryTimeMinutes != 1440 {
		t.Errorf("expected 1440 minute eta for 'within 24 hours', got %v", result.DeliveryTimeMinutes)
	}
}

func TestAdapter_Quote_UnsupportedCorridor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(estimateResponseBody{Supported: false})
	}))
	defer server.Close()

	adapter, err := New(Config{BaseURL: server.URL})(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}

	result := adapter.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "KP", SourceCurrency: "USD", DestCurrency: "KPW",
		Amount: decimal.RequireFromString("50"),
	})

	if result.Success {
		t.Fatalf("expected failure for unsupported corridor")
	}
	if result.ErrorKind != domain.ErrorKindUnsupportedCorridor {
		t.Errorf("expected ErrorKindUnsupportedCorridor, got %s", result.ErrorKind)
	}
}

func TestAdapter_Quote_NotFoundMapsToUnsupportedCorridor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(apiErrorBody{ErrorCode: "NOT_FOUND", ErrorMessage: "corridor unknown"})
	}))
	defer server.Close()

	adapter, err := New(Config{BaseURL: server.URL})(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}

	result := adapter.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "PH", SourceCurrency: "USD", DestCurrency: "PHP",
		Amount: decimal.RequireFromString("50"),
	})

	if result.Success {
		t.Fatalf("expected failure on 404")
	}
	if result.ErrorKind != domain.ErrorKindUnsupportedCorridor {
		t.Errorf("expected ErrorKindUnsupportedCorridor, got %s", result.ErrorKind)
	}
}

func TestAdapter_Quote_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(apiErrorBody{ErrorCode: "RATE_LIMITED", ErrorMessage: "slow down"})
	}))
	defer server.Close()

	adapter, err := New(Config{BaseURL: server.URL})(app.AdapterContext{})
	if err != nil {
		t.Fatalf("failed to build adapter: %v", err)
	}

	result := adapter.Quote(context.Background(), domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "PH", SourceCurrency: "USD", DestCurrency: "PHP",
		Amount: decimal.RequireFromString("50"),
	})

	if result.Success {
		t.Fatalf("expected failure on 429")
	}
	if result.ErrorKind != domain.ErrorKindRateLimit {
		t.Errorf("expected ErrorKindRateLimit, got %s", result.ErrorKind)
	}
}
