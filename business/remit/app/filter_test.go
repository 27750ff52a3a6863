package app

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/domain"
)

func quoteFixture(provider, rate, fee string, deliveryMinutes int) domain.Quote {
	r := decimal.RequireFromString(rate)
	f := decimal.RequireFromString(fee)
	dm := deliveryMinutes
	return domain.Quote{
		ProviderID:          provider,
		Success:             true,
		SendAmount:          decimal.NewFromInt(1000),
		SourceCurrency:      "USD",
		DestinationAmount:   decimal.NewFromInt(1000).Mul(r),
		DestinationCurrency: "MXN",
		ExchangeRate:        &r,
		Fee:                 &f,
		DeliveryTimeMinutes: &dm,
	}
}

func TestFilterAndSort_BestRate(t *testing.T) {
	p1 := quoteFixture("P1", "17.94", "8.42", 1440)
	p2 := quoteFixture("P2", "17.78", "0", 2880)
	p3 := domain.Quote{ProviderID: "P3", Success: false, ErrorKind: domain.ErrorKindUnsupportedCorridor}

	quotes := FilterAndSort([]domain.Quote{p1, p2, p3}, domain.Options{SortBy: domain.SortByBestRate})

	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].ProviderID != "P1" || quotes[1].ProviderID != "P2" {
		t.Errorf("expected order [P1 P2], got [%s %s]", quotes[0].ProviderID, quotes[1].ProviderID)
	}
}

func TestFilterAndSort_MaxFee(t *testing.T) {
	p1 := quoteFixture("P1", "103.99", "0", 1440)
	p2 := quoteFixture("P2", "104.10", "2", 1440)
	failed := domain.Quote{ProviderID: "P3", Success: false, ErrorKind: domain.ErrorKindConnection}

	zero := decimal.Zero
	quotes := FilterAndSort([]domain.Quote{p1, p2, failed}, domain.Options{MaxFee: &zero})

	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].ProviderID != "P1" {
		t.Errorf("expected P1, got %s", quotes[0].ProviderID)
	}
}

func TestFilterAndSort_StableOnTies(t *testing.T) {
	a := quoteFixture("A", "10", "1", 100)
	b := quoteFixture("B", "10", "1", 100)
	c := quoteFixture("C", "10", "1", 100)

	quotes := FilterAndSort([]domain.Quote{a, b, c}, domain.Options{SortBy: domain.SortByBestRate})

	// All fields tied except provider_id, which is the final tie-break
	// and is itself distinct -- order must be alphabetical, matching a
	// stable sort over input order [A B C].
	if quotes[0].ProviderID != "A" || quotes[1].ProviderID != "B" || quotes[2].ProviderID != "C" {
		t.Errorf("unexpected order: %s %s %s", quotes[0].ProviderID, quotes[1].ProviderID, quotes[2].ProviderID)
	}
}

func TestFilterAndSort_FastestTimeNullsLast(t *testing.T) {
	withTime := quoteFixture("WITH_TIME", "10", "1", 100)
	r := decimal.RequireFromString("10")
	f := decimal.RequireFromString("1")
	noTime := domain.Quote{
		ProviderID:          "NO_TIME",
		Success:             true,
		SendAmount:          decimal.NewFromInt(1000),
		SourceCurrency:      "USD",
		DestinationAmount:   decimal.NewFromInt(10000),
		DestinationCurrency: "MXN",
		ExchangeRate:        &r,
		Fee:                 &f,
		DeliveryTimeMinutes: nil,
	}

	quotes := FilterAndSort([]domain.Quote{noTime, withTime}, domain.Options{SortBy: domain.SortByFastestTime})

	if quotes[0].ProviderID != "WITH_TIME" || quotes[1].ProviderID != "NO_TIME" {
		t.Errorf("expected null delivery time last, got [%s %s]", quotes[0].ProviderID, quotes[1].ProviderID)
	}
}

func TestFilterAndSort_CustomPredicate(t *testing.T) {
	p1 := quoteFixture("P1", "17.94", "8.42", 1440)
	p2 := quoteFixture("P2", "17.78", "0", 2880)

	opts := domain.Options{
		CustomPredicate: func(q domain.Quote) bool { return q.ProviderID == "P2" },
	}
	quotes := FilterAndSort([]domain.Quote{p1, p2}, opts)

	if len(quotes) != 1 || quotes[0].ProviderID != "P2" {
		t.Fatalf("expected only P2, got %v", quotes)
	}
}
