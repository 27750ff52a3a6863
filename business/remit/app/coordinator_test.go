package app_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/business/remit/infra/cache"
	"github.com/fd1az/remit-aggregator/business/remit/infra/registry"
	"github.com/fd1az/remit-aggregator/internal/catalog"
	"github.com/fd1az/remit-aggregator/internal/logger"
)

// slowAdapter blocks for delay, or until ctx is cancelled if that comes
// first, used to exercise the per-adapter timeout path.
type slowAdapter struct {
	id    string
	delay time.Duration
}

func (a *slowAdapter) ID() string                     { return a.id }
func (a *slowAdapter) DisplayName() string            { return a.id }
func (a *slowAdapter) SupportedCorridors() []app.Corridor { return nil }
func (a *slowAdapter) Quote(ctx context.Context, req domain.QuoteRequest) domain.RawResult {
	select {
	case <-time.After(a.delay):
		return domain.RawResult{ProviderID: a.id, Success: true, SendAmount: req.Amount, ExchangeRate: ptr(decimal.NewFromInt(1))}
	case <-ctx.Done():
		return domain.RawResult{ProviderID: a.id, Success: false, ErrorKind: domain.ErrorKindTimeout}
	}
}

// fixedAdapter returns a deterministic success or failure without
// touching the network, standing in for a real provider in coordinator
// tests.
type fixedAdapter struct {
	id      string
	rate    string
	fee     string
	minutes int
	fail    bool
	kind    domain.ErrorKind
}

func (a *fixedAdapter) ID() string                     { return a.id }
func (a *fixedAdapter) DisplayName() string            { return a.id }
func (a *fixedAdapter) SupportedCorridors() []app.Corridor { return nil }
func (a *fixedAdapter) Quote(ctx context.Context, req domain.QuoteRequest) domain.RawResult {
	if a.fail {
		return domain.RawResult{ProviderID: a.id, Success: false, ErrorKind: a.kind, ErrorMessage: "simulated failure"}
	}
	rate := decimal.RequireFromString(a.rate)
	fee := decimal.RequireFromString(a.fee)
	minutes := a.minutes
	return domain.RawResult{
		ProviderID:          a.id,
		Success:             true,
		SendAmount:          req.Amount,
		SourceCurrency:      req.SourceCurrency,
		DestinationAmount:   req.Amount.Mul(rate),
		DestinationCurrency: req.DestCurrency,
		ExchangeRate:        &rate,
		Fee:                 &fee,
		DeliveryTimeMinutes: &minutes,
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func testCatalog() *catalog.Catalog {
	return catalog.Default()
}

func testLogger() logger.LoggerInterface {
	return logger.New(io.Discard, logger.LevelError, "test", nil)
}

func newTestRegistry(adapters ...app.ProviderAdapter) *registry.Registry {
	reg := registry.New(app.AdapterContext{})
	for _, a := range adapters {
		a := a
		reg.Register(a.ID(), func(app.AdapterContext) (app.ProviderAdapter, error) { return a, nil })
	}
	return reg
}

func TestCoordinator_GetAllQuotes_HappyPath(t *testing.T) {
	reg := newTestRegistry(
		&fixedAdapter{id: "p1", rate: "17.94", fee: "8.42", minutes: 1440},
		&fixedAdapter{id: "p2", rate: "17.78", fee: "0", minutes: 2880},
	)
	c := app.NewCoordinator(testCatalog(), reg, cache.New(cache.NewMemoryStore(), cache.DefaultConfig()), testLogger(), decimal.Zero)

	req := domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount:  decimal.NewFromInt(1000),
		Options: domain.Options{SortBy: domain.SortByBestRate},
	}

	result := c.GetAllQuotes(context.Background(), req)

	if !result.Success {
		t.Fatalf("expected success")
	}
	if len(result.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(result.Quotes))
	}
	if result.Quotes[0].ProviderID != "p1" {
		t.Errorf("expected p1 (best rate) first, got %s", result.Quotes[0].ProviderID)
	}
	if result.CacheHit {
		t.Errorf("first call should not be a cache hit")
	}
}

func TestCoordinator_GetAllQuotes_MaxFeeFilter(t *testing.T) {
	reg := newTestRegistry(
		&fixedAdapter{id: "free", rate: "17.50", fee: "0", minutes: 60},
		&fixedAdapter{id: "charges", rate: "18.00", fee: "3.00", minutes: 60},
	)
	c := app.NewCoordinator(testCatalog(), reg, cache.New(cache.NewMemoryStore(), cache.DefaultConfig()), testLogger(), decimal.Zero)

	zero := decimal.Zero
	req := domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount:  decimal.NewFromInt(500),
		Options: domain.Options{MaxFee: &zero},
	}

	result := c.GetAllQuotes(context.Background(), req)

	if len(result.Quotes) != 1 || result.Quotes[0].ProviderID != "free" {
		t.Fatalf("expected only the zero-fee provider to survive, got %v", result.Quotes)
	}
	if len(result.AllProviders) != 2 {
		t.Errorf("expected all_providers to retain both entries, got %d", len(result.AllProviders))
	}
}

func TestCoordinator_GetAllQuotes_CacheHitReappliesCallersOwnOptions(t *testing.T) {
	reg := newTestRegistry(
		&fixedAdapter{id: "cheap", rate: "17.50", fee: "0", minutes: 2880},
		&fixedAdapter{id: "fast", rate: "17.80", fee: "5.00", minutes: 60},
	)
	c := app.NewCoordinator(testCatalog(), reg, cache.New(cache.NewMemoryStore(), cache.DefaultConfig()), testLogger(), decimal.Zero)

	base := domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount: decimal.NewFromInt(1000),
	}

	lowestFeeReq := base
	lowestFeeReq.Options = domain.Options{SortBy: domain.SortByLowestFee}
	first := c.GetAllQuotes(context.Background(), lowestFeeReq)
	if first.CacheHit {
		t.Fatalf("first call must not be a cache hit")
	}
	if first.Quotes[0].ProviderID != "cheap" {
		t.Fatalf("expected cheap first under lowest_fee, got %s", first.Quotes[0].ProviderID)
	}

	fastestReq := base
	fastestReq.Options = domain.Options{SortBy: domain.SortByFastestTime}
	second := c.GetAllQuotes(context.Background(), fastestReq)
	if !second.CacheHit {
		t.Fatalf("second call should reuse the cached fan-out")
	}
	if second.Quotes[0].ProviderID != "fast" {
		t.Fatalf("expected a cache hit to still honor this caller's own sort_by, got %s first", second.Quotes[0].ProviderID)
	}
	if second.FiltersApplied.SortBy != domain.SortByFastestTime {
		t.Errorf("expected FiltersApplied to reflect this caller's own options, got %s", second.FiltersApplied.SortBy)
	}
	if second.Request.SourceCountry != "US" {
		t.Errorf("expected cache hit to carry this caller's own request, got %+v", second.Request)
	}
}

func TestCoordinator_GetAllQuotes_ForceRefreshBypassesCache(t *testing.T) {
	reg := newTestRegistry(&fixedAdapter{id: "p1", rate: "17.94", fee: "8.42", minutes: 1440})
	c := app.NewCoordinator(testCatalog(), reg, cache.New(cache.NewMemoryStore(), cache.DefaultConfig()), testLogger(), decimal.Zero)

	req := domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount: decimal.NewFromInt(1000),
	}

	first := c.GetAllQuotes(context.Background(), req)
	if first.CacheHit {
		t.Fatalf("first call must not be a cache hit")
	}

	second := c.GetAllQuotes(context.Background(), req)
	if !second.CacheHit {
		t.Fatalf("second identical call should be a cache hit")
	}

	req.Options.ForceRefresh = true
	third := c.GetAllQuotes(context.Background(), req)
	if third.CacheHit {
		t.Fatalf("force_refresh must bypass the cache")
	}
}

func TestCoordinator_GetAllQuotes_PerProviderTimeout(t *testing.T) {
	reg := newTestRegistry(
		&fixedAdapter{id: "fast", rate: "17.94", fee: "8.42", minutes: 1440},
		&slowAdapter{id: "slow", delay: 500 * time.Millisecond},
	)
	c := app.NewCoordinator(testCatalog(), reg, cache.New(cache.NewMemoryStore(), cache.DefaultConfig()), testLogger(), decimal.Zero)

	timeoutMS := 20
	req := domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount:  decimal.NewFromInt(1000),
		Options: domain.Options{PerProviderTimeoutMS: &timeoutMS},
	}

	result := c.GetAllQuotes(context.Background(), req)

	if len(result.AllProviders) != 2 {
		t.Fatalf("expected both providers represented, got %d", len(result.AllProviders))
	}

	var slow domain.Quote
	for _, q := range result.AllProviders {
		if q.ProviderID == "slow" {
			slow = q
		}
	}
	if slow.Success {
		t.Fatalf("expected the slow adapter to time out")
	}
	if slow.ErrorKind != domain.ErrorKindTimeout {
		t.Errorf("expected ErrorKindTimeout, got %s", slow.ErrorKind)
	}
	if _, ok := result.Errors["slow"]; !ok {
		t.Errorf("expected slow provider's error reflected in Errors map")
	}
}

func TestCoordinator_GetAllQuotes_InvalidAmountRejected(t *testing.T) {
	reg := newTestRegistry(&fixedAdapter{id: "p1", rate: "17.94", fee: "8.42", minutes: 1440})
	c := app.NewCoordinator(testCatalog(), reg, cache.New(cache.NewMemoryStore(), cache.DefaultConfig()), testLogger(), decimal.Zero)

	req := domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount: decimal.NewFromInt(-1),
	}

	result := c.GetAllQuotes(context.Background(), req)

	if result.Success {
		t.Fatalf("expected validation failure for a negative amount")
	}
	reqErr, ok := result.Errors["_request"]
	if !ok {
		t.Fatalf("expected a _request error entry")
	}
	if reqErr.Kind != domain.ErrorKindInvalidParameter {
		t.Errorf("expected ErrorKindInvalidParameter, got %s", reqErr.Kind)
	}
}

func TestCoordinator_GetAllQuotes_ResolvesBlankDestCurrency(t *testing.T) {
	reg := newTestRegistry(&fixedAdapter{id: "p1", rate: "17.94", fee: "8.42", minutes: 1440})
	c := app.NewCoordinator(testCatalog(), reg, cache.New(cache.NewMemoryStore(), cache.DefaultConfig()), testLogger(), decimal.Zero)

	req := domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD",
		Amount: decimal.NewFromInt(1000),
	}

	result := c.GetAllQuotes(context.Background(), req)

	if !result.Success {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if len(result.Quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(result.Quotes))
	}
	if result.Quotes[0].DestinationCurrency != "MXN" {
		t.Errorf("expected resolved DestCurrency MXN to reach the adapter, got %s", result.Quotes[0].DestinationCurrency)
	}
	if result.Request.DestCurrency != "MXN" {
		t.Errorf("expected result.Request.DestCurrency to reflect the resolved currency, got %q", result.Request.DestCurrency)
	}
}

func TestCoordinator_GetAllQuotes_CacheHitPreservesRequest(t *testing.T) {
	reg := newTestRegistry(&fixedAdapter{id: "p1", rate: "17.94", fee: "8.42", minutes: 1440})
	c := app.NewCoordinator(testCatalog(), reg, cache.New(cache.NewMemoryStore(), cache.DefaultConfig()), testLogger(), decimal.Zero)

	req := domain.QuoteRequest{
		SourceCountry: "US", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount: decimal.NewFromInt(1000),
	}

	first := c.GetAllQuotes(context.Background(), req)
	if first.CacheHit {
		t.Fatalf("first call must not be a cache hit")
	}

	second := c.GetAllQuotes(context.Background(), req)
	if !second.CacheHit {
		t.Fatalf("second identical call should be a cache hit")
	}
	if second.Request.SourceCountry != "US" || second.Request.DestCurrency != "MXN" {
		t.Errorf("expected cache hit to carry the live request, got %+v", second.Request)
	}
}

func TestCoordinator_GetAllQuotes_UnknownCountryRejected(t *testing.T) {
	reg := newTestRegistry(&fixedAdapter{id: "p1", rate: "17.94", fee: "8.42", minutes: 1440})
	c := app.NewCoordinator(testCatalog(), reg, cache.New(cache.NewMemoryStore(), cache.DefaultConfig()), testLogger(), decimal.Zero)

	req := domain.QuoteRequest{
		SourceCountry: "ZZ", DestCountry: "MX", SourceCurrency: "USD", DestCurrency: "MXN",
		Amount: decimal.NewFromInt(100),
	}

	result := c.GetAllQuotes(context.Background(), req)

	if result.Success {
		t.Fatalf("expected validation failure for an unknown source country")
	}
}
