package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/catalog"
	"github.com/fd1az/remit-aggregator/internal/logger"
)

// Coordinator implements the end-to-end aggregation flow: validate,
// probe cache, fan out, normalize, filter/sort, write cache, respond.
type Coordinator struct {
	catalog    *catalog.Catalog
	registry   Registry
	cache      Cache
	executor   *Executor
	normalizer *Normalizer
	logger     logger.LoggerInterface
	sf         singleflight.Group
	maxAmount  decimal.Decimal
}

// NewCoordinator builds a Coordinator from its dependencies. maxAmount
// caps the request amount; a zero value disables the cap.
func NewCoordinator(cat *catalog.Catalog, registry Registry, cache Cache, log logger.LoggerInterface, maxAmount decimal.Decimal) *Coordinator {
	return &Coordinator{
		catalog:    cat,
		registry:   registry,
		cache:      cache,
		executor:   NewExecutor(log),
		normalizer: NewNormalizer(),
		logger:     log,
		maxAmount:  maxAmount,
	}
}

// GetAllQuotes runs the full aggregation pipeline for req.
func (c *Coordinator) GetAllQuotes(ctx context.Context, req domain.QuoteRequest) domain.AggregateResult {
	start := time.Now()

	// Step 1: validate. validate may resolve a blank DestCurrency from
	// the destination country, so req is passed by pointer and the
	// resolved value flows into the cache key and the fan-out below.
	if err := c.validate(&req); err != nil {
		return domain.NewInvalidParameterResult(req, err.Error())
	}

	key := QuoteCacheKey(req)

	// Step 2: cache probe. The cached entry (and the singleflight-shared
	// entry below) holds only the corridor's fan-out: all_providers and
	// errors, neither of which vary by SortBy/MaxFee/MaxDeliveryTimeMinutes/
	// CustomPredicate/IncludeRaw. Those caller-specific options are applied
	// fresh below, every time, so two concurrent or cache-sharing callers
	// with different options never see each other's filtered/sorted view.
	var (
		shared   domain.AggregateResult
		cacheHit bool
	)
	if !req.Options.ForceRefresh {
		if cached, ok := c.cache.GetQuote(ctx, key); ok {
			shared = *cached
			cacheHit = true
		}
	}
	if !cacheHit {
		// Single-flight: concurrent identical requests await the first
		// fan-out rather than each dispatching their own.
		v, err, _ := c.sf.Do(key, func() (any, error) {
			return c.fanOutAndStore(ctx, req, key), nil
		})
		if err != nil {
			// fanOutAndStore never returns an error through Do; this
			// branch exists only to satisfy singleflight's signature.
			return domain.NewInvalidParameterResult(req, err.Error())
		}
		shared = v.(domain.AggregateResult)
	}

	result := finishForCaller(shared, req)
	result.CacheHit = cacheHit
	result.Timestamp = time.Now().UTC()
	result.ElapsedMS = time.Since(start).Milliseconds()
	return result
}

// finishForCaller applies the caller's own Options to a shared fan-out
// result: raw-payload visibility, filter + sort, FiltersApplied, and the
// live request that produced the cache key -- every field that would
// otherwise leak one caller's options into a concurrent or cache-sharing
// caller's response.
func finishForCaller(shared domain.AggregateResult, req domain.QuoteRequest) domain.AggregateResult {
	allProviders := withRawVisibility(shared.AllProviders, req.Options.IncludeRaw)
	result := shared
	result.Request = req
	result.AllProviders = allProviders
	result.Quotes = FilterAndSort(allProviders, req.Options)
	result.FiltersApplied = filtersAppliedFrom(req.Options)
	return result
}

func withRawVisibility(quotes []domain.Quote, includeRaw bool) []domain.Quote {
	if includeRaw {
		return quotes
	}
	out := make([]domain.Quote, len(quotes))
	for i, q := range quotes {
		q.Raw = nil
		out[i] = q
	}
	return out
}

func filtersAppliedFrom(opts domain.Options) domain.FiltersApplied {
	applied := domain.FiltersApplied{
		SortBy:                 opts.SortBy,
		MaxDeliveryTimeMinutes: opts.MaxDeliveryTimeMinutes,
		IncludeProviders:       opts.IncludeProviders,
		ExcludeProviders:       opts.ExcludeProviders,
	}
	if opts.MaxFee != nil {
		s := opts.MaxFee.String()
		applied.MaxFee = &s
	}
	return applied
}

func (c *Coordinator) fanOutAndStore(ctx context.Context, req domain.QuoteRequest, key string) domain.AggregateResult {
	// Step 3: active adapter set. A build failure still owes the caller
	// exactly one RawResult for id -- it is carried alongside the
	// dispatched adapters rather than dropped, so every active provider
	// ends up represented in all_providers.
	activeIDs := c.registry.ActiveIDs(req.Options.IncludeProviders, req.Options.ExcludeProviders)
	adapters := make([]ProviderAdapter, 0, len(activeIDs))
	buildFailures := make([]domain.RawResult, 0)
	for _, id := range activeIDs {
		adapter, err := c.registry.Build(id)
		if err != nil {
			c.logger.Error(ctx, "failed to build adapter", "provider", id, "error", err)
			buildFailures = append(buildFailures, domain.RawResult{
				ProviderID:   id,
				Success:      false,
				ErrorKind:    domain.ErrorKindInternal,
				ErrorMessage: err.Error(),
			})
			continue
		}
		adapters = append(adapters, adapter)
	}

	// Step 4: fan out.
	raws := append(c.executor.Dispatch(ctx, req, adapters), buildFailures...)

	// Step 5: normalize. Raw is always retained on the shared result --
	// per-caller visibility (Options.IncludeRaw) is applied later in
	// finishForCaller, since this result may be reused by a concurrent or
	// future caller with different options.
	allProviders := make([]domain.Quote, len(raws))
	errs := make(map[string]domain.QuoteError, len(raws))
	for i, raw := range raws {
		q := c.normalizer.Normalize(raw, true)
		allProviders[i] = q
		if !q.Success {
			errs[q.ProviderID] = domain.NewQuoteError(q.ErrorKind, q.ErrorMessage)
		}
	}

	// Step 6 (filter + sort) and the caller-specific parts of step 8
	// (FiltersApplied, Request) are deferred to finishForCaller: this
	// shared result may be served,
	// verbatim, to other callers via the cache or singleflight.
	result := domain.AggregateResult{
		Success:      true,
		AllProviders: allProviders,
		Errors:       errs,
	}

	// Step 7: write cache, only if at least one provider returned a
	// definitive result (success or UnsupportedCorridor) -- never cache
	// a batch composed entirely of transient failures.
	if ctx.Err() == nil && hasDefinitiveResult(allProviders) {
		if err := c.cache.SetQuote(ctx, key, result); err != nil {
			c.logger.Warn(ctx, "failed to write quote cache entry", "key", key, "error", err)
		}
	}

	return result
}

func hasDefinitiveResult(quotes []domain.Quote) bool {
	for _, q := range quotes {
		if q.Success || q.ErrorKind == domain.ErrorKindUnsupportedCorridor {
			return true
		}
	}
	return false
}

func (c *Coordinator) validate(req *domain.QuoteRequest) error {
	if !c.catalog.IsValidISOCountry(req.SourceCountry) {
		return fmt.Errorf("invalid source_country: %s", req.SourceCountry)
	}
	if !c.catalog.IsValidISOCountry(req.DestCountry) {
		return fmt.Errorf("invalid dest_country: %s", req.DestCountry)
	}
	if !c.catalog.IsValidISOCurrency(req.SourceCurrency) {
		return fmt.Errorf("invalid source_currency: %s", req.SourceCurrency)
	}
	if req.DestCurrency == "" {
		resolved, err := c.catalog.DefaultCurrency(req.DestCountry)
		if err != nil {
			return fmt.Errorf("cannot derive dest_currency: %w", err)
		}
		req.DestCurrency = resolved
	}
	if !c.catalog.IsValidISOCurrency(req.DestCurrency) {
		return fmt.Errorf("invalid dest_currency: %s", req.DestCurrency)
	}
	if !req.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", req.Amount.String())
	}
	if c.maxAmount.IsPositive() && req.Amount.GreaterThan(c.maxAmount) {
		return fmt.Errorf("amount %s exceeds maximum of %s", req.Amount.String(), c.maxAmount.String())
	}
	return nil
}
