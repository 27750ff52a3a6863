// Package app contains application services and port definitions for the
// remittance quote-aggregation context.
package app

import (
	"context"

	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/catalog"
	"github.com/fd1az/remit-aggregator/internal/logger"
)

// AdapterContext is the small set of dependencies an adapter constructor
// may use. Adapters never depend on the Coordinator or on each other --
// only on this context, breaking the cyclic Aggregator->Factory->Adapter
// reference the source exhibited.
type AdapterContext struct {
	Catalog *catalog.Catalog
	Logger  logger.LoggerInterface
}

// ProviderAdapter is the contract every money-transfer provider
// integration implements.
type ProviderAdapter interface {
	// ID returns the adapter's stable identifier.
	ID() string
	// DisplayName returns a human-readable name.
	DisplayName() string
	// SupportedCorridors optionally enumerates (source, dest) country
	// pairs this adapter serves. A nil/empty return means "unknown
	// upfront" -- the adapter must detect unsupported corridors inline.
	SupportedCorridors() []Corridor
	// Quote executes a single quote request against the provider,
	// honoring ctx's deadline. It never panics or returns past its
	// boundary in any form other than a populated RawResult.
	Quote(ctx context.Context, req domain.QuoteRequest) domain.RawResult
}

// Corridor is an ordered pair of ISO-3166-1 alpha-2 country codes.
type Corridor struct {
	SourceCountry string
	DestCountry   string
}

// AdapterConstructor builds a ProviderAdapter from an AdapterContext.
type AdapterConstructor func(ctx AdapterContext) (ProviderAdapter, error)

// Registry enumerates available adapters and builds them by id.
type Registry interface {
	ListIDs() []string
	Build(id string) (ProviderAdapter, error)
	ActiveIDs(include, exclude []string) []string
}

// Cache is the lookup/store port the Coordinator uses for quote,
// corridor, and provider metadata caching.
type Cache interface {
	GetQuote(ctx context.Context, key string) (*domain.AggregateResult, bool)
	SetQuote(ctx context.Context, key string, result domain.AggregateResult) error

	GetCorridorSupport(ctx context.Context, sourceCountry, destCountry string) (bool, bool)
	SetCorridorSupport(ctx context.Context, sourceCountry, destCountry string, supported bool) error

	GetProviderEnabled(ctx context.Context, providerID string) (bool, bool)
	SetProviderEnabled(ctx context.Context, providerID string, enabled bool) error

	InvalidateAllQuotes(ctx context.Context) error
	InvalidateCorridor(ctx context.Context, sourceCountry, destCountry string) error
	InvalidateProvider(ctx context.Context, providerID string) error
}
