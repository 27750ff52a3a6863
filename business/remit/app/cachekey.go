package app

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/domain"
)

// amountMicroUnitScale converts a decimal amount to its integer
// micro-unit representation so that 1000 and 1000.00 map to the same
// cache key (§4.G quote key scaling rule).
var amountMicroUnitScale = decimal.New(1, 6)

// QuoteCacheKey builds the versioned, namespaced quote cache key.
func QuoteCacheKey(req domain.QuoteRequest) string {
	scaled := req.Amount.Mul(amountMicroUnitScale).Truncate(0)
	return fmt.Sprintf("v1:fee:%s:%s:%s:%s:%s",
		strings.ToUpper(req.SourceCountry),
		strings.ToUpper(req.DestCountry),
		strings.ToUpper(req.SourceCurrency),
		strings.ToUpper(req.DestCurrency),
		scaled.String(),
	)
}

// CorridorCacheKey builds the corridor-support cache key.
func CorridorCacheKey(sourceCountry, destCountry string) string {
	return fmt.Sprintf("corridor:%s:%s", strings.ToUpper(sourceCountry), strings.ToUpper(destCountry))
}

// ProviderCacheKey builds the provider metadata cache key.
func ProviderCacheKey(providerID string) string {
	return fmt.Sprintf("provider:%s", providerID)
}
