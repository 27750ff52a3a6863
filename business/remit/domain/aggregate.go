package domain

import "time"

// FiltersApplied echoes the filter/sort options actually used to produce
// Quotes, for caller introspection.
type FiltersApplied struct {
	SortBy                 SortBy           `json:"sort_by"`
	MaxFee                 *string          `json:"max_fee,omitempty"`
	MaxDeliveryTimeMinutes *int             `json:"max_delivery_time_minutes,omitempty"`
	IncludeProviders       []string         `json:"include_providers,omitempty"`
	ExcludeProviders       []string         `json:"exclude_providers,omitempty"`
}

// AggregateResult is the coordinator's public return value.
type AggregateResult struct {
	Request        QuoteRequest          `json:"-"`
	Success        bool                  `json:"success"`
	ElapsedMS      int64                 `json:"elapsed_ms"`
	CacheHit       bool                  `json:"cache_hit"`
	Timestamp      time.Time             `json:"timestamp"`
	FiltersApplied FiltersApplied        `json:"filters_applied"`
	AllProviders   []Quote               `json:"all_providers"`
	Quotes         []Quote               `json:"quotes"`
	Errors         map[string]QuoteError `json:"errors"`
}

// NewInvalidParameterResult builds the single-error aggregate the
// coordinator returns when request validation fails before any fan-out.
func NewInvalidParameterResult(req QuoteRequest, message string) AggregateResult {
	return AggregateResult{
		Request:   req,
		Success:   false,
		Timestamp: time.Now().UTC(),
		Errors: map[string]QuoteError{
			"_request": NewQuoteError(ErrorKindInvalidParameter, message),
		},
		AllProviders: []Quote{},
		Quotes:       []Quote{},
	}
}
