package app

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/domain"
)

// FilterAndSort applies the pipeline from the external contract: keep
// successful quotes, apply max_fee and max_delivery_time_minutes, apply
// the custom predicate, then stable-sort by the requested criterion.
func FilterAndSort(allProviders []domain.Quote, opts domain.Options) []domain.Quote {
	kept := make([]domain.Quote, 0, len(allProviders))

	for _, q := range allProviders {
		if !q.Success {
			continue
		}
		if opts.MaxFee != nil && (q.Fee == nil || q.Fee.GreaterThan(*opts.MaxFee)) {
			continue
		}
		if opts.MaxDeliveryTimeMinutes != nil {
			if q.DeliveryTimeMinutes == nil || *q.DeliveryTimeMinutes > *opts.MaxDeliveryTimeMinutes {
				continue
			}
		}
		if opts.CustomPredicate != nil && !opts.CustomPredicate(q) {
			continue
		}
		kept = append(kept, q)
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = domain.SortByBestRate
	}

	less := comparatorFor(sortBy)
	sort.SliceStable(kept, func(i, j int) bool {
		return less(kept[i], kept[j])
	})

	return kept
}

// comparatorFor returns a "less" function implementing one of the four
// sort criteria, including the tie-break chains the contract specifies.
func comparatorFor(sortBy domain.SortBy) func(a, b domain.Quote) bool {
	switch sortBy {
	case domain.SortByLowestFee:
		return func(a, b domain.Quote) bool {
			if c := feeCmp(a, b); c != 0 {
				return c < 0
			}
			if c := rateCmp(b, a); c != 0 { // descending exchange_rate
				return c < 0
			}
			if c := deliveryCmp(a, b); c != 0 {
				return c < 0
			}
			return a.ProviderID < b.ProviderID
		}
	case domain.SortByFastestTime:
		return func(a, b domain.Quote) bool {
			if c := deliveryCmp(a, b); c != 0 {
				return c < 0
			}
			if c := feeCmp(a, b); c != 0 {
				return c < 0
			}
			if c := rateCmp(b, a); c != 0 {
				return c < 0
			}
			return a.ProviderID < b.ProviderID
		}
	case domain.SortByBestValue:
		return func(a, b domain.Quote) bool {
			if c := bestValueCmp(b, a); c != 0 { // descending effective receive
				return c < 0
			}
			return a.ProviderID < b.ProviderID
		}
	default: // best_rate
		return func(a, b domain.Quote) bool {
			if c := rateCmp(b, a); c != 0 { // descending exchange_rate
				return c < 0
			}
			if c := feeCmp(a, b); c != 0 {
				return c < 0
			}
			if c := deliveryCmp(a, b); c != 0 {
				return c < 0
			}
			return a.ProviderID < b.ProviderID
		}
	}
}

func feeCmp(a, b domain.Quote) int {
	return a.FeeOrZero().Cmp(b.FeeOrZero())
}

func rateCmp(a, b domain.Quote) int {
	return a.EffectiveExchangeRate().Cmp(b.EffectiveExchangeRate())
}

// deliveryCmp orders nulls last, per fastest_time's rule.
func deliveryCmp(a, b domain.Quote) int {
	switch {
	case a.DeliveryTimeMinutes == nil && b.DeliveryTimeMinutes == nil:
		return 0
	case a.DeliveryTimeMinutes == nil:
		return 1
	case b.DeliveryTimeMinutes == nil:
		return -1
	case *a.DeliveryTimeMinutes < *b.DeliveryTimeMinutes:
		return -1
	case *a.DeliveryTimeMinutes > *b.DeliveryTimeMinutes:
		return 1
	default:
		return 0
	}
}

// bestValueCmp compares effective receive: destination_amount minus the
// fee converted to destination currency via the exchange rate.
func bestValueCmp(a, b domain.Quote) int {
	return effectiveReceive(a).Cmp(effectiveReceive(b))
}

func effectiveReceive(q domain.Quote) decimal.Decimal {
	rate := q.EffectiveExchangeRate()
	feeInDest := q.FeeOrZero().Mul(rate)
	return q.DestinationAmount.Sub(feeInDest)
}
