// Package circuitbreaker wraps sony/gobreaker/v2 with the defaults this
// codebase wants everywhere it calls an external provider: a failure-ratio
// trip threshold over a minimum request count, a bounded half-open probe
// count, and an optional state-change hook (Config.OnStateChange).
package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// CircuitBreaker wraps gobreaker.CircuitBreaker[T] so call sites depend on
// this package instead of importing gobreaker directly.
type CircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// Config mirrors the subset of gobreaker.Settings this codebase tunes,
// plus a name used in logs and metrics labels.
type Config struct {
	Name          string
	MaxRequests   uint32
	Interval      time.Duration
	Timeout       time.Duration
	FailureRatio  float64
	MinRequests   uint32
	OnStateChange func(name string, from, to gobreaker.State)
}

// DefaultConfig returns the standard tuning: trip once at least 5 requests
// have been seen in the rolling interval and at least 60% failed, stay
// open for 30s before going half-open, allow at most 2 requests while
// half-open, and reset counts every minute.
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		MaxRequests:  2,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		FailureRatio: 0.6,
		MinRequests:  5,
	}
}

// New builds a CircuitBreaker[T] from cfg.
func New[T any](cfg Config) *CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
	}
	if cfg.OnStateChange != nil {
		settings.OnStateChange = cfg.OnStateChange
	}
	return &CircuitBreaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// Execute runs fn through the breaker, short-circuiting with
// gobreaker.ErrOpenState or gobreaker.ErrTooManyRequests when the breaker
// is open or the half-open probe quota is exhausted.
func (b *CircuitBreaker[T]) Execute(fn func() (T, error)) (T, error) {
	return b.cb.Execute(fn)
}

// State reports the breaker's current state, for health checks and metrics.
func (b *CircuitBreaker[T]) State() gobreaker.State {
	return b.cb.State()
}
