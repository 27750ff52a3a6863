// Package cache implements the quote/corridor/provider cache namespaces
// against a pluggable backing Store, with TTL jitter and explicit
// invalidation methods. Nothing here subscribes to provider or catalog
// events: entries are invalidated only when a caller invokes one of the
// Invalidate* methods, or when their TTL expires.
package cache

import (
	"context"
	"time"
)

// Store is the minimal byte-oriented backend the cache namespaces are
// built on. A Redis-backed and an in-process implementation both satisfy
// it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Scan returns every key with the given prefix. Used by
	// prefix-based invalidation (all quotes, corridor).
	Scan(ctx context.Context, prefix string) ([]string, error)
}
