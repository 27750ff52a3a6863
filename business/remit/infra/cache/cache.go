package cache

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
)

// Config holds the base TTLs and jitter bound for every namespace,
// overridable from configuration.
type Config struct {
	QuoteTTL        time.Duration
	CorridorTTL     time.Duration
	ProviderTTL     time.Duration
	JitterMaxSeconds int
}

// DefaultConfig returns the external contract's default TTLs.
func DefaultConfig() Config {
	return Config{
		QuoteTTL:         30 * time.Minute,
		CorridorTTL:      12 * time.Hour,
		ProviderTTL:      24 * time.Hour,
		JitterMaxSeconds: 300,
	}
}

// Cache implements app.Cache against a Store, applying TTL+jitter per
// namespace and supporting prefix-based invalidation.
type Cache struct {
	store  Store
	config Config
}

var _ app.Cache = (*Cache)(nil)

// New builds a Cache over store with the given config.
func New(store Store, config Config) *Cache {
	return &Cache{store: store, config: config}
}

func (c *Cache) jittered(base time.Duration) time.Duration {
	if c.config.JitterMaxSeconds <= 0 {
		return base
	}
	jitter := time.Duration(rand.Intn(c.config.JitterMaxSeconds)) * time.Second
	return base + jitter
}

func (c *Cache) GetQuote(ctx context.Context, key string) (*domain.AggregateResult, bool) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var result domain.AggregateResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *Cache) SetQuote(ctx context.Context, key string, result domain.AggregateResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, raw, c.jittered(c.config.QuoteTTL))
}

func (c *Cache) GetCorridorSupport(ctx context.Context, sourceCountry, destCountry string) (bool, bool) {
	key := app.CorridorCacheKey(sourceCountry, destCountry)
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return false, false
	}
	return string(raw) == "1", true
}

func (c *Cache) SetCorridorSupport(ctx context.Context, sourceCountry, destCountry string, supported bool) error {
	key := app.CorridorCacheKey(sourceCountry, destCountry)
	value := []byte("0")
	if supported {
		value = []byte("1")
	}
	return c.store.Set(ctx, key, value, c.jittered(c.config.CorridorTTL))
}

func (c *Cache) GetProviderEnabled(ctx context.Context, providerID string) (bool, bool) {
	key := app.ProviderCacheKey(providerID)
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return false, false
	}
	return string(raw) == "1", true
}

func (c *Cache) SetProviderEnabled(ctx context.Context, providerID string, enabled bool) error {
	key := app.ProviderCacheKey(providerID)
	value := []byte("0")
	if enabled {
		value = []byte("1")
	}
	return c.store.Set(ctx, key, value, c.jittered(c.config.ProviderTTL))
}

func (c *Cache) InvalidateAllQuotes(ctx context.Context) error {
	keys, err := c.store.Scan(ctx, "v1:fee:")
	if err != nil {
		return err
	}
	return c.deleteAll(ctx, keys)
}

func (c *Cache) InvalidateCorridor(ctx context.Context, sourceCountry, destCountry string) error {
	if err := c.store.Delete(ctx, app.CorridorCacheKey(sourceCountry, destCountry)); err != nil {
		return err
	}
	prefix := "v1:fee:" + upper(sourceCountry) + ":" + upper(destCountry) + ":"
	keys, err := c.store.Scan(ctx, prefix)
	if err != nil {
		return err
	}
	return c.deleteAll(ctx, keys)
}

// InvalidateProvider removes the provider's metadata entry only. Quote
// entries are composite across providers and are not scanned or
// removed here: a cached quote entry that includes this provider's data
// stays in place until its TTL expires or InvalidateAllQuotes /
// InvalidateCorridor removes it.
func (c *Cache) InvalidateProvider(ctx context.Context, providerID string) error {
	return c.store.Delete(ctx, app.ProviderCacheKey(providerID))
}

func (c *Cache) deleteAll(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := c.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func upper(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		out[i] = b
	}
	return string(out)
}
