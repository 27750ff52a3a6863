// Package remit implements the remittance quote-aggregation bounded context.
package remit

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	remitDI "github.com/fd1az/remit-aggregator/business/remit/di"
	"github.com/fd1az/remit-aggregator/business/remit/infra/cache"
	"github.com/fd1az/remit-aggregator/business/remit/infra/providers/instarem"
	"github.com/fd1az/remit-aggregator/business/remit/infra/providers/mock"
	"github.com/fd1az/remit-aggregator/business/remit/infra/providers/remitly"
	"github.com/fd1az/remit-aggregator/business/remit/infra/providers/wise"
	"github.com/fd1az/remit-aggregator/business/remit/infra/providers/worldremit"
	"github.com/fd1az/remit-aggregator/business/remit/infra/providers/xoom"
	"github.com/fd1az/remit-aggregator/business/remit/infra/registry"
	"github.com/fd1az/remit-aggregator/internal/catalog"
	"github.com/fd1az/remit-aggregator/internal/config"
	"github.com/fd1az/remit-aggregator/internal/di"
	"github.com/fd1az/remit-aggregator/internal/logger"
	"github.com/fd1az/remit-aggregator/internal/monolith"
)

// Module implements the remit bounded context.
type Module struct{}

// RegisterServices registers all remit services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, remitDI.Registry, func(sr di.ServiceRegistry) app.Registry {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		cat := sr.Get("catalog").(*catalog.Catalog)

		reg := registry.New(app.AdapterContext{Catalog: cat, Logger: log})

		reg.Register("wise", wise.New(wise.Config{
			BaseURL: cfg.Providers.Wise.BaseURL, APIKey: cfg.Providers.Wise.APIKey,
			APISecret: cfg.Providers.Wise.APISecret, Timeout: cfg.Providers.Wise.Timeout,
		}))
		reg.Register("remitly", remitly.New(remitly.Config{
			BaseURL: cfg.Providers.Remitly.BaseURL, APIKey: cfg.Providers.Remitly.APIKey,
			APISecret: cfg.Providers.Remitly.APISecret, Timeout: cfg.Providers.Remitly.Timeout,
		}))
		reg.Register("xoom", xoom.New(xoom.Config{
			BaseURL: cfg.Providers.Xoom.BaseURL, APIKey: cfg.Providers.Xoom.APIKey,
			APISecret: cfg.Providers.Xoom.APISecret, Timeout: cfg.Providers.Xoom.Timeout,
		}))
		reg.Register("worldremit", worldremit.New(worldremit.Config{
			BaseURL: cfg.Providers.WorldRemit.BaseURL, APIKey: cfg.Providers.WorldRemit.APIKey,
			APISecret: cfg.Providers.WorldRemit.APISecret, Timeout: cfg.Providers.WorldRemit.Timeout,
		}))
		reg.Register("instarem", instarem.New(instarem.Config{
			BaseURL: cfg.Providers.Instarem.BaseURL, APIKey: cfg.Providers.Instarem.APIKey,
			APISecret: cfg.Providers.Instarem.APISecret, Timeout: cfg.Providers.Instarem.Timeout,
		}))
		reg.Register("mock", mock.New())

		for _, id := range reg.ListIDs() {
			reg.SetEnabled(id, isEnabled(id, cfg.Aggregator.EnabledProviders))
		}

		return reg
	})

	di.RegisterToken(c, remitDI.Cache, func(sr di.ServiceRegistry) app.Cache {
		cfg := sr.Get("config").(*config.Config)

		var store cache.Store
		if cfg.Cache.Backend == "redis" {
			store = cache.NewRedisStore(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		} else {
			store = cache.NewMemoryStore()
		}

		cacheCfg := cache.Config{
			QuoteTTL:         cfg.Cache.QuoteTTL,
			CorridorTTL:      cfg.Cache.CorridorTTL,
			ProviderTTL:      cfg.Cache.ProviderTTL,
			JitterMaxSeconds: cfg.Cache.JitterMaxSeconds,
		}
		return cache.New(store, cacheCfg)
	})

	di.RegisterToken(c, remitDI.Coordinator, func(sr di.ServiceRegistry) *app.Coordinator {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		cat := sr.Get("catalog").(*catalog.Catalog)
		reg := remitDI.GetRegistry(sr)
		ca := remitDI.GetCache(sr)

		return app.NewCoordinator(cat, reg, ca, log, decimal.NewFromFloat(cfg.Aggregator.MaxAmount))
	})

	return nil
}

// Startup initializes the remit module. Quote aggregation is entirely
// pull-based (no background connections to establish), so startup only
// logs readiness.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "remit module started")
	return nil
}

func isEnabled(id string, enabled []string) bool {
	for _, e := range enabled {
		if e == id {
			return true
		}
	}
	return false
}
