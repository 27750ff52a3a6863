// Package di contains dependency injection tokens for the remit context.
package di

import (
	"github.com/fd1az/remit-aggregator/business/remit/app"
	libdi "github.com/fd1az/remit-aggregator/internal/di"
)

// DI tokens for the remit module.
const (
	Registry    = "remit.Registry"
	Cache       = "remit.Cache"
	Coordinator = "remit.Coordinator"
)

// GetRegistry resolves the provider Registry from the service registry.
func GetRegistry(sr libdi.ServiceRegistry) app.Registry {
	return libdi.Resolve[app.Registry](sr, Registry)
}

// GetCache resolves the quote Cache from the service registry.
func GetCache(sr libdi.ServiceRegistry) app.Cache {
	return libdi.Resolve[app.Cache](sr, Cache)
}

// GetCoordinator resolves the public Coordinator service.
func GetCoordinator(sr libdi.ServiceRegistry) *app.Coordinator {
	return libdi.Resolve[*app.Coordinator](sr, Coordinator)
}
