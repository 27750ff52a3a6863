// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/fd1az/remit-aggregator/internal/catalog"
	"github.com/fd1az/remit-aggregator/internal/config"
	"github.com/fd1az/remit-aggregator/internal/di"
	"github.com/fd1az/remit-aggregator/internal/logger"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	Catalog() *catalog.Catalog
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config    *config.Config
	logger    logger.LoggerInterface
	catalog   *catalog.Catalog
	container di.Container
}

// New creates a new Monolith instance. cat is built by the caller
// (normally from the embedded reference table) so this package never
// depends on any bounded context's infrastructure.
func New(cfg *config.Config, log logger.LoggerInterface, cat *catalog.Catalog) (*app, error) {
	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("catalog", cat)

	return &app{
		config:    cfg,
		logger:    log,
		catalog:   cat,
		container: container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) Catalog() *catalog.Catalog {
	return a.catalog
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all resources.
func (a *app) Close() error {
	return nil
}
