// Package di provides a minimal, explicit service container for the
// composition root. It intentionally avoids reflection-based auto-wiring:
// every dependency is registered and resolved through a string token,
// keeping the wiring graph readable from module.go files.
package di

import "fmt"

// ServiceRegistry is the read side of the container, handed to factories
// and to modules that only need to resolve, never register.
type ServiceRegistry interface {
	Get(token string) any
}

// Container is the full read/write side, owned by the composition root.
type Container interface {
	ServiceRegistry
	// Register binds a pre-built instance to a token.
	Register(token string, instance any)
}

type entry struct {
	built   bool
	value   any
	factory func(ServiceRegistry) any
}

type container struct {
	entries map[string]*entry
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{entries: make(map[string]*entry)}
}

func (c *container) Register(token string, instance any) {
	c.entries[token] = &entry{built: true, value: instance}
}

func (c *container) registerFactory(token string, factory func(ServiceRegistry) any) {
	c.entries[token] = &entry{factory: factory}
}

// Get resolves a token, building it from its factory on first use and
// memoizing the result (singleton scope). Panics on an unknown token --
// this is composition-root wiring, not runtime user input.
func (c *container) Get(token string) any {
	e, ok := c.entries[token]
	if !ok {
		panic(fmt.Sprintf("di: token %q not registered", token))
	}
	if !e.built {
		if e.factory == nil {
			panic(fmt.Sprintf("di: token %q has neither value nor factory", token))
		}
		e.value = e.factory(c)
		e.built = true
	}
	return e.value
}

// RegisterToken registers a typed factory under token. The factory runs at
// most once, lazily, the first time anyone resolves the token.
func RegisterToken[T any](c Container, token string, factory func(sr ServiceRegistry) T) {
	cc, ok := c.(*container)
	if !ok {
		panic("di: RegisterToken requires the container returned by NewContainer")
	}
	cc.registerFactory(token, func(sr ServiceRegistry) any { return factory(sr) })
}

// Resolve fetches and type-asserts the value registered under token.
func Resolve[T any](sr ServiceRegistry, token string) T {
	v := sr.Get(token)
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("di: token %q does not hold a %T", token, t))
	}
	return t
}
