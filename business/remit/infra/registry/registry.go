// Package registry holds the process-start registration of provider
// adapter constructors and their enable/disable state.
package registry

import (
	"fmt"
	"sync"

	"github.com/fd1az/remit-aggregator/business/remit/app"
)

// Registry is a thread-safe registry of adapter constructors, read-mostly
// after process start.
type Registry struct {
	mu           sync.RWMutex
	ids          []string // registration order, preserved
	constructors map[string]app.AdapterConstructor
	disabled     map[string]bool
	ctx          app.AdapterContext
}

// New builds an empty Registry bound to ctx, the shared dependencies
// every adapter constructor receives.
func New(ctx app.AdapterContext) *Registry {
	return &Registry{
		constructors: make(map[string]app.AdapterConstructor),
		disabled:     make(map[string]bool),
		ctx:          ctx,
	}
}

// Register adds a constructor under id. Panics on duplicate id, since
// registration is process-start wiring.
func (r *Registry) Register(id string, constructor app.AdapterConstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[id]; exists {
		panic(fmt.Sprintf("registry: %s already registered", id))
	}
	r.ids = append(r.ids, id)
	r.constructors[id] = constructor
}

// SetEnabled toggles whether id participates in ActiveIDs.
func (r *Registry) SetEnabled(id string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled[id] = !enabled
}

// ListIDs returns every registered id, in registration order.
func (r *Registry) ListIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Build constructs a fresh adapter instance for id.
func (r *Registry) Build(id string) (app.ProviderAdapter, error) {
	r.mu.RLock()
	constructor, ok := r.constructors[id]
	ctx := r.ctx
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown provider %q", id)
	}
	return constructor(ctx)
}

// ActiveIDs returns the ids that should be dispatched to: start from all
// ids, intersect with include if non-empty, subtract exclude, subtract
// disabled. Registration order is preserved.
func (r *Registry) ActiveIDs(include, exclude []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	includeSet := toSet(include)
	excludeSet := toSet(exclude)

	out := make([]string, 0, len(r.ids))
	for _, id := range r.ids {
		if len(includeSet) > 0 && !includeSet[id] {
			continue
		}
		if excludeSet[id] {
			continue
		}
		if r.disabled[id] {
			continue
		}
		out = append(out, id)
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
