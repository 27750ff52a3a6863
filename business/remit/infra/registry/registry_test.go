package registry_test

import (
	"context"
	"testing"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/business/remit/infra/registry"
	"github.com/fd1az/remit-aggregator/internal/logger"
)

type stubAdapter struct{ id string }

func (s stubAdapter) ID() string                              { return s.id }
func (s stubAdapter) DisplayName() string                     { return s.id }
func (s stubAdapter) SupportedCorridors() []app.Corridor       { return nil }
func (s stubAdapter) Quote(context.Context, domain.QuoteRequest) domain.RawResult {
	return domain.RawResult{ProviderID: s.id, Success: true}
}

func newTestRegistry() *registry.Registry {
	r := registry.New(app.AdapterContext{Logger: logger.Nop()})
	for _, id := range []string{"wise", "remitly", "xoom"} {
		id := id
		r.Register(id, func(app.AdapterContext) (app.ProviderAdapter, error) {
			return stubAdapter{id: id}, nil
		})
	}
	return r
}

func TestRegistry_ListIDsPreservesOrder(t *testing.T) {
	r := newTestRegistry()
	got := r.ListIDs()
	want := []string{"wise", "remitly", "xoom"}
	for i, id := range want {
		if got[i] != id {
			t.Errorf("ListIDs()[%d] = %s, want %s", i, got[i], id)
		}
	}
}

func TestRegistry_Build(t *testing.T) {
	r := newTestRegistry()
	adapter, err := r.Build("wise")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adapter.ID() != "wise" {
		t.Errorf("expected wise, got %s", adapter.ID())
	}
}

func TestRegistry_BuildUnknown(t *testing.T) {
	r := newTestRegistry()
	if _, err := r.Build("does-not-exist"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestRegistry_ActiveIDsIncludeExcludeDisabled(t *testing.T) {
	r := newTestRegistry()
	r.SetEnabled("xoom", false)

	all := r.ActiveIDs(nil, nil)
	if len(all) != 2 {
		t.Fatalf("expected 2 active ids with xoom disabled, got %v", all)
	}

	withInclude := r.ActiveIDs([]string{"wise"}, nil)
	if len(withInclude) != 1 || withInclude[0] != "wise" {
		t.Errorf("expected only wise, got %v", withInclude)
	}

	withExclude := r.ActiveIDs(nil, []string{"wise"})
	if len(withExclude) != 1 || withExclude[0] != "remitly" {
		t.Errorf("expected only remitly, got %v", withExclude)
	}
}
