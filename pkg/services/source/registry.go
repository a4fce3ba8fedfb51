package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Factory is a function type that opens a Source from its settings
type Factory func(ctx context.Context, settings Settings) (Source, error)

// Registry manages record source factories by kind
type Registry interface {
	// Register adds a new source factory
	Register(kind string, factory Factory) error
	// Create opens a source of the given kind
	Create(ctx context.Context, kind string, settings Settings) (Source, error)
	// ListKinds returns the registered kinds in alphabetical order
	ListKinds() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry pre-filled with the given factories
func NewRegistry(factories map[string]Factory) (Registry, error) {
	r := &registry{
		factories: make(map[string]Factory),
	}
	for kind, factory := range factories {
		if err := r.Register(kind, factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry knows the csv and duckdb sources.
func DefaultRegistry() Registry {
	r, _ := NewRegistry(map[string]Factory{
		KindCSV:    NewCSVSource,
		KindDuckDB: NewDuckDBSource,
	})
	return r
}

func (r *registry) Register(kind string, factory Factory) error {
	if kind == "" {
		return fmt.Errorf("source kind cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("source %q is already registered", kind)
	}

	r.factories[kind] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, kind string, settings Settings) (Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[kind]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source %q is not registered", kind)
	}

	return factory(ctx, settings)
}

func (r *registry) ListKinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := lo.Keys(r.factories)
	sort.Strings(kinds)
	return kinds
}
