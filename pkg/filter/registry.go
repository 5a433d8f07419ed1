package filter

import (
	"sync"

	"github.com/matst80/slask-table/pkg/types"
)

// FilterFn keeps the records that match value for the given column. Records
// are never modified, the returned slice is freshly allocated.
type FilterFn func(records []*types.Record, column *types.Column, value any) []*types.Record

type RegistryOptions struct {
	// StrictBounds makes a range with a missing bound match nothing instead
	// of treating that side as unbounded.
	StrictBounds bool
}

// Registry maps predicate names used by column descriptors to implementations.
type Registry struct {
	mu      sync.RWMutex
	opts    RegistryOptions
	filters map[string]FilterFn
}

func NewRegistry(opts RegistryOptions) *Registry {
	r := &Registry{
		opts:    opts,
		filters: make(map[string]FilterFn),
	}
	r.Register(types.FilterFuzzyText, FuzzyText)
	r.Register(types.FilterIncludes, Includes)
	r.Register(types.FilterBetween, Between(opts.StrictBounds))
	r.Register(types.FilterDateBetween, DateBetween(opts.StrictBounds))
	return r
}

func (r *Registry) Register(name string, fn FilterFn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[name] = fn
}

// Get returns the named predicate, unknown names fall back to fuzzy text.
func (r *Registry) Get(name string) FilterFn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.filters[name]; ok {
		return fn
	}
	return r.filters[types.FilterFuzzyText]
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.filters[name]
	return ok
}

func (r *Registry) StrictBounds() bool {
	return r.opts.StrictBounds
}
