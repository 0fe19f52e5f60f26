package clone

import (
	"reflect"
	"sync"
)

// Cloner clones nested values on behalf of an Implementor, sharing the
// identity tracking of the call in progress.
type Cloner interface {
	Clone(v reflect.Value) (reflect.Value, error)
}

// Implementor copies values of a container type in two phases, so that the
// new container can be referenced by its own contents.
type Implementor interface {
	// Allocate returns an empty value of the source type.
	Allocate(src reflect.Value) (reflect.Value, error)
	// Populate fills dst, as returned by Allocate, from src.
	Populate(src, dst reflect.Value, c Cloner) error
}

// Predicate selects the types an Implementor handles.
type Predicate func(t reflect.Type) bool

type predicated struct {
	match Predicate
	impl  Implementor
}

// Registry maps types to implementors. Exact registrations take precedence
// over predicates, which are tried in registration order.
type Registry struct {
	mu    sync.RWMutex
	exact map[reflect.Type]Implementor
	preds []predicated
}

// NewRegistry returns a registry holding the built-in implementors.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	installBuiltins(r)

	return r
}

// NewEmptyRegistry returns a registry without implementors. Slices and maps
// are still copied by the driver's fallback path.
func NewEmptyRegistry() *Registry {
	return &Registry{exact: make(map[reflect.Type]Implementor)}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// Register binds impl to exactly t, replacing an earlier binding.
func (r *Registry) Register(t reflect.Type, impl Implementor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exact[t] = impl
}

// RegisterFunc binds impl to every type accepted by match.
func (r *Registry) RegisterFunc(match Predicate, impl Implementor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.preds = append(r.preds, predicated{match: match, impl: impl})
}

// Lookup returns the implementor responsible for t.
func (r *Registry) Lookup(t reflect.Type) (Implementor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if impl, ok := r.exact[t]; ok {
		return impl, true
	}
	for _, p := range r.preds {
		if p.match(t) {
			return p.impl, true
		}
	}

	return nil, false
}
