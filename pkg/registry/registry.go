package registry

import (
	"context"
	"sync"

	"github.com/aretw0/bramble/pkg/domain"
	"github.com/aretw0/bramble/pkg/ports"
)

// Registry manages the host functions available to the engine.
// It implements ports.FunctionDispatcher and is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]ports.Function
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		funcs: make(map[string]ports.Function),
	}
}

// Register adds a function to the registry.
// If a function with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn ports.Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Names returns the registered function names, unordered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}

// Dispatch looks up a function by name and invokes it.
// An unregistered name yields a ReferenceError (RefUnknownFunction).
func (r *Registry) Dispatch(ctx context.Context, name string, view ports.StateView) ([]domain.Value, error) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &domain.ReferenceError{Code: domain.RefUnknownFunction, Name: name}
	}

	return fn(ctx, view)
}
