package sesskit

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sesskit/sesskit/store"
)

// StoreFactory builds a store with the given idle timeout. Backend-specific
// configuration is bound into the factory closure at registration time.
type StoreFactory func(timeout time.Duration) (store.Store, error)

// Registry maps lowercase store type names to factories. It is safe for
// concurrent use, though registration normally happens once at startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]StoreFactory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]StoreFactory)}
}

// Register adds a factory under name. Names are case-insensitive; a later
// registration under the same name replaces the earlier one.
func (r *Registry) Register(name string, factory StoreFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(name)] = factory
}

// Open builds a store of the named type or fails with ErrUnknownStore.
func (r *Registry) Open(name string, timeout time.Duration) (store.Store, error) {
	r.mu.RLock()
	factory, ok := r.factories[strings.ToLower(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, name)
	}
	return factory(timeout)
}

// defaultRegistry carries the backends that need no external service:
// the SQLite reference store and the in-memory store.
var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register("sqlite", func(timeout time.Duration) (store.Store, error) {
		return store.NewSQLiteStore(timeout, store.DefaultSQLiteConfig())
	})
	r.Register("memory", func(timeout time.Duration) (store.Store, error) {
		return store.NewMemoryStore(timeout), nil
	})
	return r
}()

// DefaultRegistry returns the registry consulted when no explicit one is
// supplied. Custom backends registered here become available process-wide.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
