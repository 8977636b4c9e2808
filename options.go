package sesskit

import (
	"time"

	"github.com/sesskit/sesskit/cookie"
	"github.com/sesskit/sesskit/store"
)

type sessionOptions struct {
	config   Config
	registry *Registry
	store    store.Store
}

// Option is a functional option for constructing a Session.
type Option func(*sessionOptions)

// WithConfig merges cfg over the defaults.
func WithConfig(cfg Config) Option {
	return func(o *sessionOptions) {
		o.config = o.config.Merge(cfg)
	}
}

// WithTimeout sets the idle TTL for the session and its store.
func WithTimeout(d time.Duration) Option {
	return func(o *sessionOptions) {
		o.config.Timeout = d
	}
}

// WithStoreType selects a registered store factory by name.
func WithStoreType(name string) Option {
	return func(o *sessionOptions) {
		o.config.StoreType = name
	}
}

// WithStore injects a store directly, bypassing the registry.
func WithStore(st store.Store) Option {
	return func(o *sessionOptions) {
		o.store = st
	}
}

// WithRegistry sets the registry consulted for the store type.
func WithRegistry(r *Registry) Option {
	return func(o *sessionOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithCookieConfig merges cfg over the default cookie configuration.
func WithCookieConfig(cfg cookie.Config) Option {
	return func(o *sessionOptions) {
		o.config.Cookie = o.config.Cookie.Merge(cfg)
	}
}
