package sesskit

import "context"

type lazyContextKey struct{}

// WithLazy adds a lazy session handle to the context.
func WithLazy(ctx context.Context, l *Lazy) context.Context {
	return context.WithValue(ctx, lazyContextKey{}, l)
}

// FromContext retrieves the lazy session handle from the context.
func FromContext(ctx context.Context) (*Lazy, bool) {
	l, ok := ctx.Value(lazyContextKey{}).(*Lazy)
	return l, ok
}

// MustFromContext retrieves the lazy session handle or panics. Use it in
// handlers that always run behind the middleware.
func MustFromContext(ctx context.Context) *Lazy {
	l, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return l
}
