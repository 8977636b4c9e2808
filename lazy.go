package sesskit

import (
	"context"
	"sync"
)

// Lazy defers Session construction — and therefore the store read — until
// the session is first needed. A request that never touches session state
// never costs a store round trip.
//
// The first Session call constructs the inner session synchronously and
// caches the result, including a construction error, for the rest of the
// request.
type Lazy struct {
	header string
	opts   []Option

	mu      sync.Mutex
	session *Session
	err     error
	done    bool
}

// NewLazy captures the inbound cookie header and construction options
// without touching the store.
func NewLazy(cookieHeader string, opts ...Option) *Lazy {
	return &Lazy{header: cookieHeader, opts: opts}
}

// Session returns the inner session, constructing it on first use.
func (l *Lazy) Session(ctx context.Context) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.done {
		l.session, l.err = New(ctx, l.header, l.opts...)
		l.done = true
	}
	return l.session, l.err
}

// Accessed reports whether the inner session has been constructed. The
// middleware uses it to skip the outbound cookie for untouched sessions.
func (l *Lazy) Accessed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// CookieToSend returns the pending outbound cookie of the inner session.
// ok is false when the session was never accessed, failed to construct, or
// has nothing pending.
func (l *Lazy) CookieToSend() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.done || l.session == nil {
		return "", false
	}
	return l.session.CookieToSend()
}
