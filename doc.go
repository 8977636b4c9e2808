// Package sesskit manages server-side session state for stateless
// request/response cycles. It issues an opaque session identifier to the
// client via a cookie, persists arbitrary key-value session data under that
// identifier in a pluggable backing store, and reclaims expired sessions
// with TTL-based garbage collection.
//
// # Architecture
//
// A Session orchestrates identifier lifecycle, store lookup and cookie
// attribute mutation. It owns one cookie model (package cookie) and holds
// one store (package store); a Registry maps store type names to factories.
//
//	inbound Cookie header
//	        │
//	        ▼
//	┌───────────────┐   validate id    ┌─────────────┐
//	│    Session    │ ───────────────► │    Store    │
//	│  (lifecycle)  │   load / save    │ (sqlite, …) │
//	└───────────────┘                  └─────────────┘
//	        │
//	        ▼
//	pending Set-Cookie fragment
//
// # Usage
//
//	sess, err := sesskit.New(ctx, r.Header.Get("Cookie"))
//	if err != nil {
//	    // unknown store type or store I/O failure
//	}
//	sess.Set("user", "alice")
//	if err := sess.Save(ctx); err != nil { ... }
//	if c, ok := sess.CookieToSend(); ok {
//	    w.Header().Add("Set-Cookie", c)
//	}
//
// A session whose inbound id is malformed or whose record has timed out is
// transparently restarted: the caller gets a fresh session and the response
// carries an expired cookie so the client drops the stale id. Rotating an
// id explicitly works the same way:
//
//	_ = sess.Clear(ctx) // response: old id, expired
//	_ = sess.Save(ctx)  // response: new id, no expiry
//
// # Lazy construction and middleware
//
// Lazy defers the store read until the session is first used; Middleware
// wires a Lazy into the request context and copies the pending cookie onto
// the response only if the handler accessed the session:
//
//	handler := sesskit.Middleware()(mux)
//
//	func profile(w http.ResponseWriter, r *http.Request) {
//	    sess, err := sesskit.MustFromContext(r.Context()).Session(r.Context())
//	    ...
//	}
//
// # Stores
//
// The default registry carries the SQLite reference backend ("sqlite") and
// an in-memory one ("memory"). Postgres, Redis and MongoDB backends live in
// package store and are registered explicitly:
//
//	reg := sesskit.DefaultRegistry()
//	reg.Register("redis", func(timeout time.Duration) (store.Store, error) {
//	    return store.NewRedisStore(client, timeout), nil
//	})
//
// # Errors
//
//   - ErrUnknownStore — configured store type has no factory; propagates
//   - ErrInvalidID — id format check failed; converted to a fresh session
//     inside New, propagates from ValidateID itself
//   - ErrKeyNotFound — mapping semantics for Get/Delete of absent keys
//   - store.ErrTimedOut — record absent or expired; converted to a fresh
//     session inside New, propagates from direct store use
package sesskit
