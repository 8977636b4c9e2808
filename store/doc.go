// Package store defines the persistence contract for session data and ships
// the backends that implement it.
//
// A Store keeps, per session id, the creation time, the last-access time and
// the session vars. Expiry is idle-based: a record whose last-access time is
// older than the store's timeout behaves exactly like a record that never
// existed — Load reports both as ErrTimedOut. Saving empty vars deletes the
// record rather than persisting an empty one.
//
// # Backends
//
//	store, err := store.NewSQLiteStore(timeout, store.SQLiteConfig{Path: "./sessions.sqlite"})
//	store := store.NewMemoryStore(timeout)
//	store, err := store.NewPostgresStore(ctx, timeout, store.PostgresConfig{DSN: dsn})
//	store := store.NewRedisStore(client, timeout)
//	store := store.NewMongoStore(db, timeout)
//
// The SQLite backend is the reference implementation: a single relational
// table (id, ctime, atime, vars) with opportunistic, probabilistic garbage
// collection on construction instead of a background scheduler. Every write
// runs inside one transaction so a concurrent reader never observes a
// half-written record.
//
// The Redis backend maps idle expiry onto native TTLs; its GC is a no-op
// because the server evicts expired keys on its own.
package store
