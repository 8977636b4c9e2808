package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	_ "modernc.org/sqlite" // CGO-free driver, registered as "sqlite"
)

// SQLiteConfig holds SQLite store configuration.
type SQLiteConfig struct {
	// Path is the database file location. ":memory:" gives a throwaway
	// in-process database.
	Path string `env:"SESSION_SQLITE_PATH" envDefault:"./sessions.sqlite"`

	// GCAuto enables the opportunistic sweep on construction.
	GCAuto bool `env:"SESSION_SQLITE_GC_AUTO" envDefault:"true"`

	// GCAutoProb is the probability that a single construction triggers the
	// sweep. The sweep amortizes garbage collection over store creations
	// instead of requiring a background scheduler.
	GCAutoProb float64 `env:"SESSION_SQLITE_GC_AUTO_PROB" envDefault:"0.001"`
}

// DefaultSQLiteConfig returns the default SQLite store configuration.
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path:       "./sessions.sqlite",
		GCAuto:     true,
		GCAutoProb: 0.001,
	}
}

// SQLiteStore is the reference persistent backend: one relational table
// keyed by session id with creation and last-access timestamps.
type SQLiteStore struct {
	db      *sql.DB
	ownsDB  bool
	timeout time.Duration
	log     *slog.Logger
}

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithSQLiteLogger sets the logger used for GC reporting.
func WithSQLiteLogger(log *slog.Logger) SQLiteOption {
	return func(s *SQLiteStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSQLiteStore opens (or creates) the database at cfg.Path, ensures the
// sessions table exists and, governed by cfg.GCAuto and cfg.GCAutoProb,
// opportunistically sweeps expired records.
func NewSQLiteStore(timeout time.Duration, cfg SQLiteConfig, opts ...SQLiteOption) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultSQLiteConfig().Path
	}
	if cfg.GCAutoProb == 0 {
		cfg.GCAutoProb = DefaultSQLiteConfig().GCAutoProb
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		ownsDB:  true,
		timeout: timeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.createTableIfNotExists(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.GCAuto && rand.Float64() < cfg.GCAutoProb {
		if err := s.GC(context.Background()); err != nil {
			s.log.Warn("session gc sweep failed", slog.Any("error", err))
		}
	}

	return s, nil
}

// NewSQLiteStoreWithDB wraps an existing database handle. The caller keeps
// ownership of the handle; Close does not close it.
func NewSQLiteStoreWithDB(db *sql.DB, timeout time.Duration, opts ...SQLiteOption) (*SQLiteStore, error) {
	s := &SQLiteStore{
		db:      db,
		timeout: timeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.createTableIfNotExists(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTableIfNotExists(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			ctime INTEGER NOT NULL,
			atime INTEGER NOT NULL,
			vars TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

// Save persists vars under id inside one transaction. Empty vars delete the
// record. The insert-if-absent / update split keeps ctime immutable across
// updates while atime advances on every save.
func (s *SQLiteStore) Save(ctx context.Context, id string, vars Vars) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if len(vars) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
			return err
		}
		return tx.Commit()
	}

	encoded, err := json.Marshal(vars)
	if err != nil {
		return fmt.Errorf("encode session vars: %w", err)
	}

	now := time.Now().Unix()
	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO sessions (id, ctime, atime, vars)
		VALUES (?, ?, ?, '')
	`, id, now, now); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE sessions SET atime = ?, vars = ? WHERE id = ?
	`, now, string(encoded), id); err != nil {
		return err
	}

	return tx.Commit()
}

// Load returns the vars stored under id. The expiry predicate lives in the
// query, so an expired row and a missing row are indistinguishable.
func (s *SQLiteStore) Load(ctx context.Context, id string) (Vars, error) {
	cutoff := time.Now().Add(-s.timeout).Unix()

	var encoded string
	err := s.db.QueryRowContext(ctx, `
		SELECT vars FROM sessions WHERE id = ? AND atime > ?
	`, id, cutoff).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimedOut
	}
	if err != nil {
		return nil, err
	}

	var vars Vars
	if err := json.Unmarshal([]byte(encoded), &vars); err != nil {
		return nil, fmt.Errorf("decode session vars: %w", err)
	}
	return vars, nil
}

// GC deletes all expired records in a single statement.
func (s *SQLiteStore) GC(ctx context.Context) error {
	cutoff := time.Now().Add(-s.timeout).Unix()

	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE atime <= ?`, cutoff)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.log.Debug("session gc sweep", slog.Int64("removed", n))
	}
	return nil
}

// Close releases the database handle if the store opened it itself.
func (s *SQLiteStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
