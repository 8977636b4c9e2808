package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "sess:"

// redisRecord is the JSON envelope stored per session key. The key's native
// TTL is authoritative for expiry; ctime and atime are kept so the record
// carries the same metadata as the relational backends.
type redisRecord struct {
	CTime int64 `json:"ctime"`
	ATime int64 `json:"atime"`
	Vars  Vars  `json:"vars"`
}

// RedisStore persists sessions as JSON values with native TTLs. Every save
// rewrites the value and resets the TTL, which is exactly the idle-timeout
// refresh the contract requires. GC is a no-op: the server evicts expired
// keys on its own.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	timeout   time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisKeyPrefix overrides the "sess:" key prefix.
func WithRedisKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedisStore wraps an existing client. The caller keeps ownership of the
// client connection.
func NewRedisStore(client redis.UniversalClient, timeout time.Duration, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: defaultRedisKeyPrefix,
		timeout:   timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}

// Save persists vars under id, deleting the key when vars is empty. The
// creation time of an existing record is carried over; ids are unique per
// client, so the read-then-write is not guarded.
func (s *RedisStore) Save(ctx context.Context, id string, vars Vars) error {
	if len(vars) == 0 {
		return s.client.Del(ctx, s.key(id)).Err()
	}

	now := time.Now().Unix()
	rec := redisRecord{CTime: now, ATime: now, Vars: vars}

	if prev, err := s.client.Get(ctx, s.key(id)).Result(); err == nil {
		var existing redisRecord
		if err := json.Unmarshal([]byte(prev), &existing); err == nil && existing.CTime > 0 {
			rec.CTime = existing.CTime
		}
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	return s.client.Set(ctx, s.key(id), encoded, s.timeout).Err()
}

// Load returns the vars stored under id or ErrTimedOut.
func (s *RedisStore) Load(ctx context.Context, id string) (Vars, error) {
	encoded, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTimedOut
	}
	if err != nil {
		return nil, err
	}

	var rec redisRecord
	if err := json.Unmarshal([]byte(encoded), &rec); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return rec.Vars, nil
}

// GC is a no-op; key TTLs expire server-side.
func (s *RedisStore) GC(ctx context.Context) error {
	return nil
}
