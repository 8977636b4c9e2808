package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultMongoCollection = "sessions"

type mongoRecord struct {
	ID    string `bson:"_id"`
	CTime int64  `bson:"ctime"`
	ATime int64  `bson:"atime"`
	Vars  string `bson:"vars"`
}

// MongoStore persists sessions in a MongoDB collection with the same record
// shape as the relational backends. The vars blob stays JSON text so every
// backend stores structurally identical data.
type MongoStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	log     *slog.Logger
}

// MongoOption configures a MongoStore.
type MongoOption func(*MongoStore)

// WithMongoCollection overrides the "sessions" collection name.
func WithMongoCollection(name string) MongoOption {
	return func(s *MongoStore) {
		if name != "" {
			s.coll = s.coll.Database().Collection(name)
		}
	}
}

// WithMongoLogger sets the logger used for GC reporting.
func WithMongoLogger(log *slog.Logger) MongoOption {
	return func(s *MongoStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewMongoStore wraps an existing database handle. The caller keeps
// ownership of the client connection.
func NewMongoStore(db *mongo.Database, timeout time.Duration, opts ...MongoOption) *MongoStore {
	s := &MongoStore{
		coll:    db.Collection(defaultMongoCollection),
		timeout: timeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save persists vars under id. A single upsert with $setOnInsert keeps the
// creation time immutable while atime and vars are rewritten atomically.
func (s *MongoStore) Save(ctx context.Context, id string, vars Vars) error {
	if len(vars) == 0 {
		_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
		return err
	}

	encoded, err := json.Marshal(vars)
	if err != nil {
		return fmt.Errorf("encode session vars: %w", err)
	}

	now := time.Now().Unix()
	_, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$setOnInsert": bson.M{"ctime": now},
			"$set":         bson.M{"atime": now, "vars": string(encoded)},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

// Load returns the vars stored under id or ErrTimedOut. The expiry
// predicate is part of the filter.
func (s *MongoStore) Load(ctx context.Context, id string) (Vars, error) {
	cutoff := time.Now().Add(-s.timeout).Unix()

	var rec mongoRecord
	err := s.coll.FindOne(ctx, bson.M{
		"_id":   id,
		"atime": bson.M{"$gt": cutoff},
	}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTimedOut
	}
	if err != nil {
		return nil, err
	}

	var vars Vars
	if err := json.Unmarshal([]byte(rec.Vars), &vars); err != nil {
		return nil, fmt.Errorf("decode session vars: %w", err)
	}
	return vars, nil
}

// GC deletes all expired documents in one operation.
func (s *MongoStore) GC(ctx context.Context) error {
	cutoff := time.Now().Add(-s.timeout).Unix()

	res, err := s.coll.DeleteMany(ctx, bson.M{"atime": bson.M{"$lte": cutoff}})
	if err != nil {
		return err
	}
	if res.DeletedCount > 0 {
		s.log.Debug("session gc sweep", slog.Int64("removed", res.DeletedCount))
	}
	return nil
}
