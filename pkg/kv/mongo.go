package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds connection settings for [NewMongoStore].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// Default database and collection names.
const (
	DefaultMongoDatabase   = "graphdesk"
	DefaultMongoCollection = "client_state"
)

// MongoStore keeps entries as documents. A TTL index on expires_at lets
// MongoDB purge expired documents; since the TTL monitor only runs about once
// a minute, Get also checks expiry itself.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    Clock
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and ensures the TTL index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		now:    time.Now,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	})
	if err != nil {
		return fmt.Errorf("create ttl index: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, key string) (string, bool, error) {
	var e mongoEntry
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo find %s: %w", key, err)
	}
	if e.ExpiresAt != nil && expired(s.now(), *e.ExpiresAt) {
		return "", false, nil
	}
	return e.Value, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	now := s.now()
	e := mongoEntry{Key: key, Value: value, UpdatedAt: now}
	if at := expiresAt(now, ttl); !at.IsZero() {
		e.ExpiresAt = &at
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, e, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert %s: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
