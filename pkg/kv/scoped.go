package kv

import (
	"context"
	"time"
)

// ScopedStore wraps a Store with a key prefix.
// Shared backends (redis, mongo) hold state for several installations; the
// prefix keeps each installation's keys apart.
//
// Example usage:
//
//	store := kv.NewScopedStore(redisStore, "graphdesk:alice:")
type ScopedStore struct {
	inner  Store
	prefix string
}

// NewScopedStore creates a store that prepends prefix to every key.
func NewScopedStore(inner Store, prefix string) Store {
	if prefix == "" {
		return inner
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

func (s *ScopedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *ScopedStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, value, ttl)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *ScopedStore) Close() error {
	return s.inner.Close()
}
