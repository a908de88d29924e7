package kv

import (
	"context"
	"time"
)

// NullStore is a no-op store that never keeps anything.
// Useful when persistence should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return &NullStore{}
}

// Get always returns a miss.
func (s *NullStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

// Set does nothing.
func (s *NullStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

var _ Store = (*NullStore)(nil)
