// Package kv provides the persisted client state primitive: a string
// key/value store whose entries expire after a time-to-live.
//
// The editor persists small blobs (the active filter criteria) across
// sessions. Components depend only on the [Store] contract; the concrete
// backend is chosen by configuration:
//   - file: one JSON file per key under the state directory (default for the CLI)
//   - memory: process-local map, for tests and the --ephemeral flag
//   - redis: shared state for several workstations pointing at one backend
//   - mongo: document store with a TTL index
//   - null: stores nothing
//
// # Expiry
//
// Every backend treats an expired entry exactly like an absent one: Get
// reports ok=false and no error. A zero ttl means the entry never expires.
//
// # Usage
//
//	store, err := kv.NewFileStore(dir)
//	if err != nil {
//	    return err
//	}
//	_ = store.Set(ctx, "graphFilters", blob, 7*24*time.Hour)
//	blob, ok, err := store.Get(ctx, "graphFilters")
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kv: store closed")

// Store is the interface for persisted client state backends.
type Store interface {
	// Get returns the live value for key. Missing and expired entries
	// report ok=false with a nil error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key for ttl (0 = no expiry).
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clock returns the current time. Stores that compute expiry locally accept
// one so tests can move time forward.
type Clock func() time.Time

func expiresAt(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func expired(now, at time.Time) bool {
	return !at.IsZero() && now.After(at)
}
