package kv

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore implements a file-based store for CLI usage.
// Entries are stored as JSON files with their expiration time.
type FileStore struct {
	mu  sync.RWMutex
	dir string
	now Clock
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithFileClock overrides the clock used for expiry checks.
func WithFileClock(c Clock) FileOption {
	return func(s *FileStore) { s.now = c }
}

// NewFileStore creates a file-based store in dir.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	s := &FileStore{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// fileEntry wraps a stored value with its expiration.
type fileEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the store.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.path(key)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read state file: %w", err)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Invalid entry - treat as miss
		_ = os.Remove(path)
		return "", false, nil
	}

	if expired(s.now(), entry.ExpiresAt) {
		_ = os.Remove(path)
		return "", false, nil
	}
	return entry.Value, true, nil
}

// Set stores a value.
func (s *FileStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(fileEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: expiresAt(s.now(), ttl),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state entry: %w", err)
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	// Write then rename so a crash never leaves a half-written entry.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return os.Rename(tmp, path)
}

// Delete removes a value.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// Dir returns the base directory of the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// path converts a key to a file path.
// Uses a hash-based directory structure so arbitrary keys are safe file names.
func (s *FileStore) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	hash := hex.EncodeToString(sum[:])
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var _ Store = (*FileStore)(nil)
