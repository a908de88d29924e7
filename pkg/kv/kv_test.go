package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/graphdesk/pkg/observability"
)

// fakeClock is a manually advanced clock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, s Store, clock *fakeClock) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want miss", ok, err)
	}

	if err := s.Set(ctx, "k", `{"a":1}`, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != `{"a":1}` {
		t.Fatalf("Get(k) = %q, %v, %v", v, ok, err)
	}

	// Overwrite refreshes both value and ttl.
	clock.Advance(50 * time.Minute)
	if err := s.Set(ctx, "k", "second", time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	clock.Advance(50 * time.Minute)
	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "second" {
		t.Errorf("Get after refresh = %q, %v; want second", v, ok)
	}

	clock.Advance(11 * time.Minute)
	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get after expiry = ok %v, err %v; want miss", ok, err)
	}

	if err := s.Set(ctx, "forever", "x", 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	clock.Advance(24 * 365 * time.Hour)
	if _, ok, _ := s.Get(ctx, "forever"); !ok {
		t.Error("zero ttl entry should never expire")
	}

	if err := s.Delete(ctx, "forever"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "forever"); ok {
		t.Error("Get after Delete should miss")
	}
	if err := s.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(clock.Now)
	storeContract(t, s, clock)

	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if _, _, err := s.Get(context.Background(), "k"); err != ErrClosed {
		t.Errorf("Get after Close error = %v, want ErrClosed", err)
	}
}

func TestFileStore(t *testing.T) {
	clock := newFakeClock()
	s, err := NewFileStore(t.TempDir(), WithFileClock(clock.Now))
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	defer s.Close()
	storeContract(t, s, clock)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, _ := NewFileStore(dir)
	if err := first.Set(ctx, "graphFilters", "blob", time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	second, _ := NewFileStore(dir)
	v, ok, err := second.Get(ctx, "graphFilters")
	if err != nil || !ok || v != "blob" {
		t.Errorf("reopened Get = %q, %v, %v", v, ok, err)
	}
}

func TestFileStoreCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	path := s.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Errorf("corrupt Get = ok %v, err %v; want miss", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "k", "v", time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("NullStore should not store data")
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestScopedStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore(nil)
	scoped := NewScopedStore(inner, "profile:a:")

	if err := scoped.Set(ctx, "graphFilters", "v", 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := inner.Get(ctx, "profile:a:graphFilters"); !ok {
		t.Error("inner store should hold prefixed key")
	}
	if _, ok, _ := inner.Get(ctx, "graphFilters"); ok {
		t.Error("inner store should not hold bare key")
	}
	if v, ok, _ := scoped.Get(ctx, "graphFilters"); !ok || v != "v" {
		t.Errorf("scoped Get = %q, %v", v, ok)
	}

	if NewScopedStore(inner, "") != Store(inner) {
		t.Error("empty prefix should return the inner store")
	}
}

type recordingStateHooks struct {
	observability.NoopStateHooks
	hits, misses, sets int
}

func (r *recordingStateHooks) OnStateHit(context.Context, string)  { r.hits++ }
func (r *recordingStateHooks) OnStateMiss(context.Context, string) { r.misses++ }
func (r *recordingStateHooks) OnStateSet(context.Context, string, int, time.Duration) {
	r.sets++
}

func TestObserve(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingStateHooks{}
	observability.SetStateHooks(hooks)

	ctx := context.Background()
	s := Observe(NewMemoryStore(nil))
	_, _, _ = s.Get(ctx, "k")
	_ = s.Set(ctx, "k", "v", time.Minute)
	_, _, _ = s.Get(ctx, "k")

	if hooks.misses != 1 || hooks.sets != 1 || hooks.hits != 1 {
		t.Errorf("hooks = %+v, want 1 miss, 1 set, 1 hit", hooks)
	}
}
