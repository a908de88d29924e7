package kv

import (
	"context"
	"time"

	"github.com/matzehuels/graphdesk/pkg/observability"
)

// observedStore reports reads and writes to the registered state hooks.
type observedStore struct {
	Store
}

// Observe wraps s so that every Get and Set emits an observability event.
func Observe(s Store) Store {
	return observedStore{Store: s}
}

func (o observedStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := o.Store.Get(ctx, key)
	if err == nil {
		if ok {
			observability.State().OnStateHit(ctx, key)
		} else {
			observability.State().OnStateMiss(ctx, key)
		}
	}
	return v, ok, err
}

func (o observedStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	err := o.Store.Set(ctx, key, value, ttl)
	if err == nil {
		observability.State().OnStateSet(ctx, key, len(value), ttl)
	}
	return err
}
