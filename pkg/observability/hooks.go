// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about snapshot fetches, mutations, persisted client state and
// Backend Gateway calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGraphHooks(&myGraphHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Graph().OnFetchStart(ctx, criteria)
//	// ... fetch ...
//	observability.Graph().OnFetchComplete(ctx, nodes, links, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from the graph state store.
type GraphHooks interface {
	// OnFetchStart records the start of a snapshot fetch with the active filters.
	OnFetchStart(ctx context.Context, filters map[string]string)

	// OnFetchComplete records a finished fetch. Counts are zero on error.
	OnFetchComplete(ctx context.Context, nodes, links int, duration time.Duration, err error)

	// OnMutation records a finished mutation ("create_node", "create_link", "move_node").
	OnMutation(ctx context.Context, kind string, duration time.Duration, err error)
}

// =============================================================================
// State Hooks
// =============================================================================

// StateHooks receives events from the persisted client state store.
type StateHooks interface {
	// OnStateHit records a read that found a live value.
	OnStateHit(ctx context.Context, key string)

	// OnStateMiss records a read that found nothing (absent or expired).
	OnStateMiss(ctx context.Context, key string)

	// OnStateSet records a write.
	OnStateSet(ctx context.Context, key string, size int, ttl time.Duration)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnFetchStart(context.Context, map[string]string)                 {}
func (NoopGraphHooks) OnFetchComplete(context.Context, int, int, time.Duration, error) {}
func (NoopGraphHooks) OnMutation(context.Context, string, time.Duration, error)        {}

// NoopStateHooks is a no-op implementation of StateHooks.
type NoopStateHooks struct{}

func (NoopStateHooks) OnStateHit(context.Context, string)                     {}
func (NoopStateHooks) OnStateMiss(context.Context, string)                    {}
func (NoopStateHooks) OnStateSet(context.Context, string, int, time.Duration) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	graphHooks GraphHooks = NoopGraphHooks{}
	stateHooks StateHooks = NoopStateHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetGraphHooks registers custom graph hooks.
// This should be called once at application startup before any fetch.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphHooks = h
	}
}

// SetStateHooks registers custom state hooks.
func SetStateHooks(h StateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stateHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// State returns the registered state hooks.
func State() StateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stateHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	graphHooks = NoopGraphHooks{}
	stateHooks = NoopStateHooks{}
	httpHooks = NoopHTTPHooks{}
}
