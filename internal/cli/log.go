// Package cli implements the graphdesk command-line interface.
//
// This package provides the interactive editor (ui), one-shot commands for
// scripting against the graph backend (export, node, link, filter, labels,
// types), a local HTTP viewer (serve) and an in-memory backend for demos
// (mock-backend). The CLI is built using cobra and logs via the
// charmbracelet/log library.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every backend request and state store access. The editor owns the
// terminal, so it logs to a file (--log-file) instead of stderr.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdesk/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Fetched 42 nodes (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks logs observability events at debug level.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks routes all observability hooks to logger.
func registerLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger.WithPrefix("hooks")}
	observability.SetHTTPHooks(h)
	observability.SetStateHooks(h)
	observability.SetGraphHooks(h)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h logHooks) OnStateHit(_ context.Context, key string) {
	h.logger.Debug("state hit", "key", key)
}

func (h logHooks) OnStateMiss(_ context.Context, key string) {
	h.logger.Debug("state miss", "key", key)
}

func (h logHooks) OnStateSet(_ context.Context, key string, size int, ttl time.Duration) {
	h.logger.Debug("state set", "key", key, "bytes", size, "ttl", ttl)
}

func (h logHooks) OnFetchStart(_ context.Context, filters map[string]string) {
	h.logger.Debug("fetch start", "filters", filters)
}

func (h logHooks) OnFetchComplete(_ context.Context, nodes, links int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("fetch complete", "nodes", nodes, "links", links, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnMutation(_ context.Context, kind string, d time.Duration, err error) {
	h.logger.Debug("mutation", "kind", kind, "duration", d.Round(time.Millisecond), "err", err)
}
