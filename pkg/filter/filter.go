// Package filter owns the active filter criteria and their persistence.
//
// Criteria are stored as a JSON blob under [Key] in a [kv.Store] and expire
// [TTL] after the last apply. Reading is defensive: an absent, malformed or
// expired blob yields empty criteria and is never reported to the user.
package filter

import (
	"context"
	"encoding/json"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/kv"
)

// Key is the persisted state key of the filter blob.
const Key = "graphFilters"

// TTL is how long applied criteria survive without being re-applied.
const TTL = 7 * 24 * time.Hour

// persistTimeout bounds a single store round trip issued from the UI.
const persistTimeout = 5 * time.Second

// Fetcher starts an export fetch for the given criteria.
// *graphstore.Store satisfies it.
type Fetcher interface {
	Fetch(crit graph.Criteria) tea.Cmd
}

// Controller holds the active criteria. Its methods are called from the
// event loop only and need no locking.
type Controller struct {
	store   kv.Store
	fetcher Fetcher
	logger  *log.Logger
	current graph.Criteria
}

// New creates a Controller persisting to store. fetcher may be nil, in which
// case Apply and Clear only persist.
func New(store kv.Store, fetcher Fetcher, logger *log.Logger) *Controller {
	if store == nil {
		store = kv.NewNullStore()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{store: store, fetcher: fetcher, logger: logger}
}

// Criteria returns the active criteria.
func (c *Controller) Criteria() graph.Criteria { return c.current }

// Load reads the persisted criteria and makes them active. It is called once
// at startup.
func (c *Controller) Load(ctx context.Context) graph.Criteria {
	raw, ok, err := c.store.Get(ctx, Key)
	switch {
	case err != nil:
		c.logger.Warn("read persisted filters", "err", err)
		c.current = graph.Criteria{}
	case !ok:
		c.current = graph.Criteria{}
	default:
		crit, valid := Decode(raw)
		if !valid {
			c.logger.Debug("ignoring malformed persisted filters")
		}
		c.current = crit
	}
	return c.current
}

// Save persists crit without changing the active criteria or fetching.
func (c *Controller) Save(ctx context.Context, crit graph.Criteria) error {
	data, err := json.Marshal(crit)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, Key, string(data), TTL)
}

// Remove deletes the persisted criteria.
func (c *Controller) Remove(ctx context.Context) error {
	return c.store.Delete(ctx, Key)
}

// Apply makes crit active, persists it with a fresh TTL and triggers a
// fetch. Persistence failures are logged; the fetch runs regardless.
func (c *Controller) Apply(crit graph.Criteria) tea.Cmd {
	c.current = crit
	persist := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := c.Save(ctx, crit); err != nil {
			c.logger.Warn("persist filters", "err", err)
		}
		return nil
	}
	return tea.Batch(persist, c.fetch(crit))
}

// Clear drops the active and persisted criteria and re-fetches unfiltered.
func (c *Controller) Clear() tea.Cmd {
	c.current = graph.Criteria{}
	remove := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := c.Remove(ctx); err != nil {
			c.logger.Warn("clear persisted filters", "err", err)
		}
		return nil
	}
	return tea.Batch(remove, c.fetch(graph.Criteria{}))
}

func (c *Controller) fetch(crit graph.Criteria) tea.Cmd {
	if c.fetcher == nil {
		return nil
	}
	return c.fetcher.Fetch(crit)
}

// Decode parses a persisted blob. Non-string fields are ignored; a blob
// that is not a JSON object yields empty criteria and ok=false.
func Decode(raw string) (crit graph.Criteria, ok bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return graph.Criteria{}, false
	}
	str := func(k string) string {
		s, _ := fields[k].(string)
		return s
	}
	return graph.Criteria{
		Name:  str("nodeNameFilter"),
		Label: str("nodeLabelFilter"),
		Type:  str("edgeTypeFilter"),
	}, true
}
