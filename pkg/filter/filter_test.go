package filter

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/kv"
)

type fetchedMsg struct{ crit graph.Criteria }

type recordingFetcher struct{ calls []graph.Criteria }

func (f *recordingFetcher) Fetch(crit graph.Criteria) tea.Cmd {
	f.calls = append(f.calls, crit)
	return func() tea.Msg { return fetchedMsg{crit} }
}

// run executes cmd and any batched commands it yields, returning all
// non-nil messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestApplyPersistsAndFetches(t *testing.T) {
	store := kv.NewMemoryStore(nil)
	fetcher := &recordingFetcher{}
	c := New(store, fetcher, nil)

	crit := graph.Criteria{Name: "ali", Label: "Person", Type: "KNOWS"}
	msgs := run(c.Apply(crit))

	if c.Criteria() != crit {
		t.Errorf("Criteria() = %+v, want %+v", c.Criteria(), crit)
	}
	if len(fetcher.calls) != 1 || fetcher.calls[0] != crit {
		t.Errorf("fetch calls = %+v", fetcher.calls)
	}
	if len(msgs) != 1 || msgs[0].(fetchedMsg).crit != crit {
		t.Errorf("messages = %+v", msgs)
	}

	raw, ok, err := store.Get(context.Background(), Key)
	if err != nil || !ok {
		t.Fatalf("persisted blob missing: ok=%v err=%v", ok, err)
	}
	want := `{"nodeNameFilter":"ali","nodeLabelFilter":"Person","edgeTypeFilter":"KNOWS"}`
	if raw != want {
		t.Errorf("blob = %s, want %s", raw, want)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	store := kv.NewMemoryStore(nil)
	crit := graph.Criteria{Name: "x", Type: "T"}
	run(New(store, nil, nil).Apply(crit))

	c := New(store, nil, nil)
	if got := c.Load(context.Background()); got != crit {
		t.Errorf("Load() = %+v, want %+v", got, crit)
	}
	if c.Criteria() != crit {
		t.Errorf("Criteria() after Load = %+v", c.Criteria())
	}
}

func TestLoadExpired(t *testing.T) {
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := kv.NewMemoryStore(clk.now)
	run(New(store, nil, nil).Apply(graph.Criteria{Name: "x"}))

	clk.t = clk.t.Add(TTL - time.Minute)
	if got := New(store, nil, nil).Load(context.Background()); got.Name != "x" {
		t.Errorf("Load() before expiry = %+v", got)
	}

	clk.t = clk.t.Add(2 * time.Minute)
	if got := New(store, nil, nil).Load(context.Background()); !got.IsEmpty() {
		t.Errorf("Load() after expiry = %+v, want empty", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want graph.Criteria
	}{
		{"not json", "{oops", graph.Criteria{}},
		{"array", `["a"]`, graph.Criteria{}},
		{"null", `null`, graph.Criteria{}},
		{"wrong types", `{"nodeNameFilter": 3, "edgeTypeFilter": "T"}`, graph.Criteria{Type: "T"}},
		{"extra fields", `{"nodeLabelFilter": "L", "other": true}`, graph.Criteria{Label: "L"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemoryStore(nil)
			_ = store.Set(context.Background(), Key, tt.raw, TTL)
			if got := New(store, nil, nil).Load(context.Background()); got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if got := New(kv.NewMemoryStore(nil), nil, nil).Load(context.Background()); !got.IsEmpty() {
		t.Errorf("Load() = %+v, want empty", got)
	}
}

func TestClear(t *testing.T) {
	store := kv.NewMemoryStore(nil)
	fetcher := &recordingFetcher{}
	c := New(store, fetcher, nil)
	run(c.Apply(graph.Criteria{Name: "x"}))
	run(c.Clear())

	if !c.Criteria().IsEmpty() {
		t.Errorf("Criteria() after Clear = %+v", c.Criteria())
	}
	if _, ok, _ := store.Get(context.Background(), Key); ok {
		t.Error("persisted blob survived Clear")
	}
	if len(fetcher.calls) != 2 || !fetcher.calls[1].IsEmpty() {
		t.Errorf("fetch calls = %+v", fetcher.calls)
	}
}

func TestApplyWithoutFetcher(t *testing.T) {
	store := kv.NewMemoryStore(nil)
	c := New(store, nil, nil)
	if msgs := run(c.Apply(graph.Criteria{Label: "L"})); len(msgs) != 0 {
		t.Errorf("messages = %+v", msgs)
	}
	if store.Len() != 1 {
		t.Errorf("store entries = %d, want 1", store.Len())
	}
}
