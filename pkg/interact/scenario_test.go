package interact_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/gateway"
	"github.com/matzehuels/graphdesk/pkg/gateway/fakebackend"
	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/graphstore"
	"github.com/matzehuels/graphdesk/pkg/interact"
)

// TestSourceOnlySubmitRejected fetches a single node, picks it as source
// through the context menu and submits without a target. The submit must
// fail validation and no relation request may reach the backend.
func TestSourceOnlySubmitRejected(t *testing.T) {
	backend := fakebackend.New()
	backend.Seed(graph.Export{Nodes: []graph.NodeRecord{{ID: "a", Properties: map[string]any{"name": "A"}}}})

	var mutations atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			mutations.Add(1)
		}
		backend.Handler().ServeHTTP(w, r)
	}))
	defer server.Close()

	client, err := gateway.NewClient(server.URL, gateway.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}
	store := graphstore.New(client, nil)
	apply(t, store, store.Fetch(graph.Criteria{}))

	node, ok := store.Snapshot().Node("a")
	if !ok {
		t.Fatal("node a not fetched")
	}

	st := interact.State{}.RightClick(*node, 100, 100).SetSource()
	if st.Pending.Source.ID != "a" || st.Menu != nil {
		t.Fatalf("state after Set as source = %+v", st)
	}

	_, err = st.SubmitEdge()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("SubmitEdge() error = %v, want validation error", err)
	}
	if _, err := store.CreateLink(st.Pending.Source.ID, st.Pending.Target.ID, st.Pending.Type, nil); err == nil {
		t.Error("store accepted a link without target")
	}
	if n := mutations.Load(); n != 0 {
		t.Errorf("mutating requests = %d, want 0", n)
	}
	if st.Pending.Source.ID != "a" {
		t.Error("failed submit cleared the pending source")
	}
}

// TestComposeEdge runs the full right-click flow and confirms the relation
// reaches the backend and the pending edge is cleared afterwards.
func TestComposeEdge(t *testing.T) {
	backend := fakebackend.New()
	backend.Seed(fakebackend.Sample())
	server := httptest.NewServer(backend.Handler())
	defer server.Close()

	client, err := gateway.NewClient(server.URL, gateway.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}
	store := graphstore.New(client, nil)
	apply(t, store, store.Fetch(graph.Criteria{}))
	before := len(store.Snapshot().Links)

	acme, _ := store.Snapshot().Node("acme")
	graphs, _ := store.Snapshot().Node("graphs")
	st := interact.State{}.
		RightClick(*acme, 0, 0).SetSource().
		RightClick(*graphs, 0, 0).SetTarget().
		SetEdgeType("STUDIES")

	req, err := st.SubmitEdge()
	if err != nil {
		t.Fatal(err)
	}
	cmd, err := store.CreateLink(req.SourceID, req.TargetID, req.Type, nil)
	if err != nil {
		t.Fatal(err)
	}
	msg := cmd()
	if created, ok := msg.(graphstore.LinkCreatedMsg); ok && created.Err == nil {
		st = st.EdgeSubmitted()
	}
	_, next := store.Update(msg)
	apply(t, store, next)

	if st.Pending != (interact.PendingEdge{}) {
		t.Errorf("pending edge not cleared: %+v", st.Pending)
	}
	if got := len(store.Snapshot().Links); got != before+1 {
		t.Errorf("links = %d, want %d", got, before+1)
	}
}

func apply(t *testing.T, store *graphstore.Store, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		handled, next := store.Update(cmd())
		if !handled {
			t.Fatal("unexpected message")
		}
		cmd = next
	}
}
