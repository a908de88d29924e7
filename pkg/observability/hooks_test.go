package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGraphHooks{}
	g.OnFetchStart(ctx, map[string]string{"name_filter": "a"})
	g.OnFetchComplete(ctx, 3, 2, time.Second, nil)
	g.OnMutation(ctx, "create_node", time.Second, nil)

	s := NoopStateHooks{}
	s.OnStateHit(ctx, "graphFilters")
	s.OnStateMiss(ctx, "graphFilters")
	s.OnStateSet(ctx, "graphFilters", 64, time.Hour)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "localhost:8000", "/utils/export")
	h.OnResponse(ctx, "GET", "localhost:8000", "/utils/export", 200, time.Second)
	h.OnError(ctx, "GET", "localhost:8000", "/utils/export", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Graph().(NoopGraphHooks); !ok {
		t.Error("Graph() should return NoopGraphHooks by default")
	}
	if _, ok := State().(NoopStateHooks); !ok {
		t.Error("State() should return NoopStateHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customGraph := &testGraphHooks{}
	SetGraphHooks(customGraph)
	if Graph() != customGraph {
		t.Error("SetGraphHooks should set custom hooks")
	}

	customState := &testStateHooks{}
	SetStateHooks(customState)
	if State() != customState {
		t.Error("SetStateHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Graph().(NoopGraphHooks); !ok {
		t.Error("Reset() should restore NoopGraphHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGraphHooks{}
	SetGraphHooks(custom)
	SetGraphHooks(nil)

	if Graph() != custom {
		t.Error("SetGraphHooks(nil) should be ignored")
	}

	Reset()
}

type testGraphHooks struct{ NoopGraphHooks }
type testStateHooks struct{ NoopStateHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
