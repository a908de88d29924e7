// Package fakebackend is an in-memory implementation of the Backend Gateway
// HTTP contract. It backs the mock-backend command and the gateway tests.
//
// Filter semantics follow the reference backend: the name filter is a
// case-insensitive substring match on the "name" property, the label and
// type filters are exact matches. Relations are filtered by type only, so an
// export may contain relations whose endpoints were filtered out.
package fakebackend

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// Backend holds a graph in memory and serves it over HTTP.
type Backend struct {
	mu        sync.RWMutex
	nodes     []graph.NodeRecord
	relations []graph.RelationRecord
	logger    *log.Logger
	newID     func() string
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger logs each request to logger.
func WithLogger(logger *log.Logger) Option {
	return func(b *Backend) { b.logger = logger }
}

// WithIDs replaces the id generator, for deterministic tests.
func WithIDs(next func() string) Option {
	return func(b *Backend) { b.newID = next }
}

// New creates an empty Backend.
func New(opts ...Option) *Backend {
	b := &Backend{newID: uuid.NewString}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Seed replaces the stored graph.
func (b *Backend) Seed(exp graph.Export) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nodes = slices.Clone(exp.Nodes)
	b.relations = slices.Clone(exp.Relations)
}

// Export returns a copy of the full stored graph.
func (b *Backend) Export() graph.Export {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return graph.Export{Nodes: slices.Clone(b.nodes), Relations: slices.Clone(b.relations)}
}

// Handler returns the HTTP routes of the gateway contract.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if b.logger != nil {
		r.Use(b.logRequests)
	}
	r.Get("/utils/export", b.handleExport)
	r.Get("/labels", b.handleLabels)
	r.Get("/relationship_types", b.handleTypes)
	r.Post("/nodes", b.handleCreateNode)
	r.Put("/nodes/{id}", b.handleUpdateNode)
	r.Post("/relations", b.handleCreateRelation)
	return r
}

func (b *Backend) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		b.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", r.Header.Get("X-Request-ID"))
	})
}

// =============================================================================
// Queries
// =============================================================================

func (b *Backend) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit := graph.Criteria{
		Name:  q.Get("name_filter"),
		Label: q.Get("label_filter"),
		Type:  q.Get("type_filter"),
	}.Trimmed()

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := graph.Export{Nodes: []graph.NodeRecord{}, Relations: []graph.RelationRecord{}}
	seen := make(map[string]bool)
	for _, n := range b.nodes {
		if seen[n.ID] || !matchNode(n, crit) {
			continue
		}
		seen[n.ID] = true
		out.Nodes = append(out.Nodes, n)
	}
	for _, rel := range b.relations {
		if crit.Type != "" && rel.Type != crit.Type {
			continue
		}
		out.Relations = append(out.Relations, rel)
	}
	writeJSON(w, http.StatusOK, out)
}

func matchNode(n graph.NodeRecord, crit graph.Criteria) bool {
	if crit.Name != "" {
		name, _ := n.Properties[graph.PropName].(string)
		if !strings.Contains(strings.ToLower(name), strings.ToLower(crit.Name)) {
			return false
		}
	}
	if crit.Label != "" && !slices.Contains(n.Labels, crit.Label) {
		return false
	}
	return true
}

func (b *Backend) handleLabels(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var labels []string
	for _, n := range b.nodes {
		labels = append(labels, n.Labels...)
	}
	writeJSON(w, http.StatusOK, uniqueSorted(labels))
}

func (b *Backend) handleTypes(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var types []string
	for _, rel := range b.relations {
		types = append(types, rel.Type)
	}
	writeJSON(w, http.StatusOK, uniqueSorted(types))
}

// =============================================================================
// Mutations
// =============================================================================

func (b *Backend) handleCreateNode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Labels     []string       `json:"labels"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body: "+err.Error())
		return
	}
	if req.Properties == nil {
		req.Properties = map[string]any{}
	}
	rec := graph.NodeRecord{
		ID:         b.newID(),
		Labels:     graph.NormalizeLabels(req.Labels),
		Properties: req.Properties,
	}

	b.mu.Lock()
	b.nodes = append(b.nodes, rec)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, rec)
}

func (b *Backend) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Properties map[string]any `json:"properties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body: "+err.Error())
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Node not found")
		return
	}
	props := make(map[string]any, len(b.nodes[i].Properties)+len(req.Properties))
	for k, v := range b.nodes[i].Properties {
		props[k] = v
	}
	for k, v := range req.Properties {
		props[k] = v
	}
	b.nodes[i].Properties = props
	writeJSON(w, http.StatusOK, b.nodes[i])
}

func (b *Backend) handleCreateRelation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartNode  string         `json:"startNode"`
		EndNode    string         `json:"endNode"`
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body: "+err.Error())
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.indexOf(req.StartNode) < 0 || b.indexOf(req.EndNode) < 0 {
		writeDetail(w, http.StatusNotFound, "Start or end node not found")
		return
	}
	if req.Properties == nil {
		req.Properties = map[string]any{}
	}
	rec := graph.RelationRecord{
		ID:         b.newID(),
		Type:       graph.NormalizeLinkType(req.Type),
		StartNode:  req.StartNode,
		EndNode:    req.EndNode,
		Properties: req.Properties,
	}
	b.relations = append(b.relations, rec)
	writeJSON(w, http.StatusOK, rec)
}

func (b *Backend) indexOf(id string) int {
	return slices.IndexFunc(b.nodes, func(n graph.NodeRecord) bool { return n.ID == id })
}

// =============================================================================
// Helpers
// =============================================================================

func uniqueSorted(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
