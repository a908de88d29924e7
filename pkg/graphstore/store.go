package graphstore

import (
	"context"
	"io"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/gateway"
	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/observability"
)

// DefaultTimeout bounds each gateway operation issued by the store.
const DefaultTimeout = 15 * time.Second

// Gateway is the subset of the backend client the store needs.
// *gateway.Client satisfies it.
type Gateway interface {
	Export(ctx context.Context, crit graph.Criteria) (graph.Export, error)
	Labels(ctx context.Context) ([]string, error)
	RelationshipTypes(ctx context.Context) ([]string, error)
	CreateNode(ctx context.Context, req gateway.NodeRequest) (graph.NodeRecord, error)
	CreateRelation(ctx context.Context, req gateway.RelationRequest) (graph.RelationRecord, error)
	UpdateNodePosition(ctx context.Context, id string, x, y float64) error
}

// Store owns the current snapshot, the criteria it was fetched with and
// the label/type vocabularies.
type Store struct {
	gw      Gateway
	logger  *log.Logger
	timeout time.Duration

	snapshot graph.Snapshot
	criteria graph.Criteria
	labels   []string
	types    []string
	pending  int
	lastErr  error
}

// Option configures a Store.
type Option func(*Store)

// WithTimeout overrides [DefaultTimeout].
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates an empty Store backed by gw. A nil logger discards output.
func New(gw Gateway, logger *log.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{gw: gw, logger: logger, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() graph.Snapshot { return s.snapshot }

// Criteria returns the criteria of the most recently started fetch.
func (s *Store) Criteria() graph.Criteria { return s.criteria }

// Labels returns the known node labels.
func (s *Store) Labels() []string { return s.labels }

// RelationshipTypes returns the known relationship types.
func (s *Store) RelationshipTypes() []string { return s.types }

// Busy reports whether any request is in flight.
func (s *Store) Busy() bool { return s.pending > 0 }

// Err returns the most recent operation error, cleared by the next success.
func (s *Store) Err() error { return s.lastErr }

// SetSnapshot replaces the snapshot directly. Used for offline rendering.
func (s *Store) SetSnapshot(snap graph.Snapshot) { s.snapshot = snap }

// MoveNode updates a node's position locally without contacting the
// backend. Unknown ids are ignored.
func (s *Store) MoveNode(id string, pos graph.Position) {
	s.snapshot = s.snapshot.WithNodePosition(id, pos)
}

// =============================================================================
// Commands
// =============================================================================

// Fetch makes crit the active criteria and returns a command that exports
// the graph narrowed by it.
func (s *Store) Fetch(crit graph.Criteria) tea.Cmd {
	s.criteria = crit
	s.pending++
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		hooks := observability.Graph()
		hooks.OnFetchStart(ctx, crit.Map())
		start := time.Now()
		raw, err := s.gw.Export(ctx, crit)
		if err != nil {
			hooks.OnFetchComplete(ctx, 0, 0, time.Since(start), err)
			return FetchedMsg{Criteria: crit, Err: err}
		}
		snap := graph.Normalize(raw)
		hooks.OnFetchComplete(ctx, len(snap.Nodes), len(snap.Links), time.Since(start), nil)
		return FetchedMsg{Criteria: crit, Snapshot: snap}
	}
}

// Refresh re-fetches with the active criteria.
func (s *Store) Refresh() tea.Cmd { return s.Fetch(s.criteria) }

// LoadVocabulary returns a command fetching labels and relationship types.
func (s *Store) LoadVocabulary() tea.Cmd {
	s.pending += 2
	labels := func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		v, err := s.gw.Labels(ctx)
		return LabelsMsg{Labels: v, Err: err}
	}
	types := func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		v, err := s.gw.RelationshipTypes(ctx)
		return TypesMsg{Types: v, Err: err}
	}
	return tea.Batch(labels, types)
}

// CreateNode validates the form input and returns a command creating the
// node at the origin. labelsInput is comma separated; blank means
// ["Custom"]. A validation error returns a nil command.
func (s *Store) CreateNode(name, labelsInput, description string) (tea.Cmd, error) {
	if err := errors.ValidateNodeName(name); err != nil {
		return nil, err
	}
	req := gateway.NodeRequest{
		Labels: graph.ParseLabels(labelsInput),
		Properties: map[string]any{
			graph.PropName: name,
			graph.PropX:    0,
			graph.PropY:    0,
			graph.PropDesc: description,
		},
	}
	s.pending++
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		start := time.Now()
		rec, err := s.gw.CreateNode(ctx, req)
		observability.Graph().OnMutation(ctx, "create_node", time.Since(start), err)
		return NodeCreatedMsg{Record: rec, Err: err}
	}, nil
}

// CreateLink validates the endpoints and returns a command creating a
// relation. A blank type becomes "RELATED_TO".
func (s *Store) CreateLink(sourceID, targetID, typ string, properties map[string]any) (tea.Cmd, error) {
	if err := errors.ValidateEndpoints(sourceID, targetID); err != nil {
		return nil, err
	}
	req := gateway.RelationRequest{
		StartNode:  sourceID,
		EndNode:    targetID,
		Type:       graph.NormalizeLinkType(typ),
		Properties: properties,
	}
	s.pending++
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		start := time.Now()
		rec, err := s.gw.CreateRelation(ctx, req)
		observability.Graph().OnMutation(ctx, "create_link", time.Since(start), err)
		return LinkCreatedMsg{Record: rec, Err: err}
	}, nil
}

// UpdateNodePosition returns a command persisting a node position. The
// snapshot is not re-fetched afterwards.
func (s *Store) UpdateNodePosition(id string, x, y float64) tea.Cmd {
	s.pending++
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		start := time.Now()
		err := s.gw.UpdateNodePosition(ctx, id, x, y)
		observability.Graph().OnMutation(ctx, "update_position", time.Since(start), err)
		return PositionSavedMsg{ID: id, X: x, Y: y, Err: err}
	}
}

func (s *Store) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// =============================================================================
// Update
// =============================================================================

// Update applies a result message. It reports whether msg belonged to the
// store and returns any follow-up command, such as the re-fetch after a
// successful create.
func (s *Store) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case FetchedMsg:
		s.done()
		if msg.Err != nil {
			s.fail("fetch graph", msg.Err, "filters", msg.Criteria.Map())
			return true, nil
		}
		s.snapshot = msg.Snapshot
		s.lastErr = nil
		st := msg.Snapshot.Stats()
		s.logger.Debug("graph fetched", "nodes", st.Nodes, "links", st.Links)
		return true, nil

	case NodeCreatedMsg:
		s.done()
		if msg.Err != nil {
			s.fail("create node", msg.Err)
			return true, nil
		}
		s.lastErr = nil
		s.logger.Info("node created", "id", msg.Record.ID)
		return true, s.Refresh()

	case LinkCreatedMsg:
		s.done()
		if msg.Err != nil {
			s.fail("create link", msg.Err)
			return true, nil
		}
		s.lastErr = nil
		s.logger.Info("link created", "id", msg.Record.ID, "type", msg.Record.Type)
		return true, s.Refresh()

	case PositionSavedMsg:
		s.done()
		if msg.Err != nil {
			s.fail("update node position", msg.Err, "id", msg.ID)
			return true, nil
		}
		s.logger.Debug("node position saved", "id", msg.ID, "x", msg.X, "y", msg.Y)
		return true, nil

	case LabelsMsg:
		s.done()
		if msg.Err != nil {
			s.fail("load labels", msg.Err)
			return true, nil
		}
		s.labels = slices.Clone(msg.Labels)
		return true, nil

	case TypesMsg:
		s.done()
		if msg.Err != nil {
			s.fail("load relationship types", msg.Err)
			return true, nil
		}
		s.types = slices.Clone(msg.Types)
		return true, nil
	}
	return false, nil
}

func (s *Store) done() {
	if s.pending > 0 {
		s.pending--
	}
}

func (s *Store) fail(op string, err error, keyvals ...any) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.lastErr = errors.Wrap(code, err, "%s", op)
	s.logger.Error(op, append(keyvals, "err", err)...)
}
