package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/httputil"
	"github.com/matzehuels/graphdesk/pkg/observability"
)

// DefaultTimeout bounds a single request to the backend.
const DefaultTimeout = 10 * time.Second

// RequestIDHeader is set on every outgoing request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of an error response is read for diagnostics.
const maxErrorBody = 4 << 10

// Client talks to the Backend Gateway over HTTP.
// It is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithHeaders adds default headers applied to every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) { c.headers = h }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidURL, err, "parse backend URL")
	}
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: u,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// =============================================================================
// Queries
// =============================================================================

// Export fetches the graph, narrowed by the set filters of crit.
func (c *Client) Export(ctx context.Context, crit graph.Criteria) (graph.Export, error) {
	q := url.Values{}
	for k, v := range crit.Map() {
		q.Set(k, v)
	}
	var out graph.Export
	err := httputil.RetryWithBackoff(ctx, func() error {
		out = graph.Export{}
		return c.do(ctx, http.MethodGet, "/utils/export", q, nil, &out)
	})
	if err != nil {
		return graph.Export{}, err
	}
	return out, nil
}

// Labels lists every node label known to the backend.
func (c *Client) Labels(ctx context.Context) ([]string, error) {
	return c.getStrings(ctx, "/labels")
}

// RelationshipTypes lists every relationship type known to the backend.
func (c *Client) RelationshipTypes(ctx context.Context) ([]string, error) {
	return c.getStrings(ctx, "/relationship_types")
}

func (c *Client) getStrings(ctx context.Context, path string) ([]string, error) {
	var out []string
	err := httputil.RetryWithBackoff(ctx, func() error {
		out = nil
		return c.do(ctx, http.MethodGet, path, nil, nil, &out)
	})
	return out, err
}

// =============================================================================
// Mutations
// =============================================================================

// NodeRequest is the body of POST /nodes.
type NodeRequest struct {
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// RelationRequest is the body of POST /relations.
type RelationRequest struct {
	StartNode  string         `json:"startNode"`
	EndNode    string         `json:"endNode"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// nodeUpdate is the body of PUT /nodes/{id}.
type nodeUpdate struct {
	Properties map[string]any `json:"properties"`
}

// CreateNode creates a node. Labels are trimmed; an empty list becomes
// ["Custom"].
func (c *Client) CreateNode(ctx context.Context, req NodeRequest) (graph.NodeRecord, error) {
	req.Labels = graph.NormalizeLabels(req.Labels)
	if req.Properties == nil {
		req.Properties = map[string]any{}
	}
	var out graph.NodeRecord
	if err := c.do(ctx, http.MethodPost, "/nodes", nil, req, &out); err != nil {
		return graph.NodeRecord{}, err
	}
	return out, nil
}

// CreateRelation creates a relation. A blank type becomes "RELATED_TO".
func (c *Client) CreateRelation(ctx context.Context, req RelationRequest) (graph.RelationRecord, error) {
	if err := errors.ValidateEndpoints(req.StartNode, req.EndNode); err != nil {
		return graph.RelationRecord{}, err
	}
	req.Type = graph.NormalizeLinkType(req.Type)
	if req.Properties == nil {
		req.Properties = map[string]any{}
	}
	var out graph.RelationRecord
	if err := c.do(ctx, http.MethodPost, "/relations", nil, req, &out); err != nil {
		return graph.RelationRecord{}, err
	}
	return out, nil
}

// UpdateNode merges properties into node id. The response body is ignored.
func (c *Client) UpdateNode(ctx context.Context, id string, properties map[string]any) error {
	if id == "" {
		return errors.New(errors.ErrCodeInvalidInput, "node id cannot be empty")
	}
	return c.do(ctx, http.MethodPut, "/nodes/"+url.PathEscape(id), nil, nodeUpdate{Properties: properties}, nil)
}

// UpdateNodePosition stores a node's position.
func (c *Client) UpdateNodePosition(ctx context.Context, id string, x, y float64) error {
	return c.UpdateNode(ctx, id, map[string]any{graph.PropX: x, graph.PropY: y})
}

// =============================================================================
// Transport
// =============================================================================

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL.String() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode %s %s", method, path)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build %s %s", method, path)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())

	host := c.baseURL.Host
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		code := errors.ErrCodeNetwork
		if ctx.Err() == context.DeadlineExceeded {
			code = errors.ErrCodeTimeout
		}
		return &httputil.RetryableError{Err: errors.Wrap(code, err, "%s %s", method, path)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(method, path, resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s %s response", method, path)
	}
	return nil
}

func checkStatus(method, path string, resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s %s: %s", method, path, detail(resp))
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "%s %s: status %d: %s", method, path, code, detail(resp))}
	default:
		return errors.New(errors.ErrCodeNetwork, "%s %s: status %d: %s", method, path, code, detail(resp))
	}
}

// detail extracts a diagnostic from an error response. FastAPI-style
// {"detail": ...} bodies yield the detail; anything else is returned raw.
func detail(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(data, &body) == nil && body.Detail != nil {
		if s, ok := body.Detail.(string); ok {
			return s
		}
		return fmt.Sprint(body.Detail)
	}
	if s := strings.TrimSpace(string(data)); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}
