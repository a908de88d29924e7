package cli

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	gderrors "github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/filter"
	"github.com/matzehuels/graphdesk/pkg/gateway"
	"github.com/matzehuels/graphdesk/pkg/graph"
)

// shutdownTimeout bounds graceful HTTP server shutdown.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command: a read-only browser view of the
// graph that fetches from the backend on every page load.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only browser view of the graph",
		Long: `Serve a local web page showing the graph as SVG.

The page offers the same name, label and type filters as the editor and
starts with the persisted editor filters. Hovering a link shows its type.`,
		Example: `  graphdesk serve --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client, err := newGateway(cfg)
			if err != nil {
				return err
			}

			initial := graph.Criteria{}
			if store, err := openState(ctx, cfg); err != nil {
				c.Logger.Warn("persisted filters unavailable", "err", err)
			} else {
				initial = filter.New(store, nil, c.Logger).Load(ctx)
				store.Close()
			}

			v := newViewer(client, cfg.View.Zoom, initial, c.Logger)
			printSuccess("Serving %s on http://%s", cfg.Backend.URL, displayAddr(addr))
			return listenAndServe(ctx, addr, v.handler(), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	return cmd
}

// =============================================================================
// Viewer
// =============================================================================

// viewer renders the backend graph for browsers.
type viewer struct {
	client  *gateway.Client
	zoom    float64
	initial graph.Criteria
	logger  *log.Logger
}

func newViewer(client *gateway.Client, zoom float64, initial graph.Criteria, logger *log.Logger) *viewer {
	return &viewer{client: client, zoom: zoom, initial: initial, logger: logger}
}

func (v *viewer) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", v.handleIndex)
	r.Get("/graph.svg", v.handleGraph(formatSVG, "image/svg+xml"))
	r.Get("/graph.dot", v.handleGraph(formatDOT, "text/vnd.graphviz; charset=utf-8"))
	r.Get("/graph.json", v.handleGraph(formatJSON, "application/json"))
	r.Get("/vocabulary", v.handleVocabulary)
	return r
}

// criteria reads the filters from the query, falling back to the initial
// filters when the query carries none of them.
func (v *viewer) criteria(r *http.Request) graph.Criteria {
	q := r.URL.Query()
	if !q.Has("name") && !q.Has("label") && !q.Has("type") {
		return v.initial
	}
	return graph.Criteria{Name: q.Get("name"), Label: q.Get("label"), Type: q.Get("type")}
}

func (v *viewer) handleGraph(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := v.client.Export(r.Context(), v.criteria(r))
		if err != nil {
			v.fail(w, r, err)
			return
		}
		data, err := encodeSnapshot(graph.Normalize(raw), format, false, v.zoom)
		if err != nil {
			v.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}

func (v *viewer) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	labels, err := v.client.Labels(r.Context())
	if err != nil {
		v.fail(w, r, err)
		return
	}
	types, err := v.client.RelationshipTypes(r.Context())
	if err != nil {
		v.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"labels": labels, "types": types})
}

func (v *viewer) handleIndex(w http.ResponseWriter, r *http.Request) {
	crit := v.criteria(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, crit); err != nil {
		v.logger.Error("render index", "err", err)
	}
}

// fail reports err to the browser with a status derived from its code.
func (v *viewer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	switch gderrors.GetCode(err) {
	case gderrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case gderrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case gderrors.ErrCodeUnsupported, gderrors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	}
	v.logger.Warn("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	http.Error(w, gderrors.UserMessage(err), status)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>graphdesk</title>
<style>
body { font-family: sans-serif; margin: 1rem; }
form { margin-bottom: 1rem; }
input { margin-right: .5rem; }
img { max-width: 100%; border: 1px solid #ddd; }
</style>
</head>
<body>
<form method="get" action="/">
<input name="name" placeholder="name" value="{{.Name}}">
<input name="label" placeholder="label" value="{{.Label}}">
<input name="type" placeholder="type" value="{{.Type}}">
<button type="submit">Apply</button>
<a href="/?name=&label=&type=">Clear</a>
</form>
<object type="image/svg+xml" data="/graph.svg?name={{.Name}}&label={{.Label}}&type={{.Type}}"></object>
</body>
</html>
`))

// =============================================================================
// HTTP Server
// =============================================================================

// listenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func listenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Debug("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// displayAddr turns ":8080" into "localhost:8080" for printing.
func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host != "" {
		return addr
	}
	return net.JoinHostPort("localhost", port)
}
