package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/graphdesk/pkg/config"
	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/gateway/fakebackend"
	"github.com/matzehuels/graphdesk/pkg/graph"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"ui", "export", "filter", "node", "link", "labels", "types", "serve", "mock-backend", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "backend", "state"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv(config.EnvBackendURL, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[backend]\nurl = \"http://graph.internal:9000\"\ntimeout = \"3s\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = path
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Backend.URL != "http://graph.internal:9000" {
		t.Errorf("url = %q", cfg.Backend.URL)
	}

	c.backendURL = "http://localhost:1234"
	c.stateBackend = config.StateMemory
	cfg, err = c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Backend.URL != "http://localhost:1234" || cfg.State.Backend != config.StateMemory {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	c.stateBackend = "sqlite"
	if _, err := c.loadConfig(); err == nil {
		t.Error("expected error for unknown state backend")
	}
}

func TestOpenStateMemory(t *testing.T) {
	cfg := config.Default()
	cfg.State.Backend = config.StateMemory
	store, err := openState(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openState: %v", err)
	}
	defer store.Close()

	if err := store.Set(context.Background(), "k", "v", 0); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := store.Get(context.Background(), "k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}

func TestOpenStateFile(t *testing.T) {
	cfg := config.Default()
	cfg.State.Dir = t.TempDir()
	store, err := openState(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openState: %v", err)
	}
	defer store.Close()

	if err := store.Set(context.Background(), "graphFilters", "{}", 0); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(cfg.State.Dir)
	if len(entries) == 0 {
		t.Error("file state wrote nothing")
	}
}

func TestEncodeSnapshot(t *testing.T) {
	snap := graph.Normalize(fakebackend.Sample())

	tests := []struct {
		format string
		want   []string
	}{
		{formatSVG, []string{"<svg", `data-node="alice"`, "<title>KNOWS</title>", "Acme Corp"}},
		{formatDOT, []string{"digraph", `"alice" -> "bob"`, "layout=neato"}},
		{formatJSON, []string{`"nodes"`, `"name": "Graph Theory"`}},
		{"SVG", []string{"<svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := encodeSnapshot(snap, tt.format, false, 1)
			if err != nil {
				t.Fatalf("encodeSnapshot: %v", err)
			}
			for _, w := range tt.want {
				if !bytes.Contains(data, []byte(w)) {
					t.Errorf("output missing %q", w)
				}
			}
		})
	}

	if _, err := encodeSnapshot(snap, "png", false, 1); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("png: err = %v, want UNSUPPORTED", err)
	}
}

func TestEncodeSnapshotJSONRoundTrip(t *testing.T) {
	snap := graph.Normalize(fakebackend.Sample())
	data, err := encodeSnapshot(snap, formatJSON, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	var got graph.Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != 4 || len(got.Links) != 4 {
		t.Errorf("decoded %d nodes, %d links", len(got.Nodes), len(got.Links))
	}
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.svg")
	if err := writeOutput(path, []byte("<svg/>")); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "<svg/>" {
		t.Errorf("wrote %q", data)
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := []struct{ in, want string }{
		{":8080", "localhost:8080"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
		{"localhost:8000", "localhost:8000"},
		{"bogus", "bogus"},
	}
	for _, tt := range tests {
		if got := displayAddr(tt.in); got != tt.want {
			t.Errorf("displayAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCoordinate(t *testing.T) {
	if v, err := parseCoordinate("X", "-35.5"); err != nil || v != -35.5 {
		t.Errorf("parseCoordinate = %v, %v", v, err)
	}
	if _, err := parseCoordinate("X", "left"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	want := filepath.Join(dir, appName, appName+".log")
	if got := logPath(); got != want {
		t.Errorf("logPath() = %q, want %q", got, want)
	}

	f, err := openLogFile(filepath.Join(dir, "nested", "x.log"))
	if err != nil {
		t.Fatalf("openLogFile: %v", err)
	}
	f.Close()
}
