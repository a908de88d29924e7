package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/config"
	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/filter"
	"github.com/matzehuels/graphdesk/pkg/graph"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
	"github.com/matzehuels/graphdesk/pkg/render"
	"github.com/matzehuels/graphdesk/pkg/render/dot"
	"github.com/matzehuels/graphdesk/pkg/render/svg"
)

// Export formats.
const (
	formatSVG      = "svg"
	formatDOT      = "dot"
	formatGraphviz = "graphviz" // DOT rendered to SVG by Graphviz
	formatJSON     = "json"
	formatExport   = "export" // backend export records, re-importable
)

// criteriaFlags binds the three filter flags shared by several commands.
type criteriaFlags struct {
	name, label, typ string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "node name substring filter")
	cmd.Flags().StringVar(&f.label, "label", "", "node label filter")
	cmd.Flags().StringVar(&f.typ, "type", "", "relationship type filter")
}

func (f *criteriaFlags) criteria() graph.Criteria {
	return graph.Criteria{Name: f.name, Label: f.label, Type: f.typ}
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags    criteriaFlags
		saved    bool
		output   string
		format   string
		detailed bool
		zoom     float64
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch the graph and write it as SVG, DOT or JSON",
		Long: `Fetch the graph from the backend and write it in one of these formats:

  svg       the editor's drawing (curved links, arrowheads, names)
  dot       Graphviz DOT with node positions pinned
  graphviz  the DOT output rendered to SVG by Graphviz
  json      the normalized snapshot
  export    the backend's export records, readable by mock-backend --seed

Filters default to none; --saved uses the filters persisted by the editor.`,
		Example: `  graphdesk export -o graph.svg
  graphdesk export --label Person --format dot
  graphdesk export --saved --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			crit := flags.criteria()
			if saved {
				store, err := openState(ctx, cfg)
				if err != nil {
					return err
				}
				defer store.Close()
				crit = filter.New(store, nil, c.Logger).Load(ctx)
			}

			raw, err := c.fetchExport(ctx, cfg, crit)
			if err != nil {
				return err
			}
			if zoom <= 0 {
				zoom = cfg.View.Zoom
			}

			if strings.EqualFold(format, formatExport) {
				var buf bytes.Buffer
				if err := graphio.WriteJSON(raw, &buf); err != nil {
					return err
				}
				return writeOutput(output, buf.Bytes())
			}
			data, err := encodeSnapshot(graph.Normalize(raw), format, detailed, zoom)
			if err != nil {
				return err
			}
			return writeOutput(output, data)
		},
	}

	flags.register(cmd)
	c.registerVocabularyCompletion(cmd)
	cmd.Flags().BoolVar(&saved, "saved", false, "use the persisted editor filters instead of flags")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg, dot, graphviz, json, export")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include labels and descriptions in DOT node labels")
	cmd.Flags().Float64Var(&zoom, "zoom", 0, "zoom factor for svg output (default from config)")

	return cmd
}

// fetchExport runs one export fetch with a spinner on stderr.
func (c *CLI) fetchExport(ctx context.Context, cfg *config.Config, crit graph.Criteria) (graph.Export, error) {
	client, err := newGateway(cfg)
	if err != nil {
		return graph.Export{}, err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Fetching graph from "+cfg.Backend.URL+"...")
	spinner.Start()
	raw, err := client.Export(ctx, crit)
	spinner.Stop()
	if err != nil {
		return graph.Export{}, err
	}

	prog.done(fmt.Sprintf("Fetched %d nodes, %d relations", len(raw.Nodes), len(raw.Relations)))
	return raw, nil
}

// encodeSnapshot renders snap in the given format.
func encodeSnapshot(snap graph.Snapshot, format string, detailed bool, zoom float64) ([]byte, error) {
	switch strings.ToLower(format) {
	case formatSVG:
		titles := make(map[string]string, len(snap.Links))
		for _, l := range snap.Links {
			titles[l.Key()] = l.Type
		}
		cmds := render.Frame(snap, render.Hover{}, zoom, render.DefaultStyle())
		return svg.Render(cmds, svg.WithBackground("white"), svg.WithLinkTitles(titles)), nil
	case formatDOT:
		return []byte(dot.ToDOT(snap, dot.Options{Detailed: detailed})), nil
	case formatGraphviz:
		return dot.RenderSVG(dot.ToDOT(snap, dot.Options{Detailed: detailed}))
	case formatJSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown format %q (want svg, dot, graphviz, json or export)", format)
	}
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printSuccess("Wrote %s", path)
	printFile(path)
	return nil
}

// labelsCommand creates the labels command.
func (c *CLI) labelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List the node labels known to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client, err := newGateway(cfg)
			if err != nil {
				return err
			}
			labels, err := client.Labels(cmd.Context())
			if err != nil {
				return err
			}
			printList(labels, "No labels")
			return nil
		},
	}
}

// typesCommand creates the types command.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the relationship types known to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client, err := newGateway(cfg)
			if err != nil {
				return err
			}
			types, err := client.RelationshipTypes(cmd.Context())
			if err != nil {
				return err
			}
			printList(types, "No relationship types")
			return nil
		},
	}
}
