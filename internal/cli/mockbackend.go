package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/gateway/fakebackend"
	"github.com/matzehuels/graphdesk/pkg/graph"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
)

// mockBackendCommand creates the mock-backend command, which serves the
// backend HTTP API from memory for demos and offline work.
func (c *CLI) mockBackendCommand() *cobra.Command {
	var (
		addr  string
		empty bool
		seed  string
	)

	cmd := &cobra.Command{
		Use:   "mock-backend",
		Short: "Run an in-memory graph backend",
		Long: `Run an in-memory implementation of the graph backend API.

The backend starts with a small sample graph (people, a company and a topic)
unless --empty is given or --seed names a graph file. Changes are lost on
exit; save them with "graphdesk export --format export".`,
		Example: `  graphdesk mock-backend --addr :8000 &
  graphdesk ui --backend http://localhost:8000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := fakebackend.New(fakebackend.WithLogger(c.Logger.WithPrefix("backend")))
			switch {
			case seed != "":
				exp, err := graphio.ImportJSON(seed)
				if err != nil {
					return err
				}
				b.Seed(exp)
			case !empty:
				b.Seed(fakebackend.Sample())
			}

			st := graph.Normalize(b.Export()).Stats()
			printSuccess("Mock backend on http://%s", displayAddr(addr))
			printStats(st.Nodes, st.Links, nil)
			printNextStep("Open the editor", appName+" ui --backend http://"+displayAddr(addr))
			return listenAndServe(cmd.Context(), addr, b.Handler(), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8000", "listen address")
	cmd.Flags().BoolVar(&empty, "empty", false, "start without the sample graph")
	cmd.Flags().StringVar(&seed, "seed", "", "load the initial graph from a JSON file")
	cmd.MarkFlagsMutuallyExclusive("empty", "seed")
	return cmd
}
