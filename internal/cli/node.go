package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/graphstore"
	"github.com/matzehuels/graphdesk/pkg/interact"
)

// nodeCommand creates the node command with add and move subcommands.
func (c *CLI) nodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Create or move nodes",
	}
	cmd.AddCommand(c.nodeAddCommand())
	cmd.AddCommand(c.nodeMoveCommand())
	return cmd
}

func (c *CLI) nodeAddCommand() *cobra.Command {
	var labels, desc string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a node at the origin",
		Long: `Create a node named NAME at position (0, 0).

Labels are comma separated; when none are given the node is labeled Custom.`,
		Example: `  graphdesk node add Alice --labels Person,Employee --desc "Team lead"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := interact.ValidateNodeForm(args[0], labels, desc)
			if err != nil {
				return err
			}
			store, err := c.newStore()
			if err != nil {
				return err
			}
			run, err := store.CreateNode(form.Name, form.Labels, form.Description)
			if err != nil {
				return err
			}
			msg := run().(graphstore.NodeCreatedMsg)
			if msg.Err != nil {
				return msg.Err
			}
			printSuccess("Created node %s", StyleHighlight.Render(form.Name))
			printKeyValue("ID", msg.Record.ID)
			printKeyValue("Labels", strings.Join(msg.Record.Labels, ", "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&labels, "labels", "l", "", "comma-separated labels (default "+graph.DefaultLabel+")")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "node description")
	return cmd
}

func (c *CLI) nodeMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "move ID X Y",
		Short:   "Persist a node position",
		Example: `  graphdesk node move 4:abc:1 120 -35.5`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseCoordinate("X", args[1])
			if err != nil {
				return err
			}
			y, err := parseCoordinate("Y", args[2])
			if err != nil {
				return err
			}
			store, err := c.newStore()
			if err != nil {
				return err
			}
			msg := store.UpdateNodePosition(args[0], x, y)().(graphstore.PositionSavedMsg)
			if msg.Err != nil {
				return msg.Err
			}
			printSuccess("Moved node %s to (%g, %g)", args[0], x, y)
			return nil
		},
	}
	return cmd
}

// linkCommand creates the link command.
func (c *CLI) linkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Create relationships",
	}
	cmd.AddCommand(c.linkAddCommand())
	return cmd
}

func (c *CLI) linkAddCommand() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "add SOURCE_ID TARGET_ID",
		Short: "Create a relationship from SOURCE_ID to TARGET_ID",
		Example: `  graphdesk link add 4:abc:1 4:abc:2 --type KNOWS
  graphdesk link add 4:abc:1 4:abc:2            # type RELATED_TO`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := interact.State{
				Pending: interact.PendingEdge{
					Source: interact.Endpoint{ID: args[0], Name: args[0]},
					Target: interact.Endpoint{ID: args[1], Name: args[1]},
					Type:   typ,
				},
			}.SubmitEdge()
			if err != nil {
				return err
			}
			store, err := c.newStore()
			if err != nil {
				return err
			}
			run, err := store.CreateLink(req.SourceID, req.TargetID, req.Type, nil)
			if err != nil {
				return err
			}
			msg := run().(graphstore.LinkCreatedMsg)
			if msg.Err != nil {
				return msg.Err
			}
			printSuccess("Created %s relationship", StyleHighlight.Render(msg.Record.Type))
			printDetail("%s %s %s", msg.Record.StartNode, iconArrow, msg.Record.EndNode)
			return nil
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "relationship type (default "+graph.DefaultLinkType+")")
	c.registerVocabularyCompletion(cmd)
	return cmd
}

// newStore creates a graph store over the configured backend for one-shot
// commands, which run its commands synchronously.
func (c *CLI) newStore() (*graphstore.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := newGateway(cfg)
	if err != nil {
		return nil, err
	}
	return graphstore.New(client, c.Logger), nil
}

func parseCoordinate(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", name, s)
	}
	return v, nil
}
