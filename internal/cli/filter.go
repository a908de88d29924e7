package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/filter"
	"github.com/matzehuels/graphdesk/pkg/graph"
)

// filterCommand creates the filter command with show, apply and clear
// subcommands. They operate on the same persisted criteria the editor loads
// at startup.
func (c *CLI) filterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show or change the persisted editor filters",
		Long: `Show or change the filters the editor restores at startup.

Applied filters expire after seven days unless applied again.`,
	}
	cmd.AddCommand(c.filterShowCommand())
	cmd.AddCommand(c.filterApplyCommand())
	cmd.AddCommand(c.filterClearCommand())
	return cmd
}

func (c *CLI) filterShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the persisted filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := openState(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			crit := filter.New(store, nil, c.Logger).Load(ctx)
			if crit.IsEmpty() {
				printInfo("No filters set")
				return nil
			}
			printKeyValue("Name", crit.Name)
			printKeyValue("Label", crit.Label)
			printKeyValue("Type", crit.Type)
			return nil
		},
	}
}

func (c *CLI) filterApplyCommand() *cobra.Command {
	var flags criteriaFlags
	cmd := &cobra.Command{
		Use:     "apply",
		Short:   "Persist new filters and show the filtered graph size",
		Example: `  graphdesk filter apply --label Person --type KNOWS`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := openState(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			crit := flags.criteria()
			if err := filter.New(store, nil, c.Logger).Save(ctx, crit); err != nil {
				return err
			}
			printSuccess("Filters saved")

			raw, err := c.fetchExport(ctx, cfg, crit)
			if err != nil {
				printWarning("Could not preview the filtered graph: %v", err)
				return nil
			}
			st := graph.Normalize(raw).Stats()
			printStats(st.Nodes, st.Links, crit.Map())
			printNextStep("Open the editor", appName+" ui")
			return nil
		},
	}
	flags.register(cmd)
	c.registerVocabularyCompletion(cmd)
	return cmd
}

func (c *CLI) filterClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the persisted filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := openState(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := filter.New(store, nil, c.Logger).Remove(ctx); err != nil {
				return err
			}
			printSuccess("Filters cleared")
			return nil
		},
	}
}
