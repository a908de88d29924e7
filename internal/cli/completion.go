package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for graphdesk.

To load completions:

Bash:
  $ source <(graphdesk completion bash)

  # To load completions for each session, execute once:
  $ graphdesk completion bash > /etc/bash_completion.d/graphdesk

Zsh:
  $ graphdesk completion zsh > "${fpath[1]}/_graphdesk"

Fish:
  $ graphdesk completion fish > ~/.config/fish/completions/graphdesk.fish

PowerShell:
  PS> graphdesk completion powershell | Out-String | Invoke-Expression

Label and type flags complete from the live backend.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerVocabularyCompletion completes --label and --type (when the
// command has them) from the backend's labels and relationship types.
func (c *CLI) registerVocabularyCompletion(cmd *cobra.Command) {
	if cmd.Flags().Lookup("label") != nil {
		cmd.RegisterFlagCompletionFunc("label", c.completeFrom(false))
	}
	if cmd.Flags().Lookup("type") != nil {
		cmd.RegisterFlagCompletionFunc("type", c.completeFrom(true))
	}
}

func (c *CLI) completeFrom(types bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		client, err := newGateway(cfg)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var values []string
		if types {
			values, err = client.RelationshipTypes(cmd.Context())
		} else {
			values, err = client.Labels(cmd.Context())
		}
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
