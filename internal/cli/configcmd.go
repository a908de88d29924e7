package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/config"
)

// configCommand creates the config command with init and show subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the graphdesk configuration file",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration unless a file exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configFile()
			created, err := config.EnsureExists(path)
			if err != nil {
				return err
			}
			if !created {
				printInfo("Config already exists")
				printFile(path)
				return nil
			}
			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after applying $` + config.EnvBackendURL + ` and command-line overrides.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printKeyValue("File", c.configFile())
			printKeyValue("Backend", cfg.Backend.URL)
			printKeyValue("Timeout", cfg.Backend.Timeout)
			printKeyValue("State", cfg.State.Backend)
			switch cfg.State.Backend {
			case config.StateFile:
				printDetail("dir %s", cfg.StatePath())
			case config.StateRedis:
				printDetail("addr %s db %d", cfg.State.Redis.Addr, cfg.State.Redis.DB)
			case config.StateMongo:
				printDetail("%s %s.%s", cfg.State.Mongo.URI, cfg.State.Mongo.Database, cfg.State.Mongo.Collection)
			}
			printKeyValue("Zoom", fmt.Sprintf("%g", cfg.View.Zoom))
			return nil
		},
	}
}

// configFile returns the config path in effect.
func (c *CLI) configFile() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.Path()
}
