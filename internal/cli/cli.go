package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/buildinfo"
	"github.com/matzehuels/graphdesk/pkg/config"
	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/gateway"
	"github.com/matzehuels/graphdesk/pkg/kv"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "graphdesk"

	// stateKeyPrefix namespaces keys in shared state backends.
	stateKeyPrefix = "graphdesk:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath   string
	backendURL   string
	stateBackend string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the gateway and
// state hooks log every request.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "graphdesk browses and edits a remote property graph",
		Long:         `graphdesk is a terminal client for a property graph backend. It fetches the graph through the backend's HTTP API, draws it, and lets you create nodes and relationships and reposition nodes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")
	root.PersistentFlags().StringVar(&c.backendURL, "backend", "", "backend base URL (overrides config and $"+config.EnvBackendURL+")")
	root.PersistentFlags().StringVar(&c.stateBackend, "state", "", "client state backend: file, redis, mongo or memory")

	root.AddCommand(c.uiCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.nodeCommand())
	root.AddCommand(c.linkCommand())
	root.AddCommand(c.labelsCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mockBackendCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Wiring
// =============================================================================

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(c.configFile())
	if cfg == nil {
		return nil, err
	}
	if c.backendURL != "" {
		cfg.Backend.URL = c.backendURL
	}
	if c.stateBackend != "" {
		cfg.State.Backend = c.stateBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newGateway creates a backend client from cfg.
func newGateway(cfg *config.Config) (*gateway.Client, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return gateway.NewClient(cfg.Backend.URL,
		gateway.WithTimeout(timeout),
		gateway.WithHeaders(map[string]string{"User-Agent": buildinfo.UserAgent()}),
	)
}

// openState opens the configured client state backend. Shared backends are
// namespaced so several tools can use one server.
func openState(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	var (
		store kv.Store
		err   error
	)
	switch cfg.State.Backend {
	case config.StateFile:
		store, err = kv.NewFileStore(cfg.StatePath())
	case config.StateMemory:
		store = kv.NewMemoryStore(nil)
	case config.StateRedis:
		var rs *kv.RedisStore
		rs, err = kv.NewRedisStore(ctx, kv.RedisConfig{
			Addr:     cfg.State.Redis.Addr,
			Password: cfg.State.Redis.Password,
			DB:       cfg.State.Redis.DB,
		})
		if err == nil {
			store = kv.NewScopedStore(rs, stateKeyPrefix)
		}
	case config.StateMongo:
		var ms *kv.MongoStore
		ms, err = kv.NewMongoStore(ctx, kv.MongoConfig{
			URI:        cfg.State.Mongo.URI,
			Database:   cfg.State.Mongo.Database,
			Collection: cfg.State.Mongo.Collection,
		})
		if err == nil {
			store = kv.NewScopedStore(ms, stateKeyPrefix)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown state backend %q", cfg.State.Backend)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s state", cfg.State.Backend)
	}
	return kv.Observe(store), nil
}

// =============================================================================
// Paths
// =============================================================================

// logPath returns the default editor log file
// ($XDG_STATE_HOME/graphdesk/graphdesk.log).
func logPath() string {
	return filepath.Join(config.StateDir(), appName+".log")
}

// openLogFile opens path for appending, creating parent directories.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
