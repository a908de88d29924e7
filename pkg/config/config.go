// Package config loads the graphdesk configuration file.
//
// The file lives at $XDG_CONFIG_HOME/graphdesk/config.toml (falling back to
// ~/.config/graphdesk/config.toml). A missing file yields [Default]. The
// GRAPHDESK_BACKEND_URL environment variable overrides [backend] url;
// command-line flags override both.
//
//	[backend]
//	url = "http://localhost:8000"
//	timeout = "10s"
//
//	[state]
//	backend = "file"   # file, redis, mongo, memory
//
//	[state.redis]
//	addr = "localhost:6379"
//
//	[view]
//	zoom = 1.0
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphdesk/pkg/errors"
)

// appName names the config and state directories.
const appName = "graphdesk"

// EnvBackendURL overrides [BackendConfig.URL].
const EnvBackendURL = "GRAPHDESK_BACKEND_URL"

// State backend names.
const (
	StateFile   = "file"
	StateRedis  = "redis"
	StateMongo  = "mongo"
	StateMemory = "memory"
)

// Config holds graphdesk configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	State   StateConfig   `toml:"state"`
	View    ViewConfig    `toml:"view"`
}

// BackendConfig locates the Backend Gateway.
type BackendConfig struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"` // Go duration, e.g. "10s"
}

// StateConfig selects where client state (the filter blob) is persisted.
type StateConfig struct {
	Backend string      `toml:"backend"` // "file", "redis", "mongo", "memory"
	Dir     string      `toml:"dir"`     // file backend; empty means the XDG state dir
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis state backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo state backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ViewConfig holds display defaults.
type ViewConfig struct {
	Zoom float64 `toml:"zoom"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{URL: "http://localhost:8000", Timeout: "10s"},
		State: StateConfig{
			Backend: StateFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: appName, Collection: "client_state"},
		},
		View: ViewConfig{Zoom: 1},
	}
}

// Dir returns the graphdesk config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// StateDir returns the directory for persisted client state and logs.
func StateDir() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, appName)
}

// Load reads the config at [Path] and applies environment overrides.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path over the defaults and applies
// environment overrides. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
		}
	}
	if v := os.Getenv(EnvBackendURL); v != "" {
		cfg.Backend.URL = v
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	if err := errors.ValidateURL(c.Backend.URL); err != nil {
		return err
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	switch c.State.Backend {
	case StateFile, StateRedis, StateMongo, StateMemory:
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown state backend %q (want file, redis, mongo or memory)", c.State.Backend)
	}
	if c.View.Zoom <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "view zoom must be positive, got %v", c.View.Zoom)
	}
	return nil
}

// Timeout parses [BackendConfig.Timeout]. Empty means zero (client default).
func (c *Config) Timeout() (time.Duration, error) {
	if c.Backend.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "backend timeout %q", c.Backend.Timeout)
	}
	return d, nil
}

// StatePath returns the file backend directory.
func (c *Config) StatePath() string {
	if c.State.Dir != "" {
		return c.State.Dir
	}
	return filepath.Join(StateDir(), "state")
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists writes the default config to path unless a file exists.
// It reports whether a file was created.
func EnsureExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	return true, Save(Default(), path)
}
