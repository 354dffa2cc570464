// Package config loads kanban settings from defaults, a TOML file, the
// environment and command line flags, in that order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/persist"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Defaults
const (
	DefaultBackend   = BackendSQLite
	DefaultTimeout   = 2 * time.Second
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultRedisAddr = "localhost:6379"
)

// Config is the full application configuration
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Redis   RedisConfig   `toml:"redis"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`

	// ConfigFile is the file that was loaded, if any
	ConfigFile string `toml:"-"`
	// Reset clears the saved board before starting
	Reset bool `toml:"-"`
	// ShowVersion prints the version and exits
	ShowVersion bool `toml:"-"`
}

type StorageConfig struct {
	Backend string        `toml:"backend"`
	Path    string        `toml:"path"` // sqlite file, empty = XDG data dir
	Key     string        `toml:"key"`
	Timeout time.Duration `toml:"timeout"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"` // empty = XDG state dir
	Format string `toml:"format"`
}

type UIConfig struct {
	DefaultSort     string `toml:"default_sort"`
	DefaultPriority string `toml:"default_priority"`
}

// Default returns a config with every default applied
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	cfg.Storage.Backend = DefaultBackend
	cfg.Storage.Key = persist.DefaultKey
	cfg.Storage.Timeout = DefaultTimeout
	cfg.Redis.Addr = DefaultRedisAddr
	cfg.Redis.Prefix = "kanban:"
	cfg.Log.Level = DefaultLogLevel
	cfg.Log.Format = DefaultLogFormat
	cfg.UI.DefaultSort = string(board.SortDateNewest)
	cfg.UI.DefaultPriority = string(models.PriorityMedium)
}

// Validate checks enumerated values
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("storage.backend %q: must be sqlite, redis or memory", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("storage.timeout must be positive, got %s", c.Storage.Timeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: must be debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log.format %q: must be text, json or logfmt", c.Log.Format)
	}
	if _, err := board.ParseSort(c.UI.DefaultSort); err != nil {
		return fmt.Errorf("ui.default_sort: %w", err)
	}
	if _, err := models.ParsePriority(c.UI.DefaultPriority); err != nil {
		return fmt.Errorf("ui.default_priority: %w", err)
	}
	return nil
}

// DefaultPriority returns the parsed ui.default_priority
func (c *Config) DefaultPriority() models.Priority {
	p, err := models.ParsePriority(c.UI.DefaultPriority)
	if err != nil {
		return models.PriorityMedium
	}
	return p
}

// DefaultSort returns the parsed ui.default_sort
func (c *Config) DefaultSort() board.Sort {
	s, err := board.ParseSort(c.UI.DefaultSort)
	if err != nil {
		return board.SortDateNewest
	}
	return s
}
