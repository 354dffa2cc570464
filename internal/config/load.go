package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Load builds the configuration:
// 1. Defaults
// 2. Config file (--config, KANBAN_CONFIG, or the XDG config dir)
// 3. Environment variables
// 4. CLI flags
func Load(fset *flag.FlagSet, args []string) (*Config, error) {
	if fset == nil {
		fset = flag.NewFlagSet("kanban", flag.ContinueOnError)
	}
	flags := bindFlags(fset)
	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := Default()

	path, explicit := configPath(*flags.config)
	if path != "" {
		err := loadConfigFile(cfg, path)
		switch {
		case err == nil:
			cfg.ConfigFile = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	flags.apply(fset, cfg)

	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/kanban/config.toml
func DefaultConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "kanban", "config.toml")
}

// configPath reports the file to load and whether the user asked for it
func configPath(flagValue string) (string, bool) {
	if flagValue != "" {
		return expandPath(flagValue), true
	}
	if v := os.Getenv("KANBAN_CONFIG"); v != "" {
		return expandPath(v), true
	}
	return DefaultConfigFile(), false
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// loadFromEnv overrides config from KANBAN_* variables
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("KANBAN_BACKEND"); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("KANBAN_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("KANBAN_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv("KANBAN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("KANBAN_TIMEOUT: %w", err)
		}
		cfg.Storage.Timeout = d
	}
	if v := os.Getenv("KANBAN_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("KANBAN_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("KANBAN_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("KANBAN_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}
	if v := os.Getenv("KANBAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("KANBAN_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

type flagValues struct {
	config    *string
	backend   *string
	db        *string
	key       *string
	redisAddr *string
	logLevel  *string
	logFile   *string
	reset     *bool
	version   *bool
}

func bindFlags(fset *flag.FlagSet) *flagValues {
	f := &flagValues{
		config:    fset.String("config", "", "Path to config file"),
		backend:   fset.String("backend", "", "Storage backend (sqlite, redis, memory)"),
		db:        fset.String("db", "", "Path to sqlite database"),
		key:       fset.String("key", "", "Key the board is stored under"),
		redisAddr: fset.String("redis-addr", "", "Redis address"),
		logLevel:  fset.String("log-level", "", "Log level (debug, info, warn, error)"),
		logFile:   fset.String("log-file", "", "Log file path"),
		reset:     fset.Bool("reset", false, "Clear the saved board before starting"),
	}
	f.version = fset.Bool("version", false, "Print version and exit")
	fset.BoolVar(f.version, "v", false, "Print version and exit")
	return f
}

// apply copies only the flags that were set on the command line
func (f *flagValues) apply(fset *flag.FlagSet, cfg *Config) {
	fset.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "backend":
			cfg.Storage.Backend = strings.ToLower(*f.backend)
		case "db":
			cfg.Storage.Path = *f.db
		case "key":
			cfg.Storage.Key = *f.key
		case "redis-addr":
			cfg.Redis.Addr = *f.redisAddr
		case "log-level":
			cfg.Log.Level = strings.ToLower(*f.logLevel)
		case "log-file":
			cfg.Log.File = *f.logFile
		case "reset":
			cfg.Reset = *f.reset
		case "version", "v":
			cfg.ShowVersion = *f.version
		}
	})
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
