package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/tgienger/kanban/internal/config"
	"github.com/tgienger/kanban/internal/db"
	"github.com/tgienger/kanban/internal/logging"
	"github.com/tgienger/kanban/internal/persist"
	"github.com/tgienger/kanban/internal/redisstore"
	"github.com/tgienger/kanban/internal/store"
	"github.com/tgienger/kanban/internal/ui"
	"github.com/tgienger/kanban/internal/ui/views"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// backend is what every storage option provides
type backend interface {
	persist.Backend
	views.Settings
}

func main() {
	cfg, err := config.Load(flag.NewFlagSet("kanban", flag.ExitOnError), os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.ShowVersion {
		fmt.Printf("kanban %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.Info("starting", "version", version, "backend", cfg.Storage.Backend, "config", cfg.ConfigFile)

	if err := run(cfg, logger.Logger); err != nil {
		logger.Error("exiting", "err", err)
		logger.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	storage, closeFn, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	if cfg.Reset {
		if err := resetBoard(storage, cfg); err != nil {
			return err
		}
		logger.Info("board reset", "key", cfg.Storage.Key)
	}

	adapter := persist.NewAdapter(storage,
		persist.WithKey(cfg.Storage.Key),
		persist.WithTimeout(cfg.Storage.Timeout),
		persist.WithLogger(logger),
	)
	tasks := adapter.Load()
	logger.Info("board loaded", "tasks", len(tasks))

	s := store.New(tasks, store.WithPersister(adapter), store.WithLogger(logger))

	app := ui.NewApp(s, storage, logger, views.BoardOptions{
		DefaultSort:     cfg.DefaultSort(),
		DefaultPriority: cfg.DefaultPriority(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// openBackend connects the configured storage. The returned func releases it.
func openBackend(cfg *config.Config, logger *log.Logger) (backend, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rs := redisstore.New(client, cfg.Redis.Prefix)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.Timeout)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("using redis", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return rs, func() { rs.Close() }, nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage, tasks are lost on exit")
		return persist.NewMemoryBackend(), func() {}, nil

	default:
		var (
			database *db.DB
			err      error
		)
		if cfg.Storage.Path != "" {
			database, err = db.Open(cfg.Storage.Path)
		} else {
			database, err = db.New()
		}
		if err != nil {
			return nil, nil, fmt.Errorf("initializing database: %w", err)
		}
		logger.Info("using sqlite", "path", database.Path())
		return database, func() { database.Close() }, nil
	}
}

// resetBoard removes the saved task list
func resetBoard(storage backend, cfg *config.Config) error {
	deleter, ok := storage.(interface {
		Delete(ctx context.Context, key string) error
	})
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.Timeout)
	defer cancel()
	if err := deleter.Delete(ctx, cfg.Storage.Key); err != nil {
		return fmt.Errorf("resetting board: %w", err)
	}
	return nil
}
