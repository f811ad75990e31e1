package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnflow/internal/config"
	"github.com/abhisek/learnflow/internal/kvstore"
	"github.com/abhisek/learnflow/internal/logging"
	"github.com/abhisek/learnflow/internal/store"
)

// env is the shared runtime every command opens: configuration, logger,
// database and the key-value facade on top of it.
type env struct {
	cfg    *config.Config
	dbPath string
	log    *logging.Logger
	store  *store.Store
	kv     *kvstore.Store
	lock   *store.Lock
}

type envOptions struct {
	// logToFile sends logs next to the database instead of stderr.
	logToFile bool
	// exclusive takes the single-writer lock on the database.
	exclusive bool
	// ephemeral keeps learner data in memory; nothing touches the database.
	ephemeral bool
}

// loadConfig reads the config file named by --config (or the default one)
// and applies the logging flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f, _ := cmd.Flags().GetString("log-format"); f != "" {
		cfg.Logging.Format = f
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Logging.Level = l
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file / LEARNFLOW_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath, store.EnsureDir(cfg.Storage.DBPath)
	}
	return store.DefaultDBPath()
}

func openEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logOpts := logging.Options{Format: cfg.Logging.Format, Level: cfg.Logging.Level, OutputPath: cfg.Logging.File}
	if opts.logToFile && logOpts.OutputPath == "" {
		logOpts.OutputPath = filepath.Join(filepath.Dir(dbPath), "learnflow.log")
	}
	log, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, dbPath: dbPath, log: log}
	if opts.ephemeral {
		e.kv = kvstore.New(ctxOf(cmd), kvstore.NewMemoryBackend(), log)
		return e, nil
	}
	if opts.exclusive {
		lock, err := store.AcquireLock(dbPath)
		if err != nil {
			log.Sync()
			return nil, err
		}
		e.lock = lock
	}

	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.kv = kvstore.New(ctxOf(cmd), st.KV(), log)
	if !e.kv.IsAvailable() {
		log.Warn("storage unavailable, progress will not be saved", "db", dbPath)
	}
	return e, nil
}

// events returns the LLM event log, or nil in ephemeral mode.
func (e *env) events() store.EventRepo {
	if e.store == nil {
		return nil
	}
	return e.store.EventRepo()
}

// Close releases everything openEnv acquired.
func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Warn("close store", "error", err)
		}
	}
	if e.lock != nil {
		if err := e.lock.Release(); err != nil {
			e.log.Warn("release lock", "error", err)
		}
	}
	e.log.Sync()
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
