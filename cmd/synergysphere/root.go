package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"synergysphere/internal/config"
	"synergysphere/internal/logging"
	"synergysphere/internal/repository"
	"synergysphere/internal/store"
)

var (
	configFile string
	envFile    string
	v          = viper.New()
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "synergysphere",
		Short: "SynergySphere team collaboration backend",
		Long: `SynergySphere keeps users, projects and tasks in a key-value store and
serves them over HTTP.

Settings come from .env, an optional config file, SYNERGY_* environment
variables and flags, in rising priority.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a config file (yaml, toml or json)")
	flags.StringVar(&envFile, "env-file", ".env", "Path to a dotenv file")
	flags.String("storage", "", "Storage backend: memory or sqlite")
	flags.String("db-path", "", "SQLite database path")
	flags.String("namespace", "", "Key prefix for stored collections")
	flags.String("log-mode", "", "Logger: production, development or nop")

	for key, flag := range map[string]string{
		"storage":   "storage",
		"db_path":   "db-path",
		"namespace": "namespace",
		"log_mode":  "log-mode",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(statsCmd)
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// app is the opened core shared by every command.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	repo  *repository.Repository
	close func()
}

func openApp() (*app, error) {
	cfg, err := config.Load(v, envFile, configFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	var backend store.Backend
	closeBackend := func() error { return nil }
	switch cfg.Storage {
	case config.StorageMemory:
		backend = store.NewMemoryBackend(store.MemoryOptions{ConcurrencySafe: true})
	case config.StorageSQLite:
		sqlite, err := store.OpenSQLite(cfg.DBPath, cfg.LogMode == config.LogDevelopment)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		backend = sqlite
		closeBackend = sqlite.Close
	}

	s := store.New(backend, store.WithNamespace(cfg.Namespace), store.WithLogger(logger))
	return &app{
		cfg:   cfg,
		log:   logger,
		store: s,
		repo:  repository.New(s),
		close: func() {
			if err := closeBackend(); err != nil {
				logger.Warn("failed to close storage", zap.Error(err))
			}
			_ = logger.Sync()
		},
	}, nil
}
