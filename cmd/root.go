// Package cmd wires the namevault CLI together.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sorenhq/namevault/internal/config"
	"github.com/sorenhq/namevault/internal/infrastructure/sqlite"
	"github.com/sorenhq/namevault/internal/log"
	"github.com/sorenhq/namevault/internal/pool"
	"github.com/sorenhq/namevault/internal/registry/resolver"
	"github.com/sorenhq/namevault/internal/tracing"
)

var (
	version    = "dev"
	cfgFile    string
	cfg        config.Config
	debugMode  bool
	jsonOutput bool
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:     "namevault",
	Short:   "A durable name to identifier registry",
	Long:    `Namevault maintains a durable registry of names mapped to stable identifiers, backed by SQLite. Every mutation is serialized, so two concurrent registrations of the same name can never both succeed.`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/namevault/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"write debug logs to the data directory")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"emit JSON instead of plain text")
	rootCmd.PersistentFlags().String("data-dir", "",
		"directory holding the registry database")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("registry.queue_size", defaults.Registry.QueueSize)
	viper.SetDefault("registry.cache_ttl", defaults.Registry.CacheTTL)
	viper.SetDefault("pool.workers", defaults.Pool.Workers)
	viper.SetDefault("pool.queue_depth", defaults.Pool.QueueDepth)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .namevault/config.yaml (current directory)
		// 2. ~/.config/namevault/config.yaml (user config)
		if _, err := os.Stat(".namevault/config.yaml"); err == nil {
			viper.SetConfigFile(".namevault/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "namevault"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a default user config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "namevault", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if debugMode || os.Getenv("NAMEVAULT_DEBUG") != "" {
		initDebugLog()
	}
}

func initDebugLog() {
	dir := cfg.DataDir
	if dir == "" {
		dir = config.DefaultDataDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return
	}
	cleanup, err := log.Init(filepath.Join(dir, "namevault.log"))
	if err != nil {
		return
	}
	logCleanup = cleanup
}

// withRepository opens the database and worker pool, runs fn, and tears
// everything down in reverse order.
func withRepository(fn func(ctx context.Context, repo *sqlite.MappingRepository) error) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := sqlite.NewDB(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening registry database: %w", err)
	}
	defer func() { _ = db.Close() }()

	p := pool.New(pool.Config{
		Workers:    cfg.Pool.Workers,
		QueueDepth: cfg.Pool.QueueDepth,
	})
	defer p.Close()

	return fn(context.Background(), sqlite.NewMappingRepository(db, p))
}

// withResolver runs fn against a resolution actor over the real store.
func withResolver(fn func(ctx context.Context, h *resolver.Handle) error) error {
	provider, err := tracing.NewProvider(cfg.TracingProviderConfig())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	return withRepository(func(ctx context.Context, repo *sqlite.MappingRepository) error {
		h := resolver.New(repo, resolver.Config{
			QueueSize: cfg.Registry.QueueSize,
			CacheTTL:  cfg.Registry.CacheTTL,
			Tracer:    provider.Tracer(),
		})
		defer h.Close()
		return fn(ctx, h)
	})
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if logCleanup != nil {
		logCleanup()
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
