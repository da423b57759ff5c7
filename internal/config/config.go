// Package config provides configuration types and defaults for namevault.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sorenhq/namevault/internal/log"
	"github.com/sorenhq/namevault/internal/tracing"
)

// Config holds all configuration options for namevault.
type Config struct {
	// DataDir is where the registry database lives.
	// Default: ~/.namevault
	DataDir string `mapstructure:"data_dir"`

	Registry RegistryConfig `mapstructure:"registry"`
	Pool     PoolConfig     `mapstructure:"pool"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// RegistryConfig holds resolver tuning options.
type RegistryConfig struct {
	// QueueSize is the resolution actor's inbox capacity.
	// Default: 100
	QueueSize int `mapstructure:"queue_size"`

	// CacheTTL enables the read cache when positive.
	// Default: 0 (disabled)
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// PoolConfig holds worker pool tuning options.
type PoolConfig struct {
	// Workers is the number of goroutines executing store transactions.
	// Default: 4
	Workers int `mapstructure:"workers"`

	// QueueDepth is the pool's pending task capacity.
	// Default: 16
	QueueDepth int `mapstructure:"queue_depth"`
}

// TracingConfig holds trace export configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: <data_dir>/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultDataDir returns ~/.namevault, or a relative fallback when the
// home directory is unavailable.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".namevault"
	}
	return filepath.Join(home, ".namevault")
}

// DBPath returns the registry database path under the data directory.
func (c Config) DBPath() string {
	dir := c.DataDir
	if dir == "" {
		dir = DefaultDataDir()
	}
	return filepath.Join(dir, "registry.db")
}

// TracingProviderConfig converts the user-facing tracing settings into the
// tracing subsystem's config, filling in derived defaults.
func (c Config) TracingProviderConfig() tracing.Config {
	tc := tracing.DefaultConfig()
	tc.Enabled = c.Tracing.Enabled
	if c.Tracing.Exporter != "" {
		tc.Exporter = c.Tracing.Exporter
	}
	tc.FilePath = c.Tracing.FilePath
	if tc.FilePath == "" {
		dir := c.DataDir
		if dir == "" {
			dir = DefaultDataDir()
		}
		tc.FilePath = filepath.Join(dir, "traces", "traces.jsonl")
	}
	if c.Tracing.OTLPEndpoint != "" {
		tc.OTLPEndpoint = c.Tracing.OTLPEndpoint
	}
	if c.Tracing.SampleRate > 0 {
		tc.SampleRate = c.Tracing.SampleRate
	}
	return tc
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DataDir: DefaultDataDir(),
		Registry: RegistryConfig{
			QueueSize: 100,
			CacheTTL:  0,
		},
		Pool: PoolConfig{
			Workers:    4,
			QueueDepth: 16,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the configuration for errors. Empty values use defaults.
func Validate(cfg Config) error {
	if cfg.Registry.QueueSize < 0 {
		return fmt.Errorf("registry.queue_size must not be negative, got %d", cfg.Registry.QueueSize)
	}
	if cfg.Pool.Workers < 0 {
		return fmt.Errorf("pool.workers must not be negative, got %d", cfg.Pool.Workers)
	}
	if cfg.Pool.QueueDepth < 0 {
		return fmt.Errorf("pool.queue_depth must not be negative, got %d", cfg.Pool.QueueDepth)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tc TracingConfig) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	if tc.Enabled && tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Namevault Configuration

# Directory holding the registry database (default: ~/.namevault)
# data_dir: /path/to/data

# Resolver settings
registry:
  # Capacity of the resolution actor's inbox. Callers suspend, not fail,
  # when the inbox is full.
  queue_size: 100

  # Read cache lifetime for lookups. 0 disables the cache.
  # cache_ttl: 30s

# Worker pool executing storage transactions
pool:
  workers: 4
  queue_depth: 16

# Trace export configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.namevault/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
