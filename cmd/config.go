package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sorenhq/namevault/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and update the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the configuration file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(activeConfigPath())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a single setting, preserving the rest of the file",
	Long: `Update a single setting in the configuration file. Comments and
unrelated sections are left untouched.

Supported keys:
  data_dir
  registry.queue_size
  registry.cache_ttl
  pool.workers
  pool.queue_depth`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := activeConfigPath()
		if err := applySetting(path, args[0], args[1], cfg); err != nil {
			return err
		}
		fmt.Printf("updated %s in %s\n", args[0], path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// activeConfigPath returns the config file this invocation resolved,
// falling back to the default user config location when none was found.
func activeConfigPath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".namevault", "config.yaml")
	}
	return filepath.Join(home, ".config", "namevault", "config.yaml")
}

// applySetting validates and persists one dotted-key setting. current
// supplies the sibling values of a section so a partial update never
// clobbers them.
func applySetting(configPath, key, value string, current config.Config) error {
	switch key {
	case "data_dir":
		if value == "" {
			return fmt.Errorf("data_dir cannot be empty")
		}
		return config.SaveDataDir(configPath, value)

	case "registry.queue_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("registry.queue_size must be a positive integer, got %q", value)
		}
		reg := current.Registry
		reg.QueueSize = n
		return config.SaveRegistry(configPath, reg)

	case "registry.cache_ttl":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("registry.cache_ttl must be a positive duration, got %q", value)
		}
		reg := current.Registry
		reg.CacheTTL = d
		return config.SaveRegistry(configPath, reg)

	case "pool.workers":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("pool.workers must be a positive integer, got %q", value)
		}
		pc := current.Pool
		pc.Workers = n
		return config.SavePool(configPath, pc)

	case "pool.queue_depth":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("pool.queue_depth must be a positive integer, got %q", value)
		}
		pc := current.Pool
		pc.QueueDepth = n
		return config.SavePool(configPath, pc)

	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}
