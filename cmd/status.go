package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sorenhq/namevault/internal/presentation"
	"github.com/sorenhq/namevault/internal/registry/resolver"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show registry status",
	Long:  `Show the registry database location, entry count, file size, and resolver counters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResolver(func(ctx context.Context, h *resolver.Handle) error {
			entries, err := h.List(ctx)
			if err != nil {
				return fmt.Errorf("reading registry (try 'namevault verify'): %w", err)
			}
			stats, err := h.Stats(ctx)
			if err != nil {
				return err
			}

			var sizeBytes int64
			if fi, statErr := os.Stat(cfg.DBPath()); statErr == nil {
				sizeBytes = fi.Size()
			}

			if jsonOutput {
				formatter := presentation.NewFormatter(os.Stdout)
				return formatter.FormatResult(map[string]any{
					"db_path":    cfg.DBPath(),
					"entries":    len(entries),
					"size_bytes": sizeBytes,
					"resolver":   presentation.FromStats(stats),
				})
			}

			fmt.Printf("database: %s\n", cfg.DBPath())
			fmt.Printf("entries:  %d\n", len(entries))
			fmt.Printf("size:     %d bytes\n", sizeBytes)
			fmt.Printf("resolver: %s\n", stats.FormatDisplay())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
