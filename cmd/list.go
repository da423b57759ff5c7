package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sorenhq/namevault/internal/presentation"
	"github.com/sorenhq/namevault/internal/registry/resolver"
	"github.com/sorenhq/namevault/internal/watcher"
)

var listWatch bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered names and their identifiers",
	Long: `List every registered (name, identifier) pair.

With --watch, the listing is reprinted whenever another process changes
the registry database. Stop with Ctrl+C.

Examples:
  # One-shot listing
  namevault list

  # Machine-readable output
  namevault list --json | jq '.[].name'

  # Follow changes made by other processes
  namevault list --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResolver(func(ctx context.Context, h *resolver.Handle) error {
			if err := printEntries(ctx, h); err != nil {
				return err
			}
			if !listWatch {
				return nil
			}
			return watchEntries(ctx, h)
		})
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false,
		"reprint the listing when the database changes")
	rootCmd.AddCommand(listCmd)
}

func printEntries(ctx context.Context, h *resolver.Handle) error {
	entries, err := h.List(ctx)
	if err != nil {
		return err
	}

	formatter := presentation.NewFormatter(os.Stdout)
	dtos := presentation.FromDomainEntries(entries)
	if jsonOutput {
		return formatter.FormatEntriesJSON(dtos)
	}
	return formatter.FormatEntriesTable(dtos)
}

// watchEntries reprints the listing on every database change until the
// process is interrupted.
func watchEntries(ctx context.Context, h *resolver.Handle) error {
	w, err := watcher.New(watcher.DefaultConfig(cfg.DBPath()))
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-changes:
			if err := printEntries(ctx, h); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}
