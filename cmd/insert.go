package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sorenhq/namevault/internal/registry/resolver"
)

var insertCmd = &cobra.Command{
	Use:   "insert <name> <uid>",
	Short: "Restore a known name to identifier mapping",
	Long: `Restore a known (name, identifier) mapping, for example when
re-importing a registry from a dump. Unlike create, insert accepts the
identifier from the caller and overwrites any existing mapping for the
name.

Examples:
  namevault insert movies 0191d9a4-0f2c-7d1e-8123-456789abcdef`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("parsing identifier %q: %w", args[1], err)
		}
		return withResolver(func(ctx context.Context, h *resolver.Handle) error {
			if err := h.Insert(ctx, args[0], uid); err != nil {
				return err
			}
			return printMapping(args[0], uid)
		})
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
