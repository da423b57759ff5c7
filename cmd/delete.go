package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sorenhq/namevault/internal/registry/resolver"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a name from the registry",
	Long: `Remove a name from the registry and print the identifier that was
mapped to it. Deleting an unknown name is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResolver(func(ctx context.Context, h *resolver.Handle) error {
			uid, err := h.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			return printMapping(args[0], uid)
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
