package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sorenhq/namevault/internal/registry/resolver"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Resolve a name to its identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResolver(func(ctx context.Context, h *resolver.Handle) error {
			uid, err := h.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printMapping(args[0], uid)
		})
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
