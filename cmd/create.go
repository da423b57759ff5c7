package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sorenhq/namevault/internal/presentation"
	"github.com/sorenhq/namevault/internal/registry/resolver"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register a name and mint a fresh identifier",
	Long: `Register a name and mint a fresh identifier for it.

Names must be non-empty and contain only ASCII letters, digits, hyphens,
and underscores. Registering a name that already exists is an error; the
existing mapping is left untouched.

Examples:
  # Register a name
  namevault create movies

  # Register and capture the identifier as JSON
  namevault create movies --json | jq -r .uid`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResolver(func(ctx context.Context, h *resolver.Handle) error {
			uid, err := h.Create(ctx, args[0])
			if err != nil {
				return err
			}
			return printMapping(args[0], uid)
		})
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}

// printMapping writes one (name, identifier) pair in the selected format.
func printMapping(name string, uid uuid.UUID) error {
	if jsonOutput {
		formatter := presentation.NewFormatter(os.Stdout)
		return formatter.FormatResult(presentation.EntryDTO{Name: name, UID: uid.String()})
	}
	fmt.Println(uid)
	return nil
}
