package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sorenhq/namevault/internal/infrastructure/sqlite"
	"github.com/sorenhq/namevault/internal/presentation"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check registry integrity",
	Long: `Scan the whole registry for integrity problems: stored values that
are not valid 16-byte identifiers, and distinct names mapped to the same
identifier. Exits non-zero when any problem is found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(ctx context.Context, repo *sqlite.MappingRepository) error {
			issues, err := repo.Verify(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				formatter := presentation.NewFormatter(os.Stdout)
				if issues == nil {
					issues = []sqlite.Issue{}
				}
				if err := formatter.FormatResult(issues); err != nil {
					return err
				}
			} else {
				for _, issue := range issues {
					fmt.Printf("%s: %s\n", issue.Name, issue.Reason)
				}
				if len(issues) == 0 {
					fmt.Println("ok")
				}
			}

			if len(issues) > 0 {
				return fmt.Errorf("found %d integrity problem(s)", len(issues))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
