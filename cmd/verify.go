package cmd

import (
	"fmt"

	"github.com/abenherik/nba-milestones-sub001/internal/migrate"

	"github.com/spf13/cobra"
)

var verifyTables []string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare source and destination row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		src, err := openSource()
		if err != nil {
			return err
		}
		defer src.Close()

		dest, err := openDestination()
		if err != nil {
			return err
		}
		defer dest.Close()

		tables, err := loadTables()
		if err != nil {
			return err
		}
		tables, err = filterTables(tables, verifyTables)
		if err != nil {
			return err
		}

		stats := migrate.NewStats()
		mismatches := migrate.Verify(ctx, src, dest, tables, stats)
		if mismatches == 0 {
			fmt.Printf("✓ All %d tables match\n", len(tables))
			return nil
		}
		fmt.Printf("! %d of %d tables out of sync (see warnings above)\n", mismatches, len(tables))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringSliceVarP(&verifyTables, "tables", "t", []string{}, "Specific tables to verify (comma-separated)")
}
