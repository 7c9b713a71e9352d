package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean all migrated data from the destination",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := GetDestinationConfig()
		if err != nil {
			return err
		}
		fmt.Printf("🏀 Connected to destination (%s)\n", cfg.URL)

		dest, err := openDestination()
		if err != nil {
			return err
		}
		defer dest.Close()

		tables, err := loadTables()
		if err != nil {
			return err
		}

		// Dependents first, reverse of the population order.
		cleaned := 0
		for i := len(tables) - 1; i >= 0; i-- {
			t := tables[i]
			if err := dest.Clear(ctx, t); err != nil {
				log.Printf("Warning: failed to clean %s: %v (continuing...)", t.Name, err)
				continue
			}
			cleaned++
		}

		log.Printf("Cleaned %d/%d tables", cleaned, len(tables))
		if cleaned < len(tables) {
			return fmt.Errorf("%d table(s) could not be cleaned", len(tables)-cleaned)
		}
		log.Println("Destination Cleaned Successfully!")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)
}
