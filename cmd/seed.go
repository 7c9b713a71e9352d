package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/abenherik/nba-milestones-sub001/internal/seed"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create and fill a local milestones database with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("source.path")
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return fmt.Errorf("failed to open source db: %w", err)
		}
		defer db.Close()

		log.Printf("Seeding %s (%d teams, %d seasons, %d players)...",
			path, seedOpts.Teams, seedOpts.Seasons, seedOpts.Players)
		if err := seed.Run(cmd.Context(), db, seedOpts); err != nil {
			return err
		}
		log.Println("Seed Done!")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedOpts.Teams, "teams", 30, "Number of teams to generate")
	seedCmd.Flags().IntVar(&seedOpts.Seasons, "seasons", 10, "Number of seasons to generate")
	seedCmd.Flags().IntVar(&seedOpts.Players, "players", 150, "Number of players to generate")
	seedCmd.Flags().Int64Var(&seedOpts.Seed, "seed", 0, "Random seed (0 = random each run)")
}
