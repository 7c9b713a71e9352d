package cmd

import (
	"fmt"
	"log"

	"github.com/abenherik/nba-milestones-sub001/internal/ledger"
	"github.com/abenherik/nba-milestones-sub001/internal/migrate"
	"github.com/abenherik/nba-milestones-sub001/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	resume        bool
	strictDDL     bool
	migrateDryRun bool
	migrateTables []string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the local milestones database to the hosted destination",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		src, err := openSource()
		if err != nil {
			return err
		}
		defer src.Close()

		tables, err := loadTables()
		if err != nil {
			return err
		}
		tables, err = filterTables(tables, migrateTables)
		if err != nil {
			return err
		}

		if migrateDryRun {
			log.Println("[SIMULATION] Dry-Run Mode Active: No data will be written.")
			fmt.Printf("🔍 Migration Plan (Dependency Order):\n")
			for i, t := range tables {
				fmt.Printf("[%02d] %-22s chunk=%d (depends on: %v)\n", i+1, t.Name, t.ChunkSize, t.DependsOn)
			}
			return nil
		}

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

		stats := migrate.NewStats()

		// 1. Replay the source schema so a fresh destination has tables.
		ddl, err := src.ListTableDDL(ctx)
		if err != nil {
			return err
		}
		if err := migrate.ReplaySchema(ctx, ddl, dest, strictDDL, stats); err != nil {
			return err
		}

		// 2. Resume ledger
		ledgerPath := viper.GetString("ledger.path")
		var led *ledger.Ledger
		if resume {
			led, err = ledger.Load(ledgerPath)
			if err != nil {
				log.Printf("Warning: could not resume (%v), starting a fresh run", err)
				led = ledger.New(ledgerPath, viper.GetString("source.path"))
			} else {
				log.Printf("Resuming run %s", led.RunID)
			}
		} else {
			led = ledger.New(ledgerPath, viper.GetString("source.path"))
		}

		// 3. Migrate with per-table progress bars.
		uiprogress.Start()
		bars := make(map[string]*uiprogress.Bar)
		m := &migrate.Migrator{
			Source:    src,
			Transport: dest,
			Ledger:    led,
			Stats:     stats,
			Hooks: migrate.Hooks{
				OnTableStart: func(t *schema.Table, total int64) {
					name := t.Name
					bar := uiprogress.AddBar(int(total)).AppendCompleted().PrependElapsed()
					bar.PrependFunc(func(b *uiprogress.Bar) string {
						return fmt.Sprintf("%-22s", name)
					})
					bars[name] = bar
				},
				OnPage: func(t *schema.Table, migrated, total int64) {
					if bar, ok := bars[t.Name]; ok {
						bar.Set(int(migrated))
					}
				},
			},
		}
		runErr := m.Run(ctx, tables)
		uiprogress.Stop()
		if runErr != nil {
			return runErr
		}

		// 4. Verification Step (advisory)
		migrate.Verify(ctx, src, dest, tables, stats)

		fmt.Println("\n📊 Summary Report:")
		fmt.Println(stats.Summary())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVar(&resume, "resume", false, "Resume the previous interrupted run from its ledger")
	migrateCmd.Flags().BoolVar(&strictDDL, "strict-ddl", false, "Fail fast on schema replay errors instead of continuing")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Print the migration plan without writing to the destination")
	migrateCmd.Flags().StringSliceVarP(&migrateTables, "tables", "t", []string{}, "Specific tables to migrate (comma-separated)")
	migrateCmd.Flags().String("ledger", "", "Path of the resume ledger file")
	viper.BindPFlag("ledger.path", migrateCmd.Flags().Lookup("ledger"))
}
