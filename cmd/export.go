package cmd

import (
	"fmt"
	"log"

	"github.com/abenherik/nba-milestones-sub001/internal/export"
	"github.com/abenherik/nba-milestones-sub001/internal/migrate"
	"github.com/abenherik/nba-milestones-sub001/internal/schema"
	"github.com/abenherik/nba-milestones-sub001/internal/transport"

	"github.com/spf13/cobra"
)

var (
	exportDir    string
	chunkBytes   int
	insertBatch  int
	exportTables []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Serialize the migration into SQL script chunks instead of a live write",
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
		tables, err = filterTables(tables, exportTables)
		if err != nil {
			return err
		}

		builder := export.NewBuilder(chunkBytes)
		script := transport.NewScript(builder, insertBatch)
		stats := migrate.NewStats()

		m := &migrate.Migrator{
			Source:    src,
			Transport: script,
			Stats:     stats,
			Hooks: migrate.Hooks{
				OnTableDone: func(t *schema.Table, migrated int64) {
					log.Printf("Serialized %s: %d rows", t.Name, migrated)
				},
			},
		}
		if err := m.Run(ctx, tables); err != nil {
			return err
		}

		chunks := builder.Chunks()
		paths, err := export.WriteChunks(exportDir, chunks)
		if err != nil {
			return err
		}

		fmt.Println("\n📊 Export Report:")
		fmt.Printf("Statements : %d\n", builder.Statements)
		fmt.Printf("Rows       : %d\n", builder.TotalRows)
		fmt.Printf("Chunks     : %d written to %s\n", len(paths), exportDir)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "./export", "Directory for the generated chunk files")
	exportCmd.Flags().IntVar(&chunkBytes, "chunk-bytes", export.DefaultChunkBytes, "Byte budget per chunk (keep below the endpoint's request body cap)")
	exportCmd.Flags().IntVar(&insertBatch, "insert-batch", transport.DefaultInsertBatch, "Rows per INSERT statement in the script")
	exportCmd.Flags().StringSliceVarP(&exportTables, "tables", "t", []string{}, "Specific tables to export (comma-separated)")
}
