package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/abenherik/nba-milestones-sub001/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local SQL execution endpoint compatible with the uploader",
	RunE: func(cmd *cobra.Command, args []string) error {
		key := viper.GetString("server.key")
		if key == "" {
			return fmt.Errorf("server.key is required (set it in nbasync.yaml or via --key)")
		}

		dbPath := viper.GetString("server.database")
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return fmt.Errorf("failed to open endpoint db: %w", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to endpoint db: %w", err)
		}

		srv := server.New(db, key)
		srv.MaxBody = viper.GetInt64("server.max_body")

		log.Printf("Execution endpoint listening on %s (db: %s)", serveAddr, dbPath)
		return http.ListenAndServe(serveAddr, srv.Router())
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().String("key", "", "Authorization key clients must present")
	serveCmd.Flags().String("database", "./endpoint.db", "SQLite database the endpoint executes against")
	serveCmd.Flags().Int64("max-body", server.DefaultMaxBody, "Request body cap in bytes (must exceed the export chunk budget plus JSON overhead)")

	viper.BindPFlag("server.key", serveCmd.Flags().Lookup("key"))
	viper.BindPFlag("server.database", serveCmd.Flags().Lookup("database"))
	viper.BindPFlag("server.max_body", serveCmd.Flags().Lookup("max-body"))
	viper.SetDefault("server.max_body", server.DefaultMaxBody)
}
