package cmd

import (
	"fmt"

	"smartwarga/core/database"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the tables without starting the server.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadConfig()
		if err != nil {
			return err
		}
		defer l.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(db, models()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		l.Info("Database schema is up to date")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
