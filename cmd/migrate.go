package cmd

import (
	"keyless-stay/database"

	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables, indexes and foreign keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}
}
