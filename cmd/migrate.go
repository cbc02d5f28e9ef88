package cmd

import (
	"foodgram/internal/database"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, database.ParseLogLevel(cfg.DatabaseLog))
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		log.Info().Str("driver", cfg.DatabaseDriver).Msg("Database schema is up to date")
		return nil
	},
}
