package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lab-inventory/internal/adapter/repository/gormstore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		gdb, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDB(gdb)

		if err := gormstore.Migrate(cmd.Context(), gdb); err != nil {
			return err
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
