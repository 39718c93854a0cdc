package main

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lab-inventory/internal/adapter/repository/gormstore"
	"lab-inventory/internal/usecase/account"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register the first department and admin on an empty install",
	Long: `seed creates SEED_DEPARTMENT if missing and, while no active admin
exists, an admin account SEED_ADMIN_EMAIL holding DEFAULT_ADMIN_PASSWORD.
It is safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.SeedAdminEmail == "" {
			return errors.New("SEED_ADMIN_EMAIL is required")
		}
		gdb, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDB(gdb)

		if err := gormstore.Migrate(cmd.Context(), gdb); err != nil {
			return err
		}
		uc := account.NewUsecase(gormstore.NewGormUoW(gdb, cfg.LockTimeout()), passwords(cfg))
		created, err := uc.Seed(cmd.Context(), account.SeedInput{
			Department: cfg.SeedDepartment,
			AdminName:  cfg.SeedAdminName,
			AdminEmail: cfg.SeedAdminEmail,
		})
		if err != nil {
			return err
		}
		if created == nil {
			log.Info().Msg("active admin already present, nothing seeded")
			return nil
		}
		log.Info().Str("id", created.ID).Str("email", created.Email).Msg("admin seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
