package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"lab-inventory/internal/config"
	"lab-inventory/internal/infrastructure/db"
	"lab-inventory/internal/usecase/account"
)

// loadConfig reads and validates configuration, then sets up the global logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("env-dir")
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogger: dev is pretty console output, production is JSON.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func openDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	gdb, err := db.OpenGorm(ctx, db.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), LogLevel: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	return gdb, nil
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func passwords(cfg *config.Config) account.DefaultPasswords {
	return account.DefaultPasswords{Admin: cfg.DefaultAdminPassword, Staff: cfg.DefaultStaffPassword}
}
