package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lab-inventory",
	Short: "Lab inventory request review and stock reconciliation API",
	Long: `lab-inventory serves the staff request / admin review workflow over a
department-scoped inventory, keeping stock, request state and the audit
trail consistent under concurrent reviews.`,
	SilenceUsage: true,
}

// Execute runs the root command; it is called once by main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env-dir", ".", "directory holding an optional .env file")
}
