package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	httpadp "lab-inventory/internal/adapter/http"
	"lab-inventory/internal/adapter/middleware"
	"lab-inventory/internal/adapter/notify"
	"lab-inventory/internal/adapter/repository/gormstore"
	"lab-inventory/internal/infrastructure/cache"
	"lab-inventory/internal/metrics"
	"lab-inventory/internal/usecase/account"
	"lab-inventory/internal/usecase/auth"
	ucpermission "lab-inventory/internal/usecase/permission"
	ucrequest "lab-inventory/internal/usecase/request"
	ucsnapshot "lab-inventory/internal/usecase/snapshot"
	"lab-inventory/internal/usecase/stock"
	"lab-inventory/pkg/retry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.AppPort = port
		}

		gdb, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeDB(gdb)
		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := gormstore.Migrate(ctx, gdb); err != nil {
				return err
			}
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}

		rdb, err := cache.OpenRedis(ctx, cache.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB, Password: cfg.RedisPassword})
		if err != nil {
			return err
		}
		defer rdb.Close()

		logger := log.Logger
		tx := gormstore.NewGormUoW(gdb, cfg.LockTimeout())
		alerts := notify.NewRedisPublisher(rdb, notify.DefaultChannel)
		policy := retry.Default
		policy.Attempts = cfg.ReviewRetryAttempts

		e := httpadp.NewServer(httpadp.Deps{
			Auth: auth.NewUsecase(gormstore.NewUserRepository(gdb), gormstore.NewAuditRepository(gdb),
				auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL())),
			Requests: ucrequest.NewUsecase(tx,
				ucrequest.WithRetry(policy),
				ucrequest.WithNotifier(alerts),
				ucrequest.WithLogger(logger.With().Str("component", "review").Logger()),
			),
			Stock:          stock.NewUsecase(tx, alerts, logger.With().Str("component", "stock").Logger()),
			Accounts:       account.NewUsecase(tx, passwords(cfg)),
			Departments:    ucpermission.NewUsecase(tx, gormstore.NewPermissionRepository(gdb)),
			Snapshots:      ucsnapshot.NewUsecase(tx, gormstore.NewSnapshotRepository(gdb), passwords(cfg)),
			DB:             sqlDB,
			Redis:          rdb,
			IdempotencyTTL: cfg.IdempotencyTTL(),
			AllowedOrigins: cfg.AllowedOrigins(),
			LoginLimiter:   middleware.NewRateLimiter(30, 5*time.Minute, "Too many authentication attempts. Try again shortly."),
			Logger:         logger,
		})

		go sampleDBStats(ctx, gdb)

		srv := &http.Server{
			Addr:              ":" + cfg.AppPort,
			Handler:           e,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info().Msg("server exited")
		return nil
	},
}

// sampleDBStats refreshes the pool gauge until ctx ends.
func sampleDBStats(ctx context.Context, gdb *gorm.DB) {
	t := time.NewTicker(15 * time.Second)
	defer t.Stop()
	for {
		if err := metrics.UpdateDBConnections(gdb); err != nil {
			log.Warn().Err(err).Msg("sample db stats")
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("port", "", "override APP_PORT")
	serveCmd.Flags().Bool("migrate", false, "run schema migration before serving")
}
