package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	Driver   string // mysql | postgres | sqlite
	DSN      string
	LogLevel string
}

func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql", "":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func OpenGorm(ctx context.Context, o Options) (*gorm.DB, error) {
	dial, err := Dialector(o.Driver, o.DSN)
	if err != nil {
		return nil, err
	}
	return OpenGormWithDialector(dial, WithLogLevel(o.LogLevel), WithContext(ctx))
}

type openConfig struct {
	ctx   context.Context
	level logger.LogLevel
}

type OpenOption func(*openConfig)

func WithLogLevel(level string) OpenOption {
	return func(c *openConfig) { c.level = gormLevel(level) }
}

func WithContext(ctx context.Context) OpenOption {
	return func(c *openConfig) { c.ctx = ctx }
}

// OpenGormWithDialector opens db on an explicit dialector and pings it.
func OpenGormWithDialector(dial gorm.Dialector, opts ...OpenOption) (*gorm.DB, error) {
	oc := openConfig{ctx: context.Background(), level: logger.Warn}
	for _, o := range opts {
		o(&oc)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         logger.Default.LogMode(oc.level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dial.Name() == "sqlite" {
		// one writer; avoids "database is locked" under concurrent reviews
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(30)
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(oc.ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	log.Info().Str("dialect", dial.Name()).Msg("gorm: connected")
	return db, nil
}

func gormLevel(level string) logger.LogLevel {
	switch level {
	case "debug", "trace":
		return logger.Info
	case "info", "warn":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent", "disabled":
		return logger.Silent
	default:
		return logger.Warn
	}
}
