package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Addr        string
	DB          int
	Password    string
	DialTimeout time.Duration
}

// OpenRedis connects and pings; the caller owns Close.
func OpenRedis(ctx context.Context, o Options) (*redis.Client, error) {
	if o.DialTimeout <= 0 {
		o.DialTimeout = 5 * time.Second
	}
	r := redis.NewClient(&redis.Options{
		Addr:        o.Addr,
		DB:          o.DB,
		Password:    o.Password,
		DialTimeout: o.DialTimeout,
	})
	ctx, cancel := context.WithTimeout(ctx, o.DialTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis ping %s: %w", o.Addr, err)
	}
	log.Info().Str("addr", o.Addr).Int("db", o.DB).Msg("redis: connected")
	return r, nil
}
