// Package notify publishes low-stock alerts to Redis subscribers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"lab-inventory/internal/domain/inventory"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "inventory:low_stock"

type RedisPublisher struct {
	rdb     redis.UniversalClient
	channel string
}

var _ inventory.Notifier = (*RedisPublisher)(nil)

func NewRedisPublisher(rdb redis.UniversalClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) NotifyLowStock(ctx context.Context, a inventory.LowStockAlert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}
