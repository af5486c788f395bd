package redis

import (
	"context"
	"fmt"
	"time"

	"payment-preconfirm/config"

	redisv9 "github.com/redis/go-redis/v9"
)

const defaultDecisionTTL = time.Hour

type Client struct {
	rdb         *redisv9.Client
	decisionTTL time.Duration
}

// NewClient создает новое подключение к Redis
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redisv9.NewClient(&redisv9.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.Redis.DecisionTTL
	if ttl <= 0 {
		ttl = defaultDecisionTTL
	}

	return &Client{rdb: rdb, decisionTTL: ttl}, nil
}

// Close закрывает соединение с Redis
func (c *Client) Close() error {
	return c.rdb.Close()
}
