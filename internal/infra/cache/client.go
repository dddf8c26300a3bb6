// Package cache holds the Redis-backed adapters: rate limiting, webhook event
// markers and the small key-value store used by the identity verifier.
package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
)

type Client struct {
	rdb    *redis.Client
	prefix string
}

// NewClient connects and pings Redis. The connection is closed again when the
// ping fails.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errs.Wrap(err, "redis: ping")
	}
	return &Client{rdb: rdb, prefix: cfg.Prefix}, nil
}

// NewClientFrom wraps an existing driver client.
func NewClientFrom(rdb *redis.Client, prefix string) *Client {
	return &Client{rdb: rdb, prefix: prefix}
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errs.Wrap(err, "redis: ping")
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) key(parts ...string) string {
	k := c.prefix
	for _, p := range parts {
		k += p
	}
	return k
}
