// Package redis connects the distributed cache backing patient and blocked
// access lookups.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"healthgateway/internal/platform/config"
	"healthgateway/pkg/platform/cacheprovider"
)

type Client struct {
	*redis.Client
}

// New dials and pings Redis. An empty URL means Redis is not configured and
// yields a nil client with no error.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{Client: rdb}, nil
}

// Cache exposes the client as a cache provider.
func (c *Client) Cache() *cacheprovider.RedisCache {
	return cacheprovider.NewRedisCache(c.Client)
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
