package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds Redis connection settings.
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
}

// Client wraps go-redis with an enabled switch so the service runs
// without a cache when Redis is not deployed.
type Client struct {
	rdb     *redis.Client
	enabled bool
	log     *zap.Logger
}

// ErrCacheMiss is returned when a key is absent or caching is disabled.
var ErrCacheMiss = redis.Nil

func NewClient(cfg Config, log *zap.Logger) *Client {
	if !cfg.Enabled {
		return &Client{enabled: false, log: log}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, caching disabled",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.Error(err),
		)
		return &Client{enabled: false, log: log}
	}

	log.Info("Connected to Redis",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("database", cfg.DB),
	)

	return &Client{rdb: rdb, enabled: true, log: log}
}

// IsEnabled reports whether caching is active.
func (c *Client) IsEnabled() bool {
	return c.enabled
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if !c.enabled {
		return "", ErrCacheMiss
	}
	return c.rdb.Get(ctx, key).Result()
}

func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if !c.enabled {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// DelPattern removes every key matching the glob pattern. Used for
// cache invalidation after writes.
func (c *Client) DelPattern(ctx context.Context, pattern string) error {
	if !c.enabled {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	if !c.enabled {
		return fmt.Errorf("redis disabled")
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}
