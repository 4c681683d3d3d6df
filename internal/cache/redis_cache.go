// Package cache keeps the stock listing in Redis between catalog changes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"stockroom/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const stockKey = "stockroom:stock"

// Config holds the Redis connection details and cache lifetime.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Timeout  time.Duration
}

// RedisStockCache stores the stock listing as one JSON value.
// Redis failures are logged and reported as cache misses.
type RedisStockCache struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
	log     *logrus.Logger
}

// NewRedisClient builds a go-redis client from cfg.
func NewRedisClient(cfg Config) *redis.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   1,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
}

func NewRedisStockCache(client *redis.Client, cfg Config, log *logrus.Logger) *RedisStockCache {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	return &RedisStockCache{
		client:  client,
		ttl:     cfg.TTL,
		timeout: timeout,
		log:     log,
	}
}

// Ping checks that Redis is reachable.
func (c *RedisStockCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisStockCache) Get() ([]dto.Stock, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	data, err := c.client.Get(ctx, stockKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).Warn("redis GET failed")
		}
		return nil, false
	}

	var stock []dto.Stock
	if err := json.Unmarshal(data, &stock); err != nil {
		c.log.WithError(err).Warn("cached stock is corrupt, dropping it")
		c.Invalidate()
		return nil, false
	}
	return stock, true
}

func (c *RedisStockCache) Set(stock []dto.Stock) {
	data, err := json.Marshal(stock)
	if err != nil {
		c.log.WithError(err).Warn("failed to marshal stock for caching")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.client.Set(ctx, stockKey, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("redis SET failed")
	}
}

func (c *RedisStockCache) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.client.Del(ctx, stockKey).Err(); err != nil {
		c.log.WithError(err).Warn("redis DEL failed")
	}
}

// Close releases the underlying client.
func (c *RedisStockCache) Close() error {
	return c.client.Close()
}
