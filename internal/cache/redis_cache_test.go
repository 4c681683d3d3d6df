package cache_test

import (
	"bytes"
	"testing"
	"time"

	"stockroom/internal/cache"
	"stockroom/internal/dto"
	"stockroom/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestRedisStockCache_UnreachableServerIsAMiss(t *testing.T) {
	var buf bytes.Buffer
	cfg := cache.Config{Addr: "127.0.0.1:1", TTL: time.Minute, Timeout: 50 * time.Millisecond}
	c := cache.NewRedisStockCache(cache.NewRedisClient(cfg), cfg, logger.NewWithOutput(&buf, "warn", "json"))
	defer c.Close()

	c.Set([]dto.Stock{{ProductID: 1, ProductName: "Intel i9"}})
	stock, ok := c.Get()
	c.Invalidate()

	assert.False(t, ok)
	assert.Nil(t, stock)
	assert.Contains(t, buf.String(), "redis SET failed")
	assert.Contains(t, buf.String(), "redis GET failed")
}
