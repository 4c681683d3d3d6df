package services

import "stockroom/internal/dto"

// StockCache keeps the last computed stock listing.
type StockCache interface {
	Get() ([]dto.Stock, bool)
	Set(stock []dto.Stock)
	Invalidate()
}

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// NoopStockCache is used when no cache backend is configured.
type NoopStockCache struct{}

func (NoopStockCache) Get() ([]dto.Stock, bool) { return nil, false }
func (NoopStockCache) Set([]dto.Stock)          {}
func (NoopStockCache) Invalidate()              {}
