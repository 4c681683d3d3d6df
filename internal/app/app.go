// Package app wires configuration, storage, cache, events and services together.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockroom/internal/cache"
	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/handlers"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
	"stockroom/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// stockEventsQueue receives the service's own stock.imported events.
const stockEventsQueue = "stockroom.stock_events"

// App is a fully wired instance of the service.
type App struct {
	Config *config.Config
	Log    *logrus.Logger

	Products   *services.ProductService
	Categories *services.CategoryService
	Stock      *services.StockService
	Discounts  *services.DiscountService

	cache   services.StockCache
	mq      *rabbitmq.Client
	checks  map[string]handlers.HealthCheck
	closers []func() error
}

// New opens the store selected by cfg and builds every service on top of it.
// Redis and RabbitMQ are optional: when unset or unreachable the app runs without them.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Log:    log,
		checks: map[string]handlers.HealthCheck{},
	}

	productRepo, categoryRepo, importRepo, err := a.openStore()
	if err != nil {
		return nil, err
	}

	if cfg.SeedData {
		if _, err := database.SeedCategories(categoryRepo, log); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed data: %w", err)
		}
	}

	a.cache = a.openCache()
	publisher := a.openPublisher()

	a.Products = services.NewProductService(productRepo, categoryRepo, a.cache, log)
	a.Categories = services.NewCategoryService(categoryRepo, productRepo, a.cache, log)
	a.Stock = services.NewStockService(productRepo, categoryRepo, importRepo, a.cache, publisher, log)
	a.Discounts = services.NewDiscountService(productRepo, log)

	return a, nil
}

func (a *App) openStore() (repositories.ProductRepository, repositories.CategoryRepository, repositories.StockImportRepository, error) {
	if a.Config.DBDriver == database.DriverMemory {
		categories := repositories.NewMemoryCategoryRepository()
		a.Log.Info("using in-memory store")
		return repositories.NewMemoryProductRepository(categories), categories, repositories.NewMemoryStockImportRepository(), nil
	}

	db, err := database.Open(a.Config.DBDriver, a.Config.DatabaseURL, a.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	a.closers = append(a.closers, sqlDB.Close)
	a.checks["database"] = sqlDB.Ping

	return repositories.NewGORMProductRepository(db),
		repositories.NewGORMCategoryRepository(db),
		repositories.NewGORMStockImportRepository(db),
		nil
}

func (a *App) openCache() services.StockCache {
	if a.Config.RedisAddr == "" {
		return services.NoopStockCache{}
	}

	cacheCfg := cache.Config{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
		DB:       a.Config.RedisDB,
		TTL:      a.Config.CacheTTL,
	}
	c := cache.NewRedisStockCache(cache.NewRedisClient(cacheCfg), cacheCfg, a.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		a.Log.WithError(err).Warn("redis unreachable, running without stock cache")
		_ = c.Close()
		return services.NoopStockCache{}
	}

	a.closers = append(a.closers, c.Close)
	a.checks["redis"] = func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return c.Ping(ctx)
	}
	a.Log.WithField("addr", a.Config.RedisAddr).Info("stock cache enabled")
	return c
}

func (a *App) openPublisher() services.EventPublisher {
	if a.Config.RabbitMQURL == "" {
		return nil
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{
		URL:      a.Config.RabbitMQURL,
		Exchange: a.Config.RabbitMQExchange,
	}, a.Log)
	if err != nil {
		a.Log.WithError(err).Warn("RabbitMQ unreachable, stock events disabled")
		return nil
	}

	a.mq = client
	a.closers = append(a.closers, client.Close)
	return client
}

// HTTP builds the Fiber app serving the REST API.
func (a *App) HTTP() *fiber.App {
	return handlers.NewApp(a.Log, a.checks,
		handlers.NewProductHandler(a.Products, a.Log),
		handlers.NewCategoryHandler(a.Categories, a.Log),
		handlers.NewStockHandler(a.Stock, a.Log),
		handlers.NewDiscountHandler(a.Discounts, a.Log),
	)
}

// StartEventConsumer listens for stock.imported events, including those of other
// instances, and drops the cached stock listing on each one.
// It is a no-op when RabbitMQ is not configured.
func (a *App) StartEventConsumer() error {
	if a.mq == nil {
		a.Log.Info("RabbitMQ client is not initialized, skipping event consumer")
		return nil
	}
	return a.mq.ConsumeStockEvents(stockEventsQueue, services.StockImportedRoutingKey, a.HandleStockEvent)
}

// HandleStockEvent processes one stock.imported delivery.
func (a *App) HandleStockEvent(msg amqp.Delivery) error {
	var event services.StockImportedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		// Malformed bodies are acked, not requeued.
		a.Log.WithError(err).Warn("dropping malformed stock event")
		return nil
	}

	a.cache.Invalidate()
	a.Log.WithFields(logrus.Fields{
		"batch_id": event.BatchID,
		"created":  event.Created,
		"updated":  event.Updated,
	}).Info("stock import event received")
	return nil
}

// Close releases every resource opened by New, newest first.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
