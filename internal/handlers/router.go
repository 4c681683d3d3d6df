package handlers

import (
	"errors"
	"time"

	"stockroom/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// RouteRegistrar is implemented by every handler.
type RouteRegistrar interface {
	RegisterRoutes(router fiber.Router)
}

// HealthCheck reports the state of one dependency.
type HealthCheck func() error

// NewApp builds the Fiber app with middleware, /health, and the handlers mounted under /api.
func NewApp(log *logrus.Logger, checks map[string]HealthCheck, handlers ...RouteRegistrar) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "stockroom",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"message": "Request failed",
				"error":   err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		deps := fiber.Map{}
		for name, check := range checks {
			if err := check(); err != nil {
				deps[name] = err.Error()
				status = fiber.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		body := fiber.Map{
			"status":       "healthy",
			"time":         time.Now().Format(time.RFC3339),
			"dependencies": deps,
		}
		if status != fiber.StatusOK {
			body["status"] = "degraded"
		}
		return c.Status(status).JSON(body)
	})

	api := app.Group("/api")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return app
}
