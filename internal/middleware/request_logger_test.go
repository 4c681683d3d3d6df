package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"stockroom/internal/middleware"
	"stockroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(buf *bytes.Buffer) *fiber.App {
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger.NewWithOutput(buf, "info", "json")))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "nope"})
	})
	return app
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
	require.NoError(t, err)
	generated := resp.Header.Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, generated)

	req := httptest.NewRequest("GET", "/ok", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(middleware.RequestIDHeader))
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)

	req := httptest.NewRequest("GET", "/missing", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, float64(404), entry["status_code"])
	assert.Equal(t, "/missing", entry["path"])
}
