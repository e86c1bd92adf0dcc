package middleware_test

import (
	"net/http/httptest"
	"testing"

	"aptilab/internal/domain"
	"aptilab/internal/metrics"
	"aptilab/internal/middleware"
	"aptilab/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.RequestIDFrom(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.True(t, util.IsULID(resp.Header.Get(middleware.RequestIDHeader)))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-chosen")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-chosen", resp.Header.Get(middleware.RequestIDHeader))
}

func TestRequestLoggerAndMetrics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestID(), middleware.RequestLogger(zap.New(core)), middleware.Metrics(m))
	app.Get("/api/user-results/:email", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/api/fail", func(c *fiber.Ctx) error {
		return domain.NewResultNotFoundError("x@y.z")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/api/user-results/a@b.com", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/api/user-results/c@d.com", nil))
	require.NoError(t, err)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 3)
	assert.Equal(t, int64(404), entries[2].ContextMap()["status"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/user-results/:email", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/fail", "404")))
}
