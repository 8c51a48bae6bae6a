package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/rooms/:roomId/scene", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	for _, room := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/rooms/"+room+"/scene", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	}

	body := scrape(t)
	assert.Contains(t, body, `scene_sync_http_requests_total{method="GET",route="/rooms/:roomId/scene",status="404"}`)
	assert.NotContains(t, body, `route="/rooms/a/scene"`)
}

func scrape(t *testing.T) string {
	t.Helper()
	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	SceneSaves.WithLabelValues(ResultNoOp).Inc()
	ObserveStore("fetch", time.Now())

	body := scrape(t)
	assert.Contains(t, body, "scene_sync_scene_saves_total")
	assert.Contains(t, body, "scene_sync_store_latency_seconds")
}
