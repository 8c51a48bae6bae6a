package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels.
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultNotFound = "not_found"
	ResultNoOp     = "noop"
	ResultWritten  = "written"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scene_sync_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scene_sync_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Scene metrics
	SceneLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scene_sync_scene_loads_total",
			Help: "Total scene loads by result",
		},
		[]string{"result"}, // ok, not_found, error
	)

	SceneSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scene_sync_scene_saves_total",
			Help: "Total scene saves by result",
		},
		[]string{"result"}, // written, noop, error
	)

	// File metrics
	FileItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scene_sync_file_items_total",
			Help: "Total file transfer items by operation and result",
		},
		[]string{"operation", "result"}, // upload|download, ok|error
	)

	// Infrastructure metrics
	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scene_sync_store_latency_seconds",
			Help:    "Backing store operation latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"}, // fetch, upsert, put_object, get_object
	)
)

// ObserveStore records the latency of a backing store operation started at start.
func ObserveStore(operation string, start time.Time) {
	StoreLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// Middleware records request count and duration per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// Route patterns keep label cardinality bounded (room ids never become labels).
		route := c.Route().Path
		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
