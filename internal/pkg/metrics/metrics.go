package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geowatch",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geowatch",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geowatch",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Collector gateway metrics
	CollectorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geowatch",
		Subsystem: "collector",
		Name:      "requests_total",
		Help:      "Total requests issued to the collection backend",
	}, []string{"operation", "outcome"})

	ArchiveFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geowatch",
		Subsystem: "collector",
		Name:      "archive_fallbacks_total",
		Help:      "Total map-data requests that fell back from live to archive",
	})

	RefreshEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geowatch",
		Subsystem: "refresh",
		Name:      "events_total",
		Help:      "Total view refresh events published after mutations",
	}, []string{"view"})

	ExportRows = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geowatch",
		Subsystem: "export",
		Name:      "rows_total",
		Help:      "Total tweet rows written to CSV exports",
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "geowatch",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	SessionHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geowatch",
		Subsystem: "session",
		Name:      "lookups_total",
		Help:      "Total session store lookups",
	}, []string{"outcome"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
