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
		Namespace: "mapstamp",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mapstamp",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mapstamp",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Map-building metrics
	URLsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapstamp",
		Subsystem: "maps",
		Name:      "urls_built_total",
		Help:      "Total static map URLs built, by operation kind",
	}, []string{"kind"})

	BuildRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapstamp",
		Subsystem: "maps",
		Name:      "build_rejections_total",
		Help:      "Total URL builds rejected before serialization",
	}, []string{"reason"})

	KeyValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapstamp",
		Subsystem: "maps",
		Name:      "key_validations_total",
		Help:      "Total API key validation probes, by result",
	}, []string{"result"})

	// Snapshot pipeline metrics
	SnapshotsRequested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mapstamp",
		Subsystem: "snapshots",
		Name:      "requested_total",
		Help:      "Total snapshot requests accepted",
	})

	SnapshotsStored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mapstamp",
		Subsystem: "snapshots",
		Name:      "stored_total",
		Help:      "Total snapshots downloaded and stored in the media library",
	})

	SnapshotFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapstamp",
		Subsystem: "snapshots",
		Name:      "failures_total",
		Help:      "Total snapshot processing failures",
	}, []string{"stage"})

	ImageFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mapstamp",
		Subsystem: "fetch",
		Name:      "duration_seconds",
		Help:      "Duration of outbound Static Maps API requests",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	ImageFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mapstamp",
		Subsystem: "fetch",
		Name:      "errors_total",
		Help:      "Total outbound fetch transport failures",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapstamp",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapstamp",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapstamp",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapstamp",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapstamp",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
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

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// UpdateDBPoolMetrics updates database pool gauges from pgx pool stats.
// Takes a small interface so this package stays free of a pgxpool import.
func UpdateDBPoolMetrics(stat interface{}) {
	type poolStat interface {
		AcquiredConns() int32
		IdleConns() int32
		TotalConns() int32
	}

	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}
