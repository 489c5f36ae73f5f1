package middleware

// Prometheus instrumentation for HTTP traffic. Labels stay bounded: method,
// the registered route template (e.g. /api/v1/quotes/:id, or "unmatched"),
// and the numeric status.
//
// Besides the generic request metrics, three API-specific counters are kept:
//   - record_update_conflicts_total: PUTs rejected with 409 because the stored
//     version moved on; a rising rate means clients race on the same records.
//   - idempotent_replays_total: creates answered from a stored outcome.
//   - http_rate_limited_total: requests turned away by the rate limiter.

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// Status is left out to keep histogram cardinality low.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// Buckets sized for JSON record lists.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_size_bytes",
			Help: "Size of HTTP responses in bytes.",
			Buckets: []float64{
				200, 500, 1 << 10, 2 << 10, 5 << 10,
				10 << 10, 25 << 10, 50 << 10,
				100 << 10, 250 << 10, 500 << 10,
				1 << 20, 2 << 20, 5 << 20,
			},
		},
		[]string{"method", "path"},
	)

	updateConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_update_conflicts_total",
			Help: "Updates rejected because the record was modified concurrently.",
		},
		[]string{"path"},
	)

	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected with 429 by the per-client rate limiter.",
		},
		[]string{"path"},
	)

	idemReplays = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idempotent_replays_total",
			Help: "Create requests answered from a stored idempotent outcome.",
		},
		[]string{"path"},
	)
)

// unmatchedRoute labels requests no route matched, so scanners cannot blow up
// label cardinality.
const unmatchedRoute = "unmatched"

func metricRoute(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return unmatchedRoute
}

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize, updateConflicts, rateLimited, idemReplays)
}

// Metrics returns a Gin middleware that instruments requests with Prometheus.
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// A response size of -1 (nothing written, e.g. 204) is not observed.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		dur := time.Since(start).Seconds()
		path := metricRoute(c)
		method := c.Request.Method
		code := c.Writer.Status()
		size := c.Writer.Size()

		httpReqs.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
		httpLat.WithLabelValues(method, path).Observe(dur)
		if size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
		if method == http.MethodPut && code == http.StatusConflict {
			updateConflicts.WithLabelValues(path).Inc()
		}
		if IsReplay(c) && code < http.StatusBadRequest {
			idemReplays.WithLabelValues(path).Inc()
		}
	}
}
