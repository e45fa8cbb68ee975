// Package observability exposes Prometheus metrics for the storefront service.
package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Dashboard engine metrics
	DashboardComputeDuration prometheus.Histogram
	DashboardComputeErrors   prometheus.Counter

	// Snapshot cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storefront_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		DashboardComputeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "storefront_dashboard_compute_duration_seconds",
				Help:    "Time spent computing a dashboard snapshot",
				Buckets: prometheus.DefBuckets,
			},
		),
		DashboardComputeErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "storefront_dashboard_compute_errors_total",
				Help: "Total number of failed dashboard snapshot computations",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "storefront_dashboard_cache_hits_total",
				Help: "Total number of dashboard snapshot cache hits",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "storefront_dashboard_cache_misses_total",
				Help: "Total number of dashboard snapshot cache misses",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DashboardComputeDuration,
		m.DashboardComputeErrors,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Handler returns the /metrics HTTP handler for the private registry.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// GinMiddleware records request counts and latencies per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}

// ObserveCompute records one dashboard computation.
func (m *Metrics) ObserveCompute(d time.Duration, err error) {
	m.DashboardComputeDuration.Observe(d.Seconds())
	if err != nil {
		m.DashboardComputeErrors.Inc()
	}
}
