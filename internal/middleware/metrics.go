package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	activeRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of currently active HTTP requests",
		},
	)

	dbConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	relayedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_messages_relayed_total",
			Help: "Messages relayed end to end, by kind (message, reply)",
		},
		[]string{"kind"},
	)

	refusedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_deliveries_refused_total",
			Help: "Deliveries refused before transport, by reason (blocked, banned)",
		},
		[]string{"reason"},
	)
)

// Metrics returns a gin middleware that collects Prometheus metrics
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics endpoint itself
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		activeRequests.Inc()

		c.Next()

		activeRequests.Dec()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		// Use the route template to avoid high-cardinality labels
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// SetDBConnectionsActive updates the DB connection gauge (call from main)
func SetDBConnectionsActive(count float64) {
	dbConnectionsActive.Set(count)
}

// CountRelayed records one successfully relayed message
func CountRelayed(kind string) {
	relayedTotal.WithLabelValues(kind).Inc()
}

// CountRefused records one delivery refused by policy
func CountRefused(reason string) {
	refusedTotal.WithLabelValues(reason).Inc()
}
