package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration buckets span fast lookups (5ms) to slow list scans (10s).
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Database metrics
var (
	// DBQueryDuration measures pool operations by kind and outcome
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "status"},
	)

	DBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_pool_connections",
			Help: "Connections in the pool by state",
		},
		[]string{"state"},
	)

	DBPoolMaxOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_max_open_connections",
			Help: "Configured maximum number of open connections",
		},
	)

	// DBPoolWaitCount is the cumulative number of acquisitions that had to wait
	DBPoolWaitCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_wait_count",
			Help: "Total number of connections waited for",
		},
	)

	DBPoolWaitSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_wait_duration_seconds",
			Help: "Total time blocked waiting for a new connection",
		},
	)

	DBPoolUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_up",
			Help: "1 if the last connectivity probe succeeded, 0 otherwise",
		},
	)
)

// Business metrics
var (
	ArticlesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_created_total",
			Help: "Total number of articles created",
		},
	)

	ArticlesUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_updated_total",
			Help: "Total number of article updates that matched a row",
		},
	)

	ArticlesDeactivatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_deactivated_total",
			Help: "Total number of article deactivations that matched a row",
		},
	)

	// AuthRejectionsTotal counts API key rejections by reason (missing, invalid)
	AuthRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_rejections_total",
			Help: "Requests rejected by the API key gate",
		},
		[]string{"reason"},
	)

	// ValidationRejectionsTotal counts requests rejected by a validation gate
	ValidationRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_rejections_total",
			Help: "Requests rejected by schema validation",
		},
		[]string{"target"},
	)
)
