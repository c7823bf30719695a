package metrics

import (
	"time"

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

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Board metrics track the content of the board and what users do with it
var (
	// ArticlesTotal tracks the number of stored articles
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "board_articles_total",
			Help: "Total number of articles in the database",
		},
	)

	// ArticleCommentsTotal tracks the number of stored comments
	ArticleCommentsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "board_article_comments_total",
			Help: "Total number of article comments in the database",
		},
	)

	// UserAccountsTotal tracks the number of registered accounts
	UserAccountsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "board_user_accounts_total",
			Help: "Total number of user accounts in the database",
		},
	)

	// HashtagsTotal tracks the number of distinct hashtags in use
	HashtagsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "board_hashtags_total",
			Help: "Number of distinct hashtags used by articles",
		},
	)

	// ArticleMutationsTotal counts article and comment writes by outcome
	ArticleMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_article_mutations_total",
			Help: "Article and comment mutations by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	// LoginAttemptsTotal counts login attempts by result
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // result: success, invalid, throttled, error
	)

	// StatsRefreshTotal counts background statistics refresh runs
	StatsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_stats_refresh_total",
			Help: "Statistics refresh runs by status",
		},
		[]string{"status"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
