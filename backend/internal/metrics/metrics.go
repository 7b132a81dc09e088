package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dev server
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPResponseSize      *prometheus.HistogramVec
	HTTPActiveConnections *prometheus.GaugeVec

	// Domain metrics
	PostsCreatedTotal *prometheus.CounterVec
	InteractionsTotal *prometheus.CounterVec
	LoginsTotal       *prometheus.CounterVec

	ErrorsTotal *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all metrics with the default registry
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			HTTPResponseSize: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_response_size_bytes",
					Help:    "HTTP response size in bytes",
					Buckets: prometheus.ExponentialBuckets(100, 10, 7),
				},
				[]string{"method", "path", "status"},
			),
			HTTPActiveConnections: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "http_active_connections",
					Help: "Number of currently active HTTP connections",
				},
				[]string{"method", "path"},
			),

			PostsCreatedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "varta_posts_created_total",
					Help: "Posts created, by category",
				},
				[]string{"category"},
			),
			InteractionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "varta_interactions_total",
					Help: "Likes, comments, ratings and follows, by action",
				},
				[]string{"action"},
			),
			LoginsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "varta_logins_total",
					Help: "Logins, by whether the user was stored or synthesized",
				},
				[]string{"kind"},
			),

			ErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Total number of error responses by code",
				},
				[]string{"code", "path"},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance
func Get() *Metrics {
	return Initialize()
}

// RecordPostCreated counts a new post
func RecordPostCreated(category string) {
	Get().PostsCreatedTotal.WithLabelValues(category).Inc()
}

// RecordInteraction counts a like, unlike, comment, rate, follow or unfollow
func RecordInteraction(action string) {
	Get().InteractionsTotal.WithLabelValues(action).Inc()
}

// RecordLogin counts a login; synthesized is true for throwaway users
func RecordLogin(synthesized bool) {
	kind := "stored"
	if synthesized {
		kind = "synthesized"
	}
	Get().LoginsTotal.WithLabelValues(kind).Inc()
}

// RecordError counts an error response
func RecordError(code, path string) {
	Get().ErrorsTotal.WithLabelValues(code, path).Inc()
}
