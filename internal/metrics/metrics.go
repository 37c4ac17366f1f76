// Package metrics exposes Prometheus collectors for the recommendation pipeline.
//
// Collectors are registered on the default registry at init and served at /metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "filmyfim"

var (
	// UpstreamFailures counts failed calls to external providers.
	// Labels: provider (tmdb, llm), operation (search, details, discover, complete, translate)
	UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_failures_total",
		Help:      "Failed calls to external providers.",
	}, []string{"provider", "operation"})

	// BackfillAttempts counts genre picks made to top up a recommendation set.
	// Labels: outcome (added, empty, duplicate, error)
	BackfillAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backfill_attempts_total",
		Help:      "Genre sampling attempts made to fill recommendation sets.",
	}, []string{"outcome"})

	RecommendationsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recommendations_returned",
		Help:      "Number of records in each recommendation response.",
		Buckets:   []float64{0, 1, 2, 3, 4, 5, 6},
	})

	FeaturedReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "featured_returned",
		Help:      "Number of records in each featured-movies response.",
		Buckets:   []float64{0, 1, 2, 3},
	})

	// BreakerState is 0 closed, 1 half-open, 2 open (gobreaker ordering).
	BreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_state",
		Help:      "Circuit breaker state per provider.",
	}, []string{"name"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.05, .1, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method", "route"})
)

// ObserveHTTP records one served request.
func ObserveHTTP(method, route string, status int, seconds float64) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

// Handler serves the default registry uncompressed; response compression is left
// to the HTTP middleware so the body is never gzipped twice.
func Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{DisableCompression: true}),
	)
}
