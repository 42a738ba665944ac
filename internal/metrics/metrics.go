// Package metrics exposes Prometheus collectors for the occupation pipeline.
package metrics

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	blsRequestsTotal           *prometheus.CounterVec
	blsRequestDurationSeconds  prometheus.Histogram
	blsSeriesTotal             prometheus.Counter
	cacheLookupsTotal          *prometheus.CounterVec
	cacheWritesTotal           *prometheus.CounterVec
	resolutionsTotal           *prometheus.CounterVec
	pipelineRequestsTotal      *prometheus.CounterVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	httpInFlight               prometheus.Gauge
	rateLimitDelaysSeconds     *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		blsRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bls_requests_total",
				Help: "Total number of statistics API attempts, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		blsRequestDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bls_request_duration_seconds",
				Help:    "Histogram of statistics API attempt latencies.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		)

		blsSeriesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bls_series_total",
				Help: "Total number of series returned by the statistics API.",
			},
		)

		cacheLookupsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "occupation_cache_lookups_total",
				Help: "Total number of cache lookups, labeled by observed state.",
			},
			[]string{"state"},
		)

		cacheWritesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "occupation_cache_writes_total",
				Help: "Total number of cache upserts, labeled by result.",
			},
			[]string{"result"},
		)

		resolutionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "occupation_resolutions_total",
				Help: "Total number of title resolutions, labeled by the stage that answered.",
			},
			[]string{"via"},
		)

		pipelineRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "occupation_pipeline_requests_total",
				Help: "Total number of pipeline calls, labeled by source and status.",
			},
			[]string{"source", "status"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method, route and code.",
			},
			[]string{"method", "route", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route"},
		)

		httpInFlight = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served.",
			},
		)

		rateLimitDelaysSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rate_limit_delays_seconds",
				Help:    "Histogram of outbound rate limit wait durations.",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"host"},
		)
	})
}

// SanitizeHost extracts a lowercase hostname from a URL.
// It returns "unknown" if the URL is invalid.
func SanitizeHost(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

// ObserveBLSAttempt records one statistics API attempt.
func ObserveBLSAttempt(outcome string, duration time.Duration) {
	Init()
	blsRequestsTotal.WithLabelValues(outcome).Inc()
	blsRequestDurationSeconds.Observe(duration.Seconds())
}

// ObserveBLSSeries counts series returned by a successful call.
func ObserveBLSSeries(n int) {
	Init()
	if n > 0 {
		blsSeriesTotal.Add(float64(n))
	}
}

// ObserveCacheLookup counts a cache lookup by observed state.
func ObserveCacheLookup(state string) {
	Init()
	cacheLookupsTotal.WithLabelValues(state).Inc()
}

// ObserveCacheWrite counts an upsert by result ("ok", "invalid", "error").
func ObserveCacheWrite(result string) {
	Init()
	cacheWritesTotal.WithLabelValues(result).Inc()
}

// ObserveResolution counts a resolution by the stage that produced it.
func ObserveResolution(via string) {
	Init()
	resolutionsTotal.WithLabelValues(via).Inc()
}

// ObservePipeline counts a pipeline call.
func ObservePipeline(source, status string) {
	Init()
	pipelineRequestsTotal.WithLabelValues(source, status).Inc()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveRateLimitDelay records the duration of a rate limit wait.
func ObserveRateLimitDelay(host string, duration time.Duration) {
	Init()
	rateLimitDelaysSeconds.WithLabelValues(host).Observe(duration.Seconds())
}
