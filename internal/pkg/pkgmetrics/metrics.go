package pkgmetrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "code"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	// Providers
	providerCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_calls_total",
			Help: "Provider calls by provider, operation and outcome.",
		},
		[]string{"provider", "operation", "outcome"},
	)
	providerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_call_duration_seconds",
			Help:    "Provider call latency in seconds, retries included.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)

	// Cache / dedup
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_lookups_total",
			Help: "Search cache lookups by result (hit, miss, error).",
		},
		[]string{"cache", "result"},
	)
	sharedCalls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_shared_calls_total",
			Help: "Searches that joined an in-flight request instead of issuing a new one.",
		},
	)

	// Business
	searchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_results_count",
			Help:    "Distribution of raw offers returned per search.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 150, 250},
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			providerCalls,
			providerDuration,
			cacheLookups,
			sharedCalls,
			searchResults,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveHTTPRequest(method, route string, code int, d time.Duration) {
	c := strconv.Itoa(code)
	httpRequests.WithLabelValues(method, route, c).Inc()
	httpDuration.WithLabelValues(method, route, c).Observe(d.Seconds())
}

func ObserveProviderCall(provider, operation string, err error, d time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	providerCalls.WithLabelValues(provider, operation, outcome).Inc()
	providerDuration.WithLabelValues(provider, operation).Observe(d.Seconds())
}

func IncCacheLookup(cache, result string) {
	cacheLookups.WithLabelValues(cache, result).Inc()
}

func IncSharedCall() {
	sharedCalls.Inc()
}

func ObserveSearchResults(n int) {
	searchResults.Observe(float64(n))
}
