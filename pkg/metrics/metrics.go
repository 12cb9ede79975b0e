package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	FeedAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_attempts_total",
			Help: "Total number of listing feed HTTP attempts",
		},
		[]string{"operation", "outcome"},
	)
	FeedRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_request_duration_seconds",
			Help:    "Listing feed fetch duration in seconds, including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_cache_hits_total",
			Help: "Total number of listing cache hits",
		},
		[]string{"operation"},
	)
	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_cache_misses_total",
			Help: "Total number of listing cache misses",
		},
		[]string{"operation"},
	)
	FallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_fallback_total",
			Help: "Total number of times sample or placeholder data was served",
		},
		[]string{"operation"},
	)
	SlideTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slide_transitions_total",
			Help: "Total number of slide transitions",
		},
		[]string{"trigger"},
	)
)

var once sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(FeedAttemptsTotal)
		prometheus.MustRegister(FeedRequestDuration)
		prometheus.MustRegister(CacheHitsTotal)
		prometheus.MustRegister(CacheMissesTotal)
		prometheus.MustRegister(FallbackTotal)
		prometheus.MustRegister(SlideTransitionsTotal)
	})
}
