package utils

import (
	"listing-slideshow/pkg/metrics"
)

func RecordCacheLookup(operation string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(operation).Inc()
		return
	}
	metrics.CacheMissesTotal.WithLabelValues(operation).Inc()
}

func RecordFallback(operation string) {
	metrics.FallbackTotal.WithLabelValues(operation).Inc()
}

func RecordSlideTransition(trigger string) {
	metrics.SlideTransitionsTotal.WithLabelValues(trigger).Inc()
}
