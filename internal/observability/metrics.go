package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheOperationsTotal counts get/put/delete/policy operations
	CacheOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_operations_total",
		Help: "The total number of cache operations",
	}, []string{"type", "status"})

	// CacheHitsTotal counts cache hits
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "The total number of cache hits",
	})

	// CacheMissesTotal counts cache misses
	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "The total number of cache misses",
	})

	// CacheDurationSeconds measures latency
	CacheDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cache_duration_seconds",
		Help:    "The latency of cache operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"type"})

	// CacheEvictionsTotal counts capacity-driven evictions
	CacheEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_evictions_total",
		Help: "The total number of entries evicted to make room",
	})

	// CacheEntries tracks the number of cached entries after the last change
	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cache_entries",
		Help: "The number of entries currently cached",
	})

	// CachePolicyRendersTotal counts state renders per active policy
	CachePolicyRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_renders_total",
		Help: "The total number of state renders by active policy",
	}, []string{"policy"})
)
