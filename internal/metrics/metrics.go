// Package metrics defines the Prometheus instrumentation for the exchange
// service: cache effectiveness, provider traffic, and preload health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service exports.
type Metrics struct {
	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec
	CacheEvictionsTotal *prometheus.CounterVec

	ProviderRequestsTotal *prometheus.CounterVec
	ProviderDuration      *prometheus.HistogramVec

	PreloadFailuresTotal prometheus.Counter
}

// CacheStats is the slice of Metrics a single cache namespace records to.
type CacheStats struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Evictions prometheus.Counter
}

// ProviderStats is the slice of Metrics the provider client records to.
type ProviderStats struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// New registers all collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_cache_hits_total",
				Help: "Number of rate lookups served from cache",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_cache_misses_total",
				Help: "Number of rate lookups that required a provider fetch",
			},
			[]string{"cache"},
		),
		CacheEvictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_cache_evictions_total",
				Help: "Number of cache entries evicted by the capacity limit",
			},
			[]string{"cache"},
		),
		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_provider_requests_total",
				Help: "Number of calls to the external rate provider",
			},
			[]string{"endpoint", "outcome"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "exchange_provider_request_duration_seconds",
				Help:    "Latency of external provider calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		PreloadFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "exchange_preload_failures_total",
				Help: "Number of preload attempts that failed",
			},
		),
	}
}

// ForCache returns the counters for one cache namespace.
func (m *Metrics) ForCache(name string) *CacheStats {
	return &CacheStats{
		Hits:      m.CacheHitsTotal.WithLabelValues(name),
		Misses:    m.CacheMissesTotal.WithLabelValues(name),
		Evictions: m.CacheEvictionsTotal.WithLabelValues(name),
	}
}

// ForProvider returns the collectors the provider client records to.
func (m *Metrics) ForProvider() *ProviderStats {
	return &ProviderStats{
		Requests: m.ProviderRequestsTotal,
		Duration: m.ProviderDuration,
	}
}
