package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CacheStats(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	stats := m.ForCache("pair")
	stats.Hits.Inc()
	stats.Hits.Inc()
	stats.Misses.Inc()

	assert.InDelta(t, 2, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("pair")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("pair")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.CacheEvictionsTotal.WithLabelValues("pair")), 0)
}

func TestMetrics_RegistersAllCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)
	m.PreloadFailuresTotal.Inc()
	m.ProviderRequestsTotal.WithLabelValues("live", "success").Inc()

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, fam := range families {
		names = append(names, fam.GetName())
	}
	assert.Contains(t, names, "exchange_preload_failures_total")
	assert.Contains(t, names, "exchange_provider_requests_total")
}
