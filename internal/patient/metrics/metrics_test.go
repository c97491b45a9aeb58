package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementCacheHit("PatientV2")
	m.IncrementCacheHit("PatientV2")
	m.IncrementCacheMiss("PatientV2")
	m.IncrementLookupError("empi", "timeout")
	m.ObserveLookup("empi", "success", 20*time.Millisecond)
	m.SetBreakerOpen("client-registry", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("PatientV2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses.WithLabelValues("PatientV2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupErrors.WithLabelValues("empi", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerOpen.WithLabelValues("client-registry")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.LookupLatency))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementCacheHit("d")
		m.IncrementCacheMiss("d")
		m.IncrementLookupError("p", "c")
		m.ObserveLookup("p", "o", time.Second)
		m.SetBreakerOpen("p", false)
	})
}
