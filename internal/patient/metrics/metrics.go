package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for patient resolution.
type Metrics struct {
	// Provider lookup latencies by provider and outcome
	LookupLatency *prometheus.HistogramVec

	// Provider failures by provider and error category
	LookupErrors *prometheus.CounterVec

	// Cache hits and misses by cache domain
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// 1 when a provider's circuit breaker is open
	BreakerOpen *prometheus.GaugeVec
}

// New creates a new Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "healthgateway_patient_lookup_duration_seconds",
			Help:    "Duration of upstream patient lookups by provider",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "outcome"}),

		LookupErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthgateway_patient_lookup_errors_total",
			Help: "Upstream patient lookup failures by provider and category",
		}, []string{"provider", "category"}),

		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthgateway_cache_hits_total",
			Help: "Cache hits by domain",
		}, []string{"domain"}),

		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthgateway_cache_misses_total",
			Help: "Cache misses by domain",
		}, []string{"domain"}),

		BreakerOpen: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "healthgateway_provider_breaker_open",
			Help: "Whether a provider circuit breaker is open",
		}, []string{"provider"}),
	}
}

// ObserveLookup records the duration and outcome of one provider call.
func (m *Metrics) ObserveLookup(provider, outcome string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(provider, outcome).Observe(d.Seconds())
	}
}

// IncrementLookupError records a categorized provider failure.
func (m *Metrics) IncrementLookupError(provider, category string) {
	if m != nil {
		m.LookupErrors.WithLabelValues(provider, category).Inc()
	}
}

func (m *Metrics) IncrementCacheHit(domain string) {
	if m != nil {
		m.CacheHits.WithLabelValues(domain).Inc()
	}
}

func (m *Metrics) IncrementCacheMiss(domain string) {
	if m != nil {
		m.CacheMisses.WithLabelValues(domain).Inc()
	}
}

// SetBreakerOpen publishes breaker state for provider.
func (m *Metrics) SetBreakerOpen(provider string, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.BreakerOpen.WithLabelValues(provider).Set(v)
}
