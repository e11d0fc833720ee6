package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the composition pipeline.
type Metrics struct {
	// Cache lookups by tier and outcome
	CacheLookups *prometheus.CounterVec

	// Current tier 1 entry count
	Tier1Size prometheus.Gauge

	// Durable tier writes that failed
	CacheWriteFailures prometheus.Counter

	// Asset fetch latencies by kind
	FetchLatency *prometheus.HistogramVec

	// Layers left out of degraded composites
	OmittedLayers *prometheus.CounterVec

	// Full render latency by cache outcome
	RenderLatency *prometheus.HistogramVec
}

// New registers the composer metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the composer metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "birl_cache_lookups_total",
			Help: "Cache lookups by tier and outcome",
		}, []string{"tier", "outcome"}), // tier: "tier1", "tier2"; outcome: "hit", "miss", "error"

		Tier1Size: factory.NewGauge(prometheus.GaugeOpts{
			Name: "birl_cache_tier1_entries",
			Help: "Number of entries in the in-process cache tier",
		}),

		CacheWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "birl_cache_write_failures_total",
			Help: "Durable cache tier writes that failed",
		}),

		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "birl_fetch_duration_seconds",
			Help:    "Duration of plate and layer fetches including cache lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"kind"}), // kind: "plate", "layer"

		OmittedLayers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "birl_omitted_layers_total",
			Help: "Layers left out of a composite by reason",
		}, []string{"reason"}), // reason: "missing", "unavailable"

		RenderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "birl_render_duration_seconds",
			Help:    "Duration of a full render by cache outcome",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"cache"}), // cache: "hit", "miss"
	}
}

// IncrementLookup records a cache lookup outcome for a tier.
func (m *Metrics) IncrementLookup(tier, outcome string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(tier, outcome).Inc()
	}
}

// SetTier1Size records the current tier 1 entry count.
func (m *Metrics) SetTier1Size(n int) {
	if m != nil {
		m.Tier1Size.Set(float64(n))
	}
}

// IncrementCacheWriteFailure records a failed durable write.
func (m *Metrics) IncrementCacheWriteFailure() {
	if m != nil {
		m.CacheWriteFailures.Inc()
	}
}

// ObserveFetchLatency records the duration of one asset fetch.
func (m *Metrics) ObserveFetchLatency(kind string, d time.Duration) {
	if m != nil {
		m.FetchLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// IncrementOmitted records a layer left out of a composite.
func (m *Metrics) IncrementOmitted(reason string) {
	if m != nil {
		m.OmittedLayers.WithLabelValues(reason).Inc()
	}
}

// ObserveRenderLatency records the total render duration.
func (m *Metrics) ObserveRenderLatency(cacheOutcome string, d time.Duration) {
	if m != nil {
		m.RenderLatency.WithLabelValues(cacheOutcome).Observe(d.Seconds())
	}
}
