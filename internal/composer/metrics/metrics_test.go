package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementLookup("tier1", "hit")
		m.SetTier1Size(3)
		m.IncrementCacheWriteFailure()
		m.ObserveFetchLatency("plate", time.Millisecond)
		m.IncrementOmitted("missing")
		m.ObserveRenderLatency("miss", time.Millisecond)
	})
}

func TestRecording(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementLookup("tier1", "hit")
	m.IncrementLookup("tier1", "hit")
	m.IncrementLookup("tier2", "miss")
	m.SetTier1Size(7)
	m.IncrementCacheWriteFailure()
	m.IncrementOmitted("missing")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("tier1", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("tier2", "miss")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Tier1Size))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheWriteFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OmittedLayers.WithLabelValues("missing")))
}
