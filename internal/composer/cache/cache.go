// Package cache composes the two cache tiers behind one facade.
//
// Reads go to tier 1 first, then tier 2; a tier 2 hit is promoted into tier
// 1. Writes go to tier 2 first for durability, then tier 1. Eviction is a
// tier 1 concern only and never reaches tier 2.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"birl/internal/composer/metrics"
	"birl/internal/composer/models"
	"birl/internal/composer/ports"
	"birl/pkg/platform/circuit"
	"birl/pkg/platform/sentinel"
)

const (
	tier1 = "tier1"
	tier2 = "tier2"
)

// Stats is a point-in-time snapshot. Counters reset only on restart.
type Stats struct {
	Tier1Size     int    `json:"tier1_size"`
	Tier1Capacity int    `json:"tier1_capacity"`
	Hits          uint64 `json:"hits"`
	Misses        uint64 `json:"misses"`
	Tier2State    string `json:"tier2_state"`
}

// Cache is the tiered cache facade. It is safe for concurrent use.
type Cache struct {
	fast    ports.FastTier
	durable ports.DurableTier
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger for the cache.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics collector for the cache.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithBreaker replaces the tier 2 health breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Cache) {
		c.breaker = b
	}
}

// New composes fast and durable. durable may be nil, in which case the
// cache is tier 1 only.
func New(fast ports.FastTier, durable ports.DurableTier, opts ...Option) (*Cache, error) {
	if fast == nil {
		return nil, errors.New("tier 1 is required")
	}
	c := &Cache{
		fast:    fast,
		durable: durable,
		breaker: circuit.New(tier2),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the payload for key. A miss in both tiers returns
// sentinel.ErrNotFound. Tier 2 failures are logged and treated as misses.
func (c *Cache) Get(ctx context.Context, key models.EntryKey) ([]byte, error) {
	if data, ok := c.fast.Get(key); ok {
		c.hits.Add(1)
		c.metrics.IncrementLookup(tier1, "hit")
		return data, nil
	}
	c.metrics.IncrementLookup(tier1, "miss")

	if c.durable != nil {
		data, err := c.durable.Get(ctx, key)
		switch {
		case err == nil:
			c.recordTier2Success(ctx)
			c.metrics.IncrementLookup(tier2, "hit")
			c.fast.Add(key, data)
			c.metrics.SetTier1Size(c.fast.Len())
			c.hits.Add(1)
			return data, nil
		case errors.Is(err, sentinel.ErrNotFound):
			c.recordTier2Success(ctx)
			c.metrics.IncrementLookup(tier2, "miss")
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			c.recordTier2Failure(ctx, err)
			c.metrics.IncrementLookup(tier2, "error")
			c.logger.WarnContext(ctx, "durable cache read failed",
				"key", key.String(),
				"error", err,
			)
		}
	}

	c.misses.Add(1)
	return nil, fmt.Errorf("%w: %s", sentinel.ErrNotFound, key)
}

// Put writes key to tier 2, then tier 1. Tier 1 is populated even when
// the tier 2 write fails; that failure is returned wrapped in
// models.ErrCacheWrite and callers treat it as non-fatal.
func (c *Cache) Put(ctx context.Context, key models.EntryKey, data []byte) error {
	var writeErr error
	if c.durable != nil {
		if err := c.durable.Put(ctx, key, data); err != nil {
			c.recordTier2Failure(ctx, err)
			c.metrics.IncrementCacheWriteFailure()
			writeErr = fmt.Errorf("%w: %s: %w", models.ErrCacheWrite, key, err)
		} else {
			c.recordTier2Success(ctx)
		}
	}

	c.fast.Add(key, data)
	c.metrics.SetTier1Size(c.fast.Len())
	return writeErr
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	state := "none"
	if c.durable != nil {
		state = c.breaker.State().String()
	}
	return Stats{
		Tier1Size:     c.fast.Len(),
		Tier1Capacity: c.fast.Cap(),
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Tier2State:    state,
	}
}

// ClearFastTier empties tier 1. Counters and tier 2 are kept.
func (c *Cache) ClearFastTier() {
	c.fast.Purge()
	c.metrics.SetTier1Size(0)
}

func (c *Cache) recordTier2Success(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "durable cache tier recovered", "breaker", c.breaker.Name())
	}
}

func (c *Cache) recordTier2Failure(ctx context.Context, err error) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.ErrorContext(ctx, "durable cache tier degraded",
			"breaker", c.breaker.Name(),
			"error", err,
		)
	}
}
