// Package fetch resolves the bytes of a plate and its layers concurrently,
// through the asset cache and then the origin store.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"birl/internal/composer/metrics"
	"birl/internal/composer/models"
	"birl/internal/composer/ports"
	"birl/pkg/platform/sentinel"
)

const (
	// DefaultConcurrency bounds in-flight fetches per request.
	DefaultConcurrency = 8
	// DefaultTimeout bounds a single origin read.
	DefaultTimeout = 10 * time.Second
)

var tracer = otel.Tracer("birl/internal/composer/fetch")

// AssetCache is the tiered cache as seen by the fetcher.
type AssetCache interface {
	Get(ctx context.Context, key models.EntryKey) ([]byte, error)
	Put(ctx context.Context, key models.EntryKey, data []byte) error
}

// Plan is what one render needs fetched.
type Plan struct {
	View   models.View
	Layers []models.Layer
	// Bypass skips cache reads; fetched assets are still written through.
	Bypass bool
}

// Layer is a fetched layer with its bytes.
type Layer struct {
	models.Layer
	Data []byte
}

// Assets is the fan-in of one Fetch. Layers keep plan order with absent
// layers removed.
type Assets struct {
	Plate   []byte
	Layers  []Layer
	Omitted []models.OmittedLayer
}

// Fetcher runs the fetch phase of a render.
type Fetcher struct {
	origin      ports.OriginStore
	cache       AssetCache
	namespace   string
	concurrency int
	timeout     time.Duration
	group       singleflight.Group
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCache routes asset reads through cache and writes fetched assets back.
func WithCache(cache AssetCache) Option {
	return func(f *Fetcher) {
		f.cache = cache
	}
}

// WithConcurrency bounds in-flight fetches per request. Non-positive values
// keep the default.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithTimeout bounds each origin read.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithLogger sets the logger for the fetcher.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithMetrics sets the metrics collector for the fetcher.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// New creates a Fetcher reading assets under namespace in origin.
func New(origin ports.OriginStore, namespace string, opts ...Option) (*Fetcher, error) {
	if origin == nil {
		return nil, errors.New("origin store is required")
	}
	f := &Fetcher{
		origin:      origin,
		namespace:   namespace,
		concurrency: DefaultConcurrency,
		timeout:     DefaultTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch resolves the plate and every layer of plan concurrently.
//
// A missing or unreachable layer is omitted and reported in Assets.Omitted.
// A missing plate fails with models.ErrPlateNotFound and an unreachable
// one with models.ErrOriginUnavailable, cancelling the remaining fetches.
func (f *Fetcher) Fetch(ctx context.Context, plan Plan) (*Assets, error) {
	ctx, span := tracer.Start(ctx, "fetch.Fetch", trace.WithAttributes(
		attribute.String("view", string(plan.View)),
		attribute.Int("layers", len(plan.Layers)),
		attribute.Bool("bypass", plan.Bypass),
	))
	defer span.End()

	var (
		plate     []byte
		data      = make([][]byte, len(plan.Layers))
		layerErrs = make([]error, len(plan.Layers))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	g.Go(func() error {
		key := models.PlateEntry(plan.View)
		b, err := f.asset(gctx, key, plan.Bypass)
		if err != nil {
			return f.plateError(gctx, key, err)
		}
		plate = b
		return nil
	})

	for i, layer := range plan.Layers {
		g.Go(func() error {
			b, err := f.asset(gctx, models.LayerEntry(plan.View, layer), plan.Bypass)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				layerErrs[i] = err
				return nil
			}
			data[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}

	// Reassemble in plan order; completion order never reaches the draw list.
	assets := &Assets{Plate: plate, Layers: make([]Layer, 0, len(plan.Layers))}
	for i, layer := range plan.Layers {
		if err := layerErrs[i]; err != nil {
			assets.Omitted = append(assets.Omitted, f.omit(ctx, plan.View, layer, err))
			continue
		}
		assets.Layers = append(assets.Layers, Layer{Layer: layer, Data: data[i]})
	}
	span.SetAttributes(attribute.Int("omitted", len(assets.Omitted)))
	return assets, nil
}

// asset reads key from the cache, falling back to the origin store.
// Concurrent origin reads of the same key are coalesced across requests;
// the shared read is detached from any one caller's cancellation.
func (f *Fetcher) asset(ctx context.Context, key models.EntryKey, bypass bool) ([]byte, error) {
	start := time.Now()
	defer func() {
		f.metrics.ObserveFetchLatency(string(key.Kind), time.Since(start))
	}()

	if f.cache != nil && !bypass {
		data, err := f.cache.Get(ctx, key)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	originKey := models.OriginKey(f.namespace, key)
	ch := f.group.DoChan(originKey, func() (any, error) {
		octx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()

		data, err := f.origin.Get(octx, originKey)
		if err != nil {
			return nil, err
		}
		if f.cache != nil {
			if err := f.cache.Put(octx, key, data); err != nil {
				f.logger.WarnContext(ctx, "asset cache write failed",
					"key", key.String(),
					"error", err,
				)
			}
		}
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (f *Fetcher) plateError(ctx context.Context, key models.EntryKey, err error) error {
	originKey := models.OriginKey(f.namespace, key)
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, sentinel.ErrNotFound):
		return fmt.Errorf("%w: %s", models.ErrPlateNotFound, originKey)
	default:
		return fmt.Errorf("%w: plate %s: %w", models.ErrOriginUnavailable, originKey, err)
	}
}

func (f *Fetcher) omit(ctx context.Context, view models.View, layer models.Layer, err error) models.OmittedLayer {
	originKey := models.OriginKey(f.namespace, models.LayerEntry(view, layer))
	reason, label := fmt.Errorf("%w: %s", models.ErrLayerMissing, originKey), "missing"
	if !errors.Is(err, sentinel.ErrNotFound) {
		reason, label = fmt.Errorf("%w: layer %s: %w", models.ErrOriginUnavailable, originKey, err), "unavailable"
	}

	f.metrics.IncrementOmitted(label)
	f.logger.WarnContext(ctx, "layer omitted from composite",
		"layer", layer.String(),
		"reason", label,
		"error", err,
	)
	return models.OmittedLayer{Layer: layer, Reason: reason}
}
