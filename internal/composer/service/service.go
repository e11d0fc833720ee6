// Package service runs the render pipeline: classify, fingerprint, consult
// the composite cache, fetch, composite and write through.
package service

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

	"birl/internal/composer/cache"
	"birl/internal/composer/cachekey"
	"birl/internal/composer/compositor"
	"birl/internal/composer/fetch"
	"birl/internal/composer/layers"
	"birl/internal/composer/metrics"
	"birl/internal/composer/models"
	"birl/internal/composer/ports"
	dErrors "birl/pkg/domain-errors"
	"birl/pkg/platform/sentinel"
)

// ProductsCatalogName is the cached catalog served by Products.
const ProductsCatalogName = "products-dynamic-cache"

var tracer = otel.Tracer("birl/internal/composer/service")

// Cache is the tiered composite cache.
type Cache interface {
	Get(ctx context.Context, key models.EntryKey) ([]byte, error)
	Put(ctx context.Context, key models.EntryKey, data []byte) error
	Stats() cache.Stats
	ClearFastTier()
}

// Fetcher resolves plate and layer bytes.
type Fetcher interface {
	Fetch(ctx context.Context, plan fetch.Plan) (*fetch.Assets, error)
}

// Compositor blends fetched assets into an encoded image.
type Compositor interface {
	Composite(plate compositor.Input, layers []compositor.Input, format models.Format) ([]byte, error)
}

// Service renders composites. It is safe for concurrent use; each call owns
// its request and result.
type Service struct {
	cache         Cache
	fetcher       Fetcher
	compositor    Compositor
	catalog       ports.OriginStore
	namespace     string
	defaultFormat models.Format
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDefaultFormat sets the output format used when a request names none.
func WithDefaultFormat(format models.Format) Option {
	return func(s *Service) {
		s.defaultFormat = format
	}
}

// WithCatalog serves the product catalog from the origin store's cache
// folder under namespace.
func WithCatalog(origin ports.OriginStore, namespace string) Option {
	return func(s *Service) {
		s.catalog = origin
		s.namespace = namespace
	}
}

// New creates a render service.
func New(c Cache, f Fetcher, comp Compositor, opts ...Option) (*Service, error) {
	if c == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if f == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if comp == nil {
		return nil, fmt.Errorf("compositor is required")
	}

	svc := &Service{
		cache:         c,
		fetcher:       f,
		compositor:    comp,
		defaultFormat: models.FormatJPEG,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// plan is a validated request ready for the I/O phase.
type plan struct {
	view   models.View
	format models.Format
	stack  layers.Classification
	key    cachekey.Key
}

// Render produces the composite for req.
//
// Invalid input fails before any I/O. A cached composite short-circuits the
// fetch and composite phases unless req.BypassCache is set; bypassed
// renders still write through. Composites missing a layer are returned
// but never cached.
func (s *Service) Render(ctx context.Context, req models.CompositionRequest) (*models.Result, error) {
	ctx, span := tracer.Start(ctx, "service.Render", trace.WithAttributes(
		attribute.String("view", string(req.View)),
		attribute.Bool("bypass_cache", req.BypassCache),
	))
	defer span.End()

	result, err := s.render(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("cache_key", result.CacheKey),
		attribute.Bool("cache_hit", result.CacheHit),
		attribute.Int("omitted", len(result.Omitted)),
	)
	return result, nil
}

func (s *Service) render(ctx context.Context, req models.CompositionRequest) (*models.Result, error) {
	start := time.Now()

	p, err := s.prepare(req)
	if err != nil {
		return nil, s.translate(ctx, err)
	}

	entry := models.CompositeEntry(p.key.String(), p.format)
	result := &models.Result{
		ContentType: p.format.ContentType(),
		CacheKey:    p.key.String(),
		Layers:      p.stack.Layers,
		Warnings:    p.stack.Warnings,
	}

	if !req.BypassCache {
		data, err := s.cache.Get(ctx, entry)
		if err == nil {
			result.Image = data
			result.CacheHit = true
			result.Timing.Total = time.Since(start)
			s.metrics.ObserveRenderLatency("hit", result.Timing.Total)
			s.logger.DebugContext(ctx, "composite cache hit",
				"cache_key", result.CacheKey,
				"view", p.view,
			)
			return result, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.translate(ctx, err)
		}
		s.logger.DebugContext(ctx, "composite cache miss", "cache_key", result.CacheKey)
	}

	fetchStart := time.Now()
	assets, err := s.fetcher.Fetch(ctx, fetch.Plan{View: p.view, Layers: p.stack.Layers, Bypass: req.BypassCache})
	result.Timing.Fetch = time.Since(fetchStart)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	result.Omitted = assets.Omitted
	for _, o := range assets.Omitted {
		result.Warnings = append(result.Warnings, o.Reason.Error())
	}

	inputs := make([]compositor.Input, len(assets.Layers))
	for i, l := range assets.Layers {
		inputs[i] = compositor.Input{Name: l.Layer.String(), Data: l.Data}
	}
	plate := compositor.Input{Name: models.PlateEntry(p.view).Name, Data: assets.Plate}

	compositeStart := time.Now()
	image, err := s.compositor.Composite(plate, inputs, p.format)
	result.Timing.Composite = time.Since(compositeStart)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	result.Image = image

	if result.Degraded() {
		s.logger.WarnContext(ctx, "degraded composite not cached",
			"cache_key", result.CacheKey,
			"omitted", result.OmittedNames(),
		)
	} else if err := s.cache.Put(ctx, entry, image); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist composite",
			"cache_key", result.CacheKey,
			"error", err,
		)
		result.Warnings = append(result.Warnings, err.Error())
	}

	result.Timing.Total = time.Since(start)
	s.metrics.ObserveRenderLatency("miss", result.Timing.Total)
	s.logger.InfoContext(ctx, "composite rendered",
		"cache_key", result.CacheKey,
		"view", p.view,
		"layers", len(inputs),
		"omitted", len(result.Omitted),
		"bypass_cache", req.BypassCache,
		"duration_ms", result.Timing.Total.Milliseconds(),
	)
	return result, nil
}

// prepare validates req, classifies the stack and derives the cache key
// from the params that survived classification. Nothing here touches a
// store.
func (s *Service) prepare(req models.CompositionRequest) (plan, error) {
	view, err := models.ParseView(string(req.View))
	if err != nil {
		return plan{}, err
	}
	format, err := models.ParseFormat(string(req.Format), s.defaultFormat)
	if err != nil {
		return plan{}, err
	}
	params, err := models.ParseParams(req.Params)
	if err != nil {
		return plan{}, err
	}

	stack, err := layers.Classify(params, view)
	if err != nil {
		return plan{}, err
	}
	return plan{
		view:   view,
		format: format,
		stack:  stack,
		key:    cachekey.Derive(stack.Params, view, view.Plate()),
	}, nil
}

// Stats returns the cache statistics snapshot.
func (s *Service) Stats() cache.Stats {
	return s.cache.Stats()
}

// ClearFastTier empties the in-process cache tier.
func (s *Service) ClearFastTier(ctx context.Context) {
	s.cache.ClearFastTier()
	s.logger.InfoContext(ctx, "tier 1 cache cleared")
}

// Products returns the cached product catalog JSON.
func (s *Service) Products(ctx context.Context) ([]byte, error) {
	if s.catalog == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "product catalog not configured")
	}
	data, err := s.catalog.Get(ctx, models.CachedArtifactKey(s.namespace, ProductsCatalogName, "json"))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "product catalog not found")
		}
		return nil, s.translate(ctx, fmt.Errorf("%w: %w", models.ErrOriginUnavailable, err))
	}
	return data, nil
}

// translate attaches a transport code to a pipeline error. The sentinel
// stays in the chain for errors.Is.
func (s *Service) translate(ctx context.Context, err error) error {
	var code dErrors.Code
	msg := err.Error()
	switch {
	case errors.Is(err, models.ErrInvalidCategory),
		errors.Is(err, models.ErrInvalidView),
		errors.Is(err, models.ErrInvalidFormat):
		code = dErrors.CodeInvalidInput
	case errors.Is(err, models.ErrPlateNotFound):
		code = dErrors.CodeNotFound
	case errors.Is(err, models.ErrDecode):
		code = dErrors.CodeBadUpstream
	case errors.Is(err, models.ErrOriginUnavailable):
		code, msg = dErrors.CodeUnavailable, "origin store unavailable"
	case errors.Is(err, context.Canceled):
		code, msg = dErrors.CodeRequestCancelled, "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		code, msg = dErrors.CodeTimeout, "render timed out"
	default:
		code, msg = dErrors.CodeInternal, "render failed"
	}

	level := slog.LevelWarn
	if code == dErrors.CodeInternal || code == dErrors.CodeUnavailable || code == dErrors.CodeBadUpstream {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "render failed", "code", code, "error", err)
	return dErrors.Wrap(err, code, msg)
}
