// Package handler exposes the render service over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"birl/internal/composer/cache"
	"birl/internal/composer/models"
	dErrors "birl/pkg/domain-errors"
	"birl/pkg/platform/httputil"
	"birl/pkg/platform/middleware/apikey"
	"birl/pkg/platform/middleware/metadata"
	"birl/pkg/platform/middleware/request"
	"birl/pkg/platform/middleware/requesttime"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Response headers describing a render.
const (
	HeaderCache          = "X-Cache"
	HeaderCacheKey       = "X-Cache-Key"
	HeaderOmittedLayers  = "X-Omitted-Layers"
	HeaderRenderDuration = "X-Render-Duration-Ms"
)

// DefaultTimeout bounds a render request end to end.
const DefaultTimeout = 30 * time.Second

// Service defines the interface for render operations.
type Service interface {
	Render(ctx context.Context, req models.CompositionRequest) (*models.Result, error)
	Stats() cache.Stats
	Products(ctx context.Context) ([]byte, error)
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// Handler handles render endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
	apiKeys []string
	timeout time.Duration
	checks  map[string]HealthCheck
}

// Option configures a Handler.
type Option func(*Handler)

// WithAPIKeys requires one of keys on every route except /health.
func WithAPIKeys(keys []string) Option {
	return func(h *Handler) {
		h.apiKeys = keys
	}
}

// WithTimeout bounds each render request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithHealthCheck adds a named dependency probe to /health.
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(h *Handler) {
		h.checks[name] = check
	}
}

// New creates a new render Handler.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
		timeout: DefaultTimeout,
		checks:  make(map[string]HealthCheck),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the render routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(request.RequestID)
	router.Use(request.Recovery(h.logger))
	router.Use(metadata.ClientMetadata)
	router.Use(requesttime.Middleware)
	router.Use(request.Logger(h.logger))

	router.Get("/health", h.handleHealth)
	router.Group(func(r chi.Router) {
		r.Use(apikey.Require(h.apiKeys, h.logger))
		r.Use(request.Timeout(h.timeout))
		r.Post("/create", h.handleCreate)
		r.Get("/render", h.handleRender)
		r.Get("/stats", h.handleStats)
		r.Get("/products", h.handleProducts)
	})

	r.Mount("/", router)
}

// createRequest is the POST /create body.
type createRequest struct {
	Params      string `json:"p"`
	View        string `json:"view"`
	BypassCache bool   `json:"bypass_cache"`
	Format      string `json:"format"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create request",
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	h.render(w, r, models.CompositionRequest{
		Params:      req.Params,
		View:        models.View(req.View),
		BypassCache: req.BypassCache,
		Format:      models.Format(req.Format),
	})
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var bypass bool
	if raw := q.Get("bypass_cache"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "bypass_cache must be a boolean"))
			return
		}
		bypass = v
	}

	h.render(w, r, models.CompositionRequest{
		Params:      q.Get("p"),
		View:        models.View(q.Get("view")),
		BypassCache: bypass,
		Format:      models.Format(q.Get("format")),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, req models.CompositionRequest) {
	result, err := h.service.Render(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	header := w.Header()
	header.Set("Content-Type", result.ContentType)
	header.Set(HeaderCacheKey, result.CacheKey)
	header.Set(HeaderRenderDuration, strconv.FormatInt(result.Timing.Total.Milliseconds(), 10))
	if result.CacheHit {
		header.Set(HeaderCache, "HIT")
	} else {
		header.Set(HeaderCache, "MISS")
	}
	if result.Degraded() {
		header.Set(HeaderOmittedLayers, strings.Join(result.OmittedNames(), ","))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Image)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Stats())
}

func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Products(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := healthResponse{Status: "ok"}
	status := http.StatusOK

	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
		for name, check := range h.checks {
			if err := check(ctx); err != nil {
				h.logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
	}
	httputil.WriteJSON(w, status, resp)
}
