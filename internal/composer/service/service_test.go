package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"birl/internal/composer/cache"
	"birl/internal/composer/compositor"
	"birl/internal/composer/fetch"
	"birl/internal/composer/metrics"
	"birl/internal/composer/models"
	"birl/internal/composer/ports/mocks"
	"birl/internal/composer/store/origin"
	"birl/internal/platform/logger"
	dErrors "birl/pkg/domain-errors"
	"birl/pkg/platform/sentinel"
)

const namespace = "birl"

var (
	hoodie = models.Layer{Kind: models.KindHoodies, Sku: "baerskin4-black"}
	pants  = models.Layer{Kind: models.KindPants, Sku: "cargo-darkgreen"}
)

func solidPNG(t testing.TB, c color.Color) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	origin  *origin.InMemory
	cache   *cache.Cache
	metrics *metrics.Metrics
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.origin = origin.NewInMemory()
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.service = s.newService(nil)
}

func (s *ServiceSuite) newService(durable *mocks.MockDurableTier) *Service {
	fast, err := cache.NewLRU(64)
	s.Require().NoError(err)
	if durable != nil {
		s.cache, err = cache.New(fast, durable, cache.WithLogger(logger.Discard()))
	} else {
		s.cache, err = cache.New(fast, nil, cache.WithLogger(logger.Discard()))
	}
	s.Require().NoError(err)

	fetcher, err := fetch.New(s.origin, namespace, fetch.WithCache(s.cache), fetch.WithLogger(logger.Discard()))
	s.Require().NoError(err)
	comp, err := compositor.New(compositor.NewCodec(compositor.DefaultJPEGQuality))
	s.Require().NoError(err)

	svc, err := New(s.cache, fetcher, comp,
		WithLogger(logger.Discard()),
		WithMetrics(s.metrics),
		WithDefaultFormat(models.FormatPNG),
		WithCatalog(s.origin, namespace),
	)
	s.Require().NoError(err)
	return svc
}

func (s *ServiceSuite) plateKey(view models.View) string {
	return models.OriginKey(namespace, models.PlateEntry(view))
}

func (s *ServiceSuite) layerKey(view models.View, layer models.Layer) string {
	return models.OriginKey(namespace, models.LayerEntry(view, layer))
}

func (s *ServiceSuite) putPlate(view models.View) {
	s.Require().NoError(s.origin.Put(s.ctx, s.plateKey(view), solidPNG(s.T(), color.NRGBA{R: 200, G: 200, B: 200, A: 255})))
}

func (s *ServiceSuite) putLayer(view models.View, layer models.Layer) {
	s.Require().NoError(s.origin.Put(s.ctx, s.layerKey(view, layer), solidPNG(s.T(), color.NRGBA{B: 255, A: 255})))
}

func (s *ServiceSuite) render(params string) (*models.Result, error) {
	return s.service.Render(s.ctx, models.CompositionRequest{Params: params})
}

func (s *ServiceSuite) TestMissThenHit() {
	s.putPlate(models.ViewFront)
	s.putLayer(models.ViewFront, hoodie)

	first, err := s.render("hoodies/baerskin4-black")
	s.Require().NoError(err)
	s.False(first.CacheHit)
	s.Equal("image/png", first.ContentType)
	s.Equal([]models.Layer{hoodie}, first.Layers)
	s.NotEmpty(first.Image)

	second, err := s.render("hoodies/baerskin4-black")
	s.Require().NoError(err)
	s.True(second.CacheHit)
	s.Equal(first.CacheKey, second.CacheKey)
	s.Equal(first.Image, second.Image)
	s.Equal(1, s.origin.Gets(s.layerKey(models.ViewFront, hoodie)))
	s.Equal(2, testutil.CollectAndCount(s.metrics.RenderLatency))
}

func (s *ServiceSuite) TestEquivalentRequestsShareACacheEntry() {
	s.putPlate(models.ViewFront)
	s.putLayer(models.ViewFront, hoodie)
	s.putLayer(models.ViewFront, pants)

	first, err := s.render("hoodies/baerskin4-black-xl,pants/cargo-darkgreen")
	s.Require().NoError(err)
	s.False(first.CacheHit)

	second, err := s.render(" pants/cargo-darkgreen , hoodies/baerskin4-black-xl")
	s.Require().NoError(err)
	s.True(second.CacheHit)
	s.Equal(first.CacheKey, second.CacheKey)
	s.Equal([]models.Layer{pants, hoodie}, second.Layers)
}

func (s *ServiceSuite) TestDuplicateOrderSelectsItsOwnEntry() {
	black := models.Layer{Kind: models.KindHoodies, Sku: "hoodie-black"}
	red := models.Layer{Kind: models.KindHoodies, Sku: "hoodie-red"}
	s.putPlate(models.ViewFront)
	s.Require().NoError(s.origin.Put(s.ctx, s.layerKey(models.ViewFront, black), solidPNG(s.T(), color.NRGBA{A: 255})))
	s.Require().NoError(s.origin.Put(s.ctx, s.layerKey(models.ViewFront, red), solidPNG(s.T(), color.NRGBA{R: 255, A: 255})))

	redWins, err := s.render("hoodies/hoodie-black,hoodies/hoodie-red")
	s.Require().NoError(err)
	s.Equal([]models.Layer{red}, redWins.Layers)

	blackWins, err := s.render("hoodies/hoodie-red,hoodies/hoodie-black")
	s.Require().NoError(err)
	s.Equal([]models.Layer{black}, blackWins.Layers)
	s.False(blackWins.CacheHit)
	s.NotEqual(redWins.CacheKey, blackWins.CacheKey)
	s.NotEqual(redWins.Image, blackWins.Image)

	plain, err := s.render("hoodies/hoodie-black")
	s.Require().NoError(err)
	s.True(plain.CacheHit, "the replaced duplicate does not reach the key")
	s.Equal(blackWins.CacheKey, plain.CacheKey)
	s.Equal(blackWins.Image, plain.Image)
}

func (s *ServiceSuite) TestBypassRerendersAndWritesThrough() {
	s.putPlate(models.ViewFront)
	s.putLayer(models.ViewFront, hoodie)
	layerKey := s.layerKey(models.ViewFront, hoodie)

	_, err := s.render("hoodies/baerskin4-black")
	s.Require().NoError(err)

	bypassed, err := s.service.Render(s.ctx, models.CompositionRequest{Params: "hoodies/baerskin4-black", BypassCache: true})
	s.Require().NoError(err)
	s.False(bypassed.CacheHit)
	s.Equal(2, s.origin.Gets(layerKey), "bypass reads assets from the origin")

	after, err := s.render("hoodies/baerskin4-black")
	s.Require().NoError(err)
	s.True(after.CacheHit)
	s.Equal(2, s.origin.Gets(layerKey))
}

func (s *ServiceSuite) TestMissingLayerDegradesAndIsNotCached() {
	s.putPlate(models.ViewFront)
	s.putLayer(models.ViewFront, hoodie)

	result, err := s.render("hoodies/baerskin4-black,pants/cargo-darkgreen")
	s.Require().NoError(err)
	s.True(result.Degraded())
	s.Equal([]string{"pants/cargo-darkgreen"}, result.OmittedNames())
	s.ErrorIs(result.Omitted[0].Reason, models.ErrLayerMissing)
	s.NotEmpty(result.Warnings)
	s.NotEmpty(result.Image)

	again, err := s.render("hoodies/baerskin4-black,pants/cargo-darkgreen")
	s.Require().NoError(err)
	s.False(again.CacheHit)
	s.True(again.Degraded())
}

func (s *ServiceSuite) TestMissingPlateIsNotFound() {
	s.putLayer(models.ViewFront, hoodie)

	_, err := s.render("hoodies/baerskin4-black")
	s.Require().Error(err)
	s.ErrorIs(err, models.ErrPlateNotFound)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestInvalidInputFailsBeforeIO() {
	s.putPlate(models.ViewFront)

	s.Run("unknown category", func() {
		_, err := s.render("hoodies/baerskin4-black,shoes/sneaker-white")
		s.ErrorIs(err, models.ErrInvalidCategory)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Contains(err.Error(), "shoes")
	})

	s.Run("unknown view", func() {
		_, err := s.service.Render(s.ctx, models.CompositionRequest{Params: "hoodies/baerskin4-black", View: "top"})
		s.ErrorIs(err, models.ErrInvalidView)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown format", func() {
		_, err := s.service.Render(s.ctx, models.CompositionRequest{Params: "hoodies/baerskin4-black", Format: "gif"})
		s.ErrorIs(err, models.ErrInvalidFormat)
	})

	s.Equal(0, s.origin.Gets(s.plateKey(models.ViewFront)))
	s.Equal(cache.Stats{Tier1Capacity: 64, Tier2State: "none"}, s.service.Stats())
}

func (s *ServiceSuite) TestEmptyParamsRendersPlate() {
	s.putPlate(models.ViewBack)

	result, err := s.service.Render(s.ctx, models.CompositionRequest{Params: "", View: models.ViewBack, Format: models.FormatJPEG})
	s.Require().NoError(err)
	s.Empty(result.Layers)
	s.Equal("image/jpeg", result.ContentType)

	_, _, err = image.Decode(bytes.NewReader(result.Image))
	s.NoError(err)
}

func (s *ServiceSuite) TestViewFiltersLayers() {
	s.putPlate(models.ViewBack)
	s.putLayer(models.ViewBack, hoodie)

	result, err := s.service.Render(s.ctx, models.CompositionRequest{
		Params: "hoodies/baerskin4-black,patches-left/americanflagpatch-red",
		View:   models.ViewBack,
	})
	s.Require().NoError(err)
	s.Equal([]models.Layer{hoodie}, result.Layers)
	s.False(result.Degraded())
}

func (s *ServiceSuite) TestCacheWriteFailureIsAWarning() {
	ctrl := gomock.NewController(s.T())
	durable := mocks.NewMockDurableTier(ctrl)
	durable.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound).AnyTimes()
	durable.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused")).AnyTimes()
	svc := s.newService(durable)

	s.putPlate(models.ViewFront)
	s.putLayer(models.ViewFront, hoodie)

	result, err := svc.Render(s.ctx, models.CompositionRequest{Params: "hoodies/baerskin4-black"})
	s.Require().NoError(err)
	s.NotEmpty(result.Image)
	s.Require().NotEmpty(result.Warnings)
	s.Contains(result.Warnings[len(result.Warnings)-1], models.ErrCacheWrite.Error())

	again, err := svc.Render(s.ctx, models.CompositionRequest{Params: "hoodies/baerskin4-black"})
	s.Require().NoError(err)
	s.True(again.CacheHit, "tier 1 still holds the composite")
}

func (s *ServiceSuite) TestProducts() {
	s.Run("missing catalog", func() {
		_, err := s.service.Products(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("cached catalog", func() {
		catalog := []byte(`{"products":[]}`)
		s.Require().NoError(s.origin.Put(s.ctx, models.CachedArtifactKey(namespace, ProductsCatalogName, "json"), catalog))
		data, err := s.service.Products(s.ctx)
		s.Require().NoError(err)
		s.Equal(catalog, data)
	})
}

func (s *ServiceSuite) TestClearFastTier() {
	s.putPlate(models.ViewFront)
	_, err := s.render("")
	s.Require().NoError(err)
	s.Positive(s.service.Stats().Tier1Size)

	s.service.ClearFastTier(s.ctx)
	s.Zero(s.service.Stats().Tier1Size)
}

func TestNewRequiresDependencies(t *testing.T) {
	fast, _ := cache.NewLRU(1)
	c, _ := cache.New(fast, nil)
	f, _ := fetch.New(origin.NewInMemory(), namespace)
	comp, _ := compositor.New(compositor.NewCodec(0))

	_, err := New(nil, f, comp)
	if err == nil {
		t.Fatal("expected error without cache")
	}
	_, err = New(c, nil, comp)
	if err == nil {
		t.Fatal("expected error without fetcher")
	}
	_, err = New(c, f, nil)
	if err == nil {
		t.Fatal("expected error without compositor")
	}
}

func TestTranslate(t *testing.T) {
	svc := &Service{logger: logger.Discard()}
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		code dErrors.Code
	}{
		{"category", models.ErrInvalidCategory, dErrors.CodeInvalidInput},
		{"plate", models.ErrPlateNotFound, dErrors.CodeNotFound},
		{"decode", &compositor.DecodeError{Input: "plate", Err: errors.New("bad header")}, dErrors.CodeBadUpstream},
		{"origin", models.ErrOriginUnavailable, dErrors.CodeUnavailable},
		{"cancelled", context.Canceled, dErrors.CodeRequestCancelled},
		{"deadline", context.DeadlineExceeded, dErrors.CodeTimeout},
		{"other", errors.New("boom"), dErrors.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.translate(ctx, tt.err)
			if !dErrors.HasCode(err, tt.code) {
				t.Fatalf("expected code %s, got %v", tt.code, err)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v to stay in the chain", tt.err)
			}
		})
	}
}
