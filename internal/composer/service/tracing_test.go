package service

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"birl/internal/composer/models"
)

// Installed once, on first use; the package tracers bind to the first global
// provider.
var spanRecorder = sync.OnceValue(func() *tracetest.SpanRecorder {
	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	return rec
})

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func (s *ServiceSuite) TestRenderRecordsSpans() {
	s.putPlate(models.ViewFront)
	s.putLayer(models.ViewFront, hoodie)

	before := len(spanRecorder().Ended())
	result, err := s.render("hoodies/baerskin4-black")
	s.Require().NoError(err)

	var render, fetch sdktrace.ReadOnlySpan
	for _, span := range spanRecorder().Ended()[before:] {
		switch span.Name() {
		case "service.Render":
			render = span
		case "fetch.Fetch":
			fetch = span
		}
	}
	s.Require().NotNil(render)
	s.Require().NotNil(fetch)
	s.Equal(render.SpanContext().SpanID(), fetch.Parent().SpanID())

	key, ok := spanAttr(render, "cache_key")
	s.Require().True(ok)
	s.Equal(result.CacheKey, key.AsString())
	hit, ok := spanAttr(render, "cache_hit")
	s.Require().True(ok)
	s.False(hit.AsBool())
}

func (s *ServiceSuite) TestRenderSpanRecordsFailure() {
	before := len(spanRecorder().Ended())
	_, err := s.render("hoodies/baerskin4-black")
	s.Require().Error(err)

	var render sdktrace.ReadOnlySpan
	for _, span := range spanRecorder().Ended()[before:] {
		if span.Name() == "service.Render" {
			render = span
		}
	}
	s.Require().NotNil(render)
	s.Equal(codes.Error, render.Status().Code)
}
