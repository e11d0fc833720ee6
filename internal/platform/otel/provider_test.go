package otel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"birl/internal/platform/config"
	"birl/internal/platform/otel"
)

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), config.TraceConfig{ServiceName: "test"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetupCreatesProvider(t *testing.T) {
	// Non-routable; nothing is exported before shutdown.
	shutdown, err := otel.Setup(context.Background(), config.TraceConfig{Endpoint: "http://192.0.2.1:4318"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
