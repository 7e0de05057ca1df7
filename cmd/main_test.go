package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/dispatch/internal/config"
	"github.com/UnknownOlympus/dispatch/internal/geocoding"
	"github.com/UnknownOlympus/dispatch/internal/metrics"
	"github.com/UnknownOlympus/dispatch/internal/parser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()

	assert.True(t, setupLogger(envLocal).Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger(envDev).Enabled(ctx, slog.LevelInfo))
	assert.False(t, setupLogger(envDev).Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger(envProd).Enabled(ctx, slog.LevelWarn))
	assert.False(t, setupLogger(envProd).Enabled(ctx, slog.LevelInfo))
	assert.False(t, setupLogger("unknown").Enabled(ctx, slog.LevelWarn))
}

func TestNewAddressParser(t *testing.T) {
	logger := slog.Default()
	m := metrics.NewMetrics(prometheus.NewRegistry())

	t.Run("regex", func(t *testing.T) {
		p, err := newAddressParser(&config.Config{Parser: "regex"}, m, logger)
		require.NoError(t, err)
		assert.IsType(t, parser.RegexParser{}, p)
	})

	t.Run("nominatim", func(t *testing.T) {
		p, err := newAddressParser(&config.Config{Parser: string(geocoding.ProviderTypeNominatim), RateLimit: 1}, m, logger)
		require.NoError(t, err)
		assert.IsType(t, &parser.GeocodedParser{}, p)
	})

	t.Run("google without key", func(t *testing.T) {
		_, err := newAddressParser(&config.Config{Parser: string(geocoding.ProviderTypeGoogle)}, m, logger)
		require.ErrorContains(t, err, "failed to create geocoding provider")
	})
}
