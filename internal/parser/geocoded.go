package parser

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/dispatch/internal/geocoding"
	"github.com/UnknownOlympus/dispatch/internal/metrics"
	"github.com/UnknownOlympus/dispatch/internal/models"
)

// GeocodedParser resolves address lines through a geocoding provider and falls back
// to pattern parsing when the provider cannot resolve a line.
type GeocodedParser struct {
	provider     geocoding.Provider // Provider resolving lines into structured addresses
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for provider latency and errors
	log          *slog.Logger       // Logger for fallback warnings
}

// NewGeocodedParser creates a GeocodedParser.
func NewGeocodedParser(
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	log *slog.Logger,
) *GeocodedParser {
	return &GeocodedParser{provider: provider, providerName: providerName, metrics: metrics, log: log}
}

// ParseAddress implements AddressParser. The returned Full is always the trimmed input line.
func (gp *GeocodedParser) ParseAddress(ctx context.Context, line string) models.Address {
	full := strings.TrimSpace(line)

	startTime := time.Now()
	addr, err := gp.provider.Geocode(ctx, full)
	gp.metrics.ProviderSeconds.WithLabelValues(gp.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		gp.metrics.ProviderErrors.WithLabelValues(gp.providerName).Inc()
		gp.log.WarnContext(ctx, "Failed to geocode address, using pattern parsing instead",
			"address", full, "provider", gp.providerName, "error", err)
		return ParseAddressLine(full)
	}

	addr.Full = full
	gp.log.DebugContext(ctx, "Address resolved by provider", "address", full, "street", addr.Street)

	return *addr
}
