package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/dispatch/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	appMetrics.Runs.WithLabelValues("greedy", "success").Inc()
	appMetrics.Matches.Add(3)
	appMetrics.Leftovers.WithLabelValues("driver").Set(2)
	appMetrics.ProviderErrors.WithLabelValues("google").Inc()

	assert.InDelta(t, 1.0, testutil.ToFloat64(appMetrics.Runs.WithLabelValues("greedy", "success")), 0)
	assert.InDelta(t, 3.0, testutil.ToFloat64(appMetrics.Matches), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(appMetrics.Leftovers.WithLabelValues("driver")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "dispatch_runs_total")
	assert.Contains(t, names, "dispatch_provider_errors_total")
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = metrics.NewMetrics(reg)

	assert.Panics(t, func() { metrics.NewMetrics(reg) })
}
