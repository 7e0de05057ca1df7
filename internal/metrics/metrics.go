package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors recorded during an assignment run.
type Metrics struct {
	Runs            *prometheus.CounterVec
	Matches         prometheus.Counter
	Leftovers       *prometheus.GaugeVec
	TotalScore      prometheus.Gauge
	RunSeconds      *prometheus.HistogramVec
	MatchScore      prometheus.Histogram
	ProviderSeconds *prometheus.HistogramVec
	ProviderErrors  *prometheus.CounterVec
	ActiveWorkers   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Runs: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_runs_total",
			Help: "Total number of assignment runs.",
		}, []string{"strategy", "status"}),
		Matches: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "dispatch_matches_total",
			Help: "Total number of confirmed driver/address matches.",
		}),
		Leftovers: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "dispatch_leftovers",
			Help: "Number of drivers or addresses left unmatched by the last run.",
		}, []string{"kind"}),
		TotalScore: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "dispatch_total_score",
			Help: "Sum of suitability scores of the last run.",
		}),
		RunSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_run_duration_seconds",
			Help:    "Duration of the assignment computation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"strategy"}),
		MatchScore: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_match_score",
			Help:    "Suitability scores of confirmed matches.",
			Buckets: prometheus.LinearBuckets(0, 2.5, 10),
		}),
		ProviderSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ProviderErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_provider_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "dispatch_active_workers",
			Help: "Current number of workers parsing addresses.",
		}),
	}
}
