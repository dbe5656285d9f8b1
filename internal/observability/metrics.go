package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for one backfill run, registered on
// a private registry that Push sends as a unit.
type Metrics struct {
	Registry *prometheus.Registry

	MeasurementsLoaded prometheus.Counter
	CountiesLoaded     prometheus.Counter
	Estimates          *prometheus.CounterVec // labels: method={override,direct,state_mean,national_mean}
	EstimatesLoaded    *prometheus.CounterVec // labels: loader={csv,kafka}
	LoadErrors         *prometheus.CounterVec // labels: loader={csv,kafka}

	NationalMean         prometheus.Gauge
	RunDuration          prometheus.Gauge
	LastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates all run metrics and registers them with a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		MeasurementsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pm25_backfill",
			Name:      "measurements_loaded_total",
			Help:      "Direct PM2.5 measurements read from the existing dataset.",
		}),
		CountiesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pm25_backfill",
			Name:      "reference_counties_loaded_total",
			Help:      "County identifiers read from the reference places file, duplicates included.",
		}),
		Estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm25_backfill",
			Name:      "estimates_total",
			Help:      "County estimates produced, by fallback method.",
		}, []string{"method"}),
		EstimatesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm25_backfill",
			Name:      "estimates_loaded_total",
			Help:      "Estimates handed to each loader.",
		}, []string{"loader"}),
		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm25_backfill",
			Name:      "load_errors_total",
			Help:      "Loader failures by loader.",
		}, []string{"loader"}),
		NationalMean: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pm25_backfill",
			Name:      "national_mean_ugm3",
			Help:      "National mean PM2.5 used as the last-resort fallback.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pm25_backfill",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pm25_backfill",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	m.Registry.MustRegister(
		m.MeasurementsLoaded,
		m.CountiesLoaded,
		m.Estimates,
		m.EstimatesLoaded,
		m.LoadErrors,
		m.NationalMean,
		m.RunDuration,
		m.LastSuccessTimestamp,
	)

	return m
}
