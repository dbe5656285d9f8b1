package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/pm25-backfill/internal/domain"
	"github.com/couchcryptid/pm25-backfill/internal/observability"
)

// MeasurementSource loads the existing, partially filled PM2.5 dataset.
type MeasurementSource interface {
	LoadMeasurements(ctx context.Context) (*domain.Dataset, error)
}

// CountySource loads the reference list of county identifiers.
type CountySource interface {
	LoadCounties(ctx context.Context) ([]string, error)
}

// Loader writes a completed backfill result to a destination.
type Loader interface {
	Name() string
	Load(ctx context.Context, result domain.Result) error
}

// Pipeline runs one extract-backfill-load pass.
type Pipeline struct {
	measurements MeasurementSource
	counties     CountySource
	loaders      []Loader
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// New creates a Pipeline. Loaders run in the order given; the first failure
// stops the run before later loaders are invoked.
func New(m MeasurementSource, c CountySource, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		measurements: m,
		counties:     c,
		loaders:      loaders,
		logger:       logger,
		metrics:      metrics,
	}
}

// Run loads both inputs, backfills every reference county, and hands the
// result to each loader. Any error aborts the run.
func (p *Pipeline) Run(ctx context.Context) (domain.Result, error) {
	start := time.Now()
	p.logger.Info("backfill started", "loaders", len(p.loaders))
	defer func() {
		p.metrics.RunDuration.Set(time.Since(start).Seconds())
	}()

	dataset, err := p.measurements.LoadMeasurements(ctx)
	if err != nil {
		return domain.Result{}, fmt.Errorf("load measurements: %w", err)
	}
	p.metrics.MeasurementsLoaded.Add(float64(dataset.Len()))

	counties, err := p.counties.LoadCounties(ctx)
	if err != nil {
		return domain.Result{}, fmt.Errorf("load counties: %w", err)
	}
	p.metrics.CountiesLoaded.Add(float64(len(counties)))

	result, err := domain.Backfill(dataset, counties)
	if err != nil {
		return domain.Result{}, fmt.Errorf("backfill: %w", err)
	}
	p.recordResult(result)

	for _, l := range p.loaders {
		if err := l.Load(ctx, result); err != nil {
			p.metrics.LoadErrors.WithLabelValues(l.Name()).Inc()
			return domain.Result{}, fmt.Errorf("load %s: %w", l.Name(), err)
		}
		p.metrics.EstimatesLoaded.WithLabelValues(l.Name()).Add(float64(len(result.Estimates)))
	}

	p.metrics.LastSuccessTimestamp.Set(float64(result.GeneratedAt.Unix()))
	p.logger.Info("backfill complete",
		"counties", len(result.Estimates),
		"duration", time.Since(start),
	)
	return result, nil
}

func (p *Pipeline) recordResult(result domain.Result) {
	national, _ := result.Aggregates.National.Float64()
	p.metrics.NationalMean.Set(national)

	counts := result.CountByMethod()
	for _, m := range domain.Methods {
		p.metrics.Estimates.WithLabelValues(string(m)).Add(float64(counts[m]))
	}

	p.logger.Info("backfill computed",
		"national_mean", domain.FormatValue(result.Aggregates.National),
		"states", len(result.Aggregates.States),
		"override", counts[domain.MethodOverride],
		"direct", counts[domain.MethodDirect],
		"state_mean", counts[domain.MethodStateMean],
		"national_mean_fill", counts[domain.MethodNationalMean],
	)
}
