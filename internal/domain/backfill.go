package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Method records which tier of the fallback policy produced an estimate.
type Method string

const (
	MethodDirect       Method = "direct"
	MethodStateMean    Method = "state_mean"
	MethodNationalMean Method = "national_mean"
	MethodOverride     Method = "override"
)

// Methods lists every fallback tier in policy order.
var Methods = []Method{MethodOverride, MethodDirect, MethodStateMean, MethodNationalMean}

// Estimate is one output row: a county and its backfilled PM2.5 value.
type Estimate struct {
	FIPS   string          `json:"fips"`
	Value  decimal.Decimal `json:"-"`
	PM25   string          `json:"pm25_mean_2016_2024"`
	Method Method          `json:"method"`
}

// Aggregates are the fallback means derived from a Dataset.
type Aggregates struct {
	National decimal.Decimal
	States   map[string]decimal.Decimal
}

// Result is the complete backfilled dataset for one run.
type Result struct {
	Estimates   []Estimate
	Aggregates  Aggregates
	GeneratedAt time.Time
}

// CountByMethod tallies estimates per fallback tier.
func (r Result) CountByMethod() map[Method]int {
	counts := make(map[Method]int, len(Methods))
	for _, e := range r.Estimates {
		counts[e.Method]++
	}
	return counts
}

// ComputeAggregates derives the national mean and one mean per state present
// in the dataset. It returns ErrEmptyDataset when there are no values.
func ComputeAggregates(d *Dataset) (Aggregates, error) {
	if d == nil || d.Len() == 0 {
		return Aggregates{}, ErrEmptyDataset
	}
	states := make(map[string]decimal.Decimal, len(d.StateValues))
	for state, values := range d.StateValues {
		if len(values) == 0 {
			continue
		}
		states[state] = mean(values)
	}
	return Aggregates{National: mean(d.National), States: states}, nil
}

// Backfill assigns a value to every county in the reference list. The list is
// deduplicated and sorted; the sentinel code is dropped and the override code
// is pinned to the national mean regardless of any direct measurement.
func Backfill(d *Dataset, counties []string) (Result, error) {
	agg, err := ComputeAggregates(d)
	if err != nil {
		return Result{}, err
	}

	universe := CountyUniverse(counties)
	estimates := make([]Estimate, 0, len(universe))
	for _, fips := range universe {
		if fips == SentinelFIPS {
			continue
		}
		value, method := resolve(fips, d, agg)
		estimates = append(estimates, Estimate{
			FIPS:   fips,
			Value:  value,
			PM25:   FormatValue(value),
			Method: method,
		})
	}

	return Result{
		Estimates:   estimates,
		Aggregates:  agg,
		GeneratedAt: clock.Now().UTC(),
	}, nil
}

func resolve(fips string, d *Dataset, agg Aggregates) (decimal.Decimal, Method) {
	if fips == OverrideFIPS {
		return agg.National, MethodOverride
	}
	if v, ok := d.Values[fips]; ok {
		return v, MethodDirect
	}
	if v, ok := agg.States[StateOf(fips)]; ok {
		return v, MethodStateMean
	}
	return agg.National, MethodNationalMean
}
