package domain

import "github.com/shopspring/decimal"

// Dataset holds the direct measurements read from the existing PM2.5 file,
// indexed three ways for the fallback policy.
type Dataset struct {
	// Values maps FIPS code to its direct measurement. A repeated code keeps
	// the last value read.
	Values map[string]decimal.Decimal

	// StateValues maps a 2-digit state prefix to every value read for that
	// state, in input order. Repeated codes contribute once per occurrence.
	StateValues map[string][]decimal.Decimal

	// National holds every value read, for the national mean.
	National []decimal.Decimal
}

// NewDataset returns an empty Dataset ready for Add.
func NewDataset() *Dataset {
	return &Dataset{
		Values:      make(map[string]decimal.Decimal),
		StateValues: make(map[string][]decimal.Decimal),
	}
}

// Add records a direct measurement for a normalized FIPS code.
func (d *Dataset) Add(fips string, v decimal.Decimal) {
	d.Values[fips] = v
	state := StateOf(fips)
	d.StateValues[state] = append(d.StateValues[state], v)
	d.National = append(d.National, v)
}

// Len reports how many values were recorded, counting repeats.
func (d *Dataset) Len() int { return len(d.National) }
