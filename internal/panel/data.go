package panel

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"mpipanel/internal/dataset"
)

// Sample is the complete-case estimation sample of one specification. Rows
// are dropped when the dependent variable or any regressor is missing, so
// every specification selects its own subset of the panel.
type Sample struct {
	Spec   Spec
	Labels []string

	Y []float64
	X *mat.Dense

	Entities []string
	Periods  []int

	EntityIndex map[string][]int
	PeriodIndex map[int][]int

	// EntityLevels and PeriodLevels are the distinct values in sorted
	// order, fixing the reference categories of absorbed effects.
	EntityLevels []string
	PeriodLevels []int
}

// N returns the number of usable observations.
func (s *Sample) N() int { return len(s.Y) }

// K returns the number of structural regressors.
func (s *Sample) K() int { return len(s.Labels) }

// NumEntities returns the number of distinct countries in the sample.
func (s *Sample) NumEntities() int { return len(s.EntityLevels) }

// NumPeriods returns the number of distinct years in the sample.
func (s *Sample) NumPeriods() int { return len(s.PeriodLevels) }

// BuildSample extracts the complete-case sample of spec from the merged
// panel. Interaction terms are materialized as products before the
// missingness filter, so a missing factor drops the row like any other
// missing regressor.
func BuildSample(df dataframe.DataFrame, spec Spec) (*Sample, error) {
	terms := spec.Terms()
	labels := make([]string, len(terms))
	for i, t := range terms {
		labels[i] = t.Label()
	}

	dep, err := dataset.FloatColumn(df, spec.Dependent)
	if err != nil {
		return nil, fmt.Errorf("specification %s: %w", spec.Name, err)
	}
	codes, err := dataset.StringColumn(df, dataset.ColCountryCode)
	if err != nil {
		return nil, fmt.Errorf("specification %s: %w", spec.Name, err)
	}
	years, err := dataset.IntColumn(df, dataset.ColYear)
	if err != nil {
		return nil, fmt.Errorf("specification %s: %w", spec.Name, err)
	}

	termVals := make([][]float64, len(terms))
	for i, term := range terms {
		vals, err := dataset.FloatColumn(df, term.Column)
		if err != nil {
			return nil, fmt.Errorf("specification %s: %w", spec.Name, err)
		}
		if term.InteractWith != "" {
			with, err := dataset.FloatColumn(df, term.InteractWith)
			if err != nil {
				return nil, fmt.Errorf("specification %s: %w", spec.Name, err)
			}
			prod := make([]float64, len(vals))
			for r := range vals {
				prod[r] = vals[r] * with[r]
			}
			vals = prod
		}
		termVals[i] = vals
	}

	var keep []int
	for r := range dep {
		if math.IsNaN(dep[r]) {
			continue
		}
		complete := true
		for _, vals := range termVals {
			if math.IsNaN(vals[r]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, r)
		}
	}

	n := len(keep)
	if n == 0 {
		return nil, &InsufficientDataError{Spec: spec.Name, Observations: 0, Parameters: len(terms)}
	}

	sample := &Sample{
		Spec:        spec,
		Labels:      labels,
		Y:           make([]float64, n),
		X:           mat.NewDense(n, len(terms), nil),
		Entities:    make([]string, n),
		Periods:     make([]int, n),
		EntityIndex: make(map[string][]int),
		PeriodIndex: make(map[int][]int),
	}

	seen := make(map[string]map[int]bool)
	for i, r := range keep {
		code, year := codes[r], years[r]
		if seen[code] == nil {
			seen[code] = make(map[int]bool)
		}
		if seen[code][year] {
			return nil, &dataset.DuplicateKeyError{Dataset: "panel", CountryCode: code, Year: year}
		}
		seen[code][year] = true

		sample.Y[i] = dep[r]
		for j, vals := range termVals {
			sample.X.Set(i, j, vals[r])
		}
		sample.Entities[i] = code
		sample.Periods[i] = year
		sample.EntityIndex[code] = append(sample.EntityIndex[code], i)
		sample.PeriodIndex[year] = append(sample.PeriodIndex[year], i)
	}

	for code := range sample.EntityIndex {
		sample.EntityLevels = append(sample.EntityLevels, code)
	}
	sort.Strings(sample.EntityLevels)
	for year := range sample.PeriodIndex {
		sample.PeriodLevels = append(sample.PeriodLevels, year)
	}
	sort.Ints(sample.PeriodLevels)

	return sample, nil
}
