package report

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"

	"mpipanel/internal/dataset"
)

// minPairObservations is the smallest overlap that defines a correlation.
const minPairObservations = 2

// CorrelationMatrix holds pairwise-complete Pearson correlations.
type CorrelationMatrix struct {
	Variables []string
	Values    [][]float64
}

// Correlate computes the pairwise-complete Pearson correlation across the
// given columns. Each pair uses every row where both values are present.
// Pairs with fewer than two shared observations or a constant member stay
// NaN; the matrix is symmetric with a unit diagonal wherever the variable
// has any variation.
func Correlate(df dataframe.DataFrame, columns []string) (*CorrelationMatrix, error) {
	cols := make([][]float64, len(columns))
	for i, name := range columns {
		vals, err := dataset.FloatColumn(df, name)
		if err != nil {
			return nil, fmt.Errorf("correlate: %w", err)
		}
		cols[i] = vals
	}

	n := len(columns)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pairwiseCorrelation(cols[i], cols[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrelationMatrix{Variables: columns, Values: values}, nil
}

func pairwiseCorrelation(a, b []float64) float64 {
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(b))
	for r := range a {
		if math.IsNaN(a[r]) || math.IsNaN(b[r]) {
			continue
		}
		xs = append(xs, a[r])
		ys = append(ys, b[r])
	}
	if len(xs) < minPairObservations {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
