package govindex

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"mpipanel/internal/dataset"
)

// MinCompleteRows is the smallest complete-case sample the reduction accepts.
const MinCompleteRows = 10

// Result describes one governance reduction.
type Result struct {
	// Loadings are the first-component weights, one per indicator in
	// dataset.GovernanceColumns order.
	Loadings []float64
	// ExplainedShare is the share of standardized variance captured by the
	// first component.
	ExplainedShare float64
	RowsUsed       int
	RowsTotal      int
}

// Reduce attaches the composite governance score to the panel. Rows with all
// six indicators present are standardized to zero mean and unit variance and
// projected onto the first principal component; every other row keeps a
// missing score. The sign of an eigenvector is arbitrary, so the component
// is oriented to a positive loading sum; callers should still read the
// loadings before interpreting score direction.
func Reduce(df dataframe.DataFrame) (dataframe.DataFrame, *Result, error) {
	cols := dataset.GovernanceColumns()
	data := make([][]float64, len(cols))
	for i, name := range cols {
		vals, err := dataset.FloatColumn(df, name)
		if err != nil {
			return dataframe.DataFrame{}, nil, err
		}
		data[i] = vals
	}

	n := df.Nrow()
	completeRows := make([]int, 0, n)
	for r := 0; r < n; r++ {
		complete := true
		for _, col := range data {
			if math.IsNaN(col[r]) {
				complete = false
				break
			}
		}
		if complete {
			completeRows = append(completeRows, r)
		}
	}

	if len(completeRows) < MinCompleteRows {
		return dataframe.DataFrame{}, nil, fmt.Errorf(
			"governance index: %d complete observations, need at least %d",
			len(completeRows), MinCompleteRows)
	}

	nc := len(completeRows)
	standardized := mat.NewDense(nc, len(cols), nil)
	for j, col := range data {
		sample := make([]float64, nc)
		for i, r := range completeRows {
			sample[i] = col[r]
		}
		mean, std := stat.MeanStdDev(sample, nil)
		if std == 0 {
			return dataframe.DataFrame{}, nil, fmt.Errorf(
				"governance index: indicator %s has zero variance", cols[j])
		}
		for i, v := range sample {
			standardized.Set(i, j, (v-mean)/std)
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(standardized, nil); !ok {
		return dataframe.DataFrame{}, nil, fmt.Errorf("governance index: principal component decomposition failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	vars := pc.VarsTo(nil)

	loadings := make([]float64, len(cols))
	for j := range cols {
		loadings[j] = vectors.At(j, 0)
	}
	if floats.Sum(loadings) < 0 {
		floats.Scale(-1, loadings)
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = math.NaN()
	}
	for i, r := range completeRows {
		var s float64
		for j := range cols {
			s += standardized.At(i, j) * loadings[j]
		}
		scores[r] = s
	}

	out := df.Mutate(series.New(scores, series.Float, dataset.ColGovernanceIndex))
	if out.Err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("failed to attach governance index: %w", out.Err)
	}

	return out, &Result{
		Loadings:       loadings,
		ExplainedShare: vars[0] / floats.Sum(vars),
		RowsUsed:       nc,
		RowsTotal:      n,
	}, nil
}
