package panel

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	demeanTolerance     = 1e-10
	maxDemeanIterations = 100
)

// FitFixedEffects estimates the two-way within specification: country and
// year effects are absorbed by iterated demeaning and the structural
// slopes are fit on the transformed data. The demeaning alternates between
// entity and period groups until the largest removed mean falls below
// tolerance, which handles unbalanced panels exactly.
func FitFixedEffects(sample *Sample) (*EstimateResult, error) {
	n, k := sample.N(), sample.K()
	en, tn := sample.NumEntities(), sample.NumPeriods()

	absorbed := en + tn - 1
	dof := n - k - absorbed
	if dof < 1 {
		return nil, &InsufficientDataError{
			Spec:         sample.Spec.Name,
			Observations: n,
			Parameters:   k + absorbed,
		}
	}

	cols := make([][]float64, k+1)
	cols[0] = append([]float64(nil), sample.Y...)
	for j := 0; j < k; j++ {
		col := make([]float64, n)
		mat.Col(col, j, sample.X)
		cols[j+1] = col
	}

	for iter := 0; iter < maxDemeanIterations; iter++ {
		var shift float64
		for _, rows := range sample.EntityIndex {
			for _, col := range cols {
				shift = math.Max(shift, demeanGroup(col, rows))
			}
		}
		for _, rows := range sample.PeriodIndex {
			for _, col := range cols {
				shift = math.Max(shift, demeanGroup(col, rows))
			}
		}
		if shift < demeanTolerance {
			break
		}
	}

	yw := cols[0]
	xw := mat.NewDense(n, k, nil)
	for j := 0; j < k; j++ {
		xw.SetCol(j, cols[j+1])
	}

	fit, err := solveOLS(xw, yw, dof)
	if err != nil {
		return nil, err
	}

	r2 := math.NaN()
	if fit.tss > 0 {
		r2 = 1 - fit.rss/fit.tss
	}

	return &EstimateResult{
		Spec:         sample.Spec.Name,
		Method:       MethodFixedEffects,
		Coefficients: coefficientTable(sample.Labels, fit.beta, fit.cov, dof),
		SlopeLabels:  sample.Labels,
		SlopeBeta:    fit.beta,
		SlopeCov:     fit.cov,
		N:            n,
		Entities:     en,
		Periods:      tn,
		DF:           dof,
		RSquared:     r2,
		Sigma2:       fit.sigma2,
	}, nil
}

// demeanGroup subtracts the group mean in place and reports its magnitude.
func demeanGroup(col []float64, rows []int) float64 {
	var sum float64
	for _, r := range rows {
		sum += col[r]
	}
	mean := sum / float64(len(rows))
	for _, r := range rows {
		col[r] -= mean
	}
	return math.Abs(mean)
}
