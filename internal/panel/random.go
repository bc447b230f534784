package panel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FitRandomEffects estimates the Swamy-Arora random-effects specification
// with year dummies. Variance components come from the within and between
// regressions, each observation is quasi-demeaned by its country's theta,
// and the structural slopes are fit by least squares on the transformed
// data. The between step regresses country means on the structural
// regressors only; year dummy means are absorbed by its intercept.
func FitRandomEffects(sample *Sample) (*EstimateResult, error) {
	n, k := sample.N(), sample.K()
	en, tn := sample.NumEntities(), sample.NumPeriods()

	kTime := tn - 1
	kFull := 1 + k + kTime

	withinDOF := n - en - (k + kTime)
	betweenDOF := en - (k + 1)
	glsDOF := n - kFull
	switch {
	case withinDOF < 1:
		return nil, &InsufficientDataError{Spec: sample.Spec.Name, Observations: n, Parameters: en + k + kTime}
	case betweenDOF < 1:
		return nil, &InsufficientDataError{Spec: sample.Spec.Name, Observations: en, Parameters: k + 1}
	case glsDOF < 1:
		return nil, &InsufficientDataError{Spec: sample.Spec.Name, Observations: n, Parameters: kFull}
	}

	xcols := make([][]float64, k)
	for j := 0; j < k; j++ {
		col := make([]float64, n)
		mat.Col(col, j, sample.X)
		xcols[j] = col
	}

	// Year dummies against the earliest year in the sample.
	dummies := make([][]float64, kTime)
	for j := 0; j < kTime; j++ {
		level := sample.PeriodLevels[j+1]
		col := make([]float64, n)
		for i, p := range sample.Periods {
			if p == level {
				col[i] = 1
			}
		}
		dummies[j] = col
	}

	sigmaE2, err := withinVariance(sample, xcols, dummies, withinDOF)
	if err != nil {
		return nil, fmt.Errorf("within step: %w", err)
	}

	sigmaU2, err := betweenVariance(sample, xcols, betweenDOF, sigmaE2)
	if err != nil {
		return nil, fmt.Errorf("between step: %w", err)
	}

	theta := make(map[string]float64, en)
	thetaMin, thetaMax := math.Inf(1), math.Inf(-1)
	for _, code := range sample.EntityLevels {
		ti := float64(len(sample.EntityIndex[code]))
		denom := sigmaE2 + ti*sigmaU2
		t := 0.0
		if denom > 0 {
			t = 1 - math.Sqrt(sigmaE2/denom)
		}
		theta[code] = t
		thetaMin = math.Min(thetaMin, t)
		thetaMax = math.Max(thetaMax, t)
	}

	gy := make([]float64, n)
	gx := mat.NewDense(n, kFull, nil)
	ymeans := entityMeans(sample, sample.Y)
	for i := range gy {
		th := theta[sample.Entities[i]]
		gy[i] = sample.Y[i] - th*ymeans[sample.Entities[i]]
		gx.Set(i, 0, 1-th)
	}
	col := 1
	for _, base := range append(append([][]float64{}, xcols...), dummies...) {
		means := entityMeans(sample, base)
		for i := range base {
			th := theta[sample.Entities[i]]
			gx.Set(i, col, base[i]-th*means[sample.Entities[i]])
		}
		col++
	}

	fit, err := solveOLS(gx, gy, glsDOF)
	if err != nil {
		return nil, fmt.Errorf("gls step: %w", err)
	}

	// Overall fit on the original scale.
	fitted := make([]float64, n)
	for i := 0; i < n; i++ {
		v := fit.beta[0]
		for j, base := range xcols {
			v += fit.beta[1+j] * base[i]
		}
		for j, base := range dummies {
			v += fit.beta[1+k+j] * base[i]
		}
		fitted[i] = v
	}
	r2 := math.NaN()
	if c := stat.Correlation(fitted, sample.Y, nil); !math.IsNaN(c) {
		r2 = c * c
	}

	labels := append([]string{"Intercept"}, sample.Labels...)

	return &EstimateResult{
		Spec:         sample.Spec.Name,
		Method:       MethodRandomEffects,
		Coefficients: coefficientTable(labels, fit.beta[:1+k], subCovariance(fit.cov, 0, 1+k), glsDOF),
		SlopeLabels:  sample.Labels,
		SlopeBeta:    fit.beta[1 : 1+k],
		SlopeCov:     subCovariance(fit.cov, 1, k),
		N:            n,
		Entities:     en,
		Periods:      tn,
		DF:           glsDOF,
		RSquared:     r2,
		Sigma2:       fit.sigma2,
		Variance: &VarianceComponents{
			SigmaE2:  sigmaE2,
			SigmaU2:  sigmaU2,
			ThetaMin: thetaMin,
			ThetaMax: thetaMax,
		},
	}, nil
}

// withinVariance estimates the idiosyncratic variance from the entity
// demeaned regression of y on the structural regressors and year dummies.
func withinVariance(sample *Sample, xcols, dummies [][]float64, dof int) (float64, error) {
	n := sample.N()
	wy := append([]float64(nil), sample.Y...)
	wcols := make([][]float64, 0, len(xcols)+len(dummies))
	for _, base := range append(append([][]float64{}, xcols...), dummies...) {
		wcols = append(wcols, append([]float64(nil), base...))
	}
	for _, rows := range sample.EntityIndex {
		demeanGroup(wy, rows)
		for _, c := range wcols {
			demeanGroup(c, rows)
		}
	}
	xw := mat.NewDense(n, len(wcols), nil)
	for j, c := range wcols {
		xw.SetCol(j, c)
	}
	fit, err := solveOLS(xw, wy, dof)
	if err != nil {
		return 0, err
	}
	return fit.sigma2, nil
}

// betweenVariance estimates the entity variance component from the
// regression of country means on country mean regressors, discounting the
// idiosyncratic share by the harmonic mean of observations per country.
// The component is floored at zero.
func betweenVariance(sample *Sample, xcols [][]float64, dof int, sigmaE2 float64) (float64, error) {
	en := sample.NumEntities()
	k := len(xcols)

	xb := mat.NewDense(en, k+1, nil)
	yb := make([]float64, en)
	var tharmInv float64
	for i, code := range sample.EntityLevels {
		rows := sample.EntityIndex[code]
		ti := float64(len(rows))
		tharmInv += 1 / ti
		xb.Set(i, 0, 1)
		var ysum float64
		for _, r := range rows {
			ysum += sample.Y[r]
		}
		yb[i] = ysum / ti
		for j, base := range xcols {
			var s float64
			for _, r := range rows {
				s += base[r]
			}
			xb.Set(i, j+1, s/ti)
		}
	}

	fit, err := solveOLS(xb, yb, dof)
	if err != nil {
		return 0, err
	}
	tharm := float64(en) / tharmInv
	return math.Max(0, fit.sigma2-sigmaE2/tharm), nil
}

// entityMeans returns the per-country mean of col over the sample rows.
func entityMeans(sample *Sample, col []float64) map[string]float64 {
	m := make(map[string]float64, len(sample.EntityIndex))
	for code, rows := range sample.EntityIndex {
		var s float64
		for _, r := range rows {
			s += col[r]
		}
		m[code] = s / float64(len(rows))
	}
	return m
}
