package panel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Hausman tests the random-effects orthogonality assumption by comparing
// the structural slopes of the two estimators. Under the null both are
// consistent and the statistic is chi squared with one degree of freedom
// per compared slope. A singular or negative definite covariance
// difference makes the test inconclusive rather than an error.
func Hausman(fe, re *EstimateResult) (*HausmanResult, error) {
	if fe == nil || re == nil {
		return nil, fmt.Errorf("hausman test needs both estimates")
	}
	if fe.Spec != re.Spec {
		return nil, fmt.Errorf("hausman test across specifications: %s vs %s", fe.Spec, re.Spec)
	}
	if len(fe.SlopeLabels) != len(re.SlopeLabels) {
		return nil, fmt.Errorf("specification %s: estimators disagree on slopes", fe.Spec)
	}
	for i, label := range fe.SlopeLabels {
		if re.SlopeLabels[i] != label {
			return nil, fmt.Errorf("specification %s: estimators disagree on slopes", fe.Spec)
		}
	}

	k := len(fe.SlopeLabels)
	d := make([]float64, k)
	for i := range d {
		d[i] = fe.SlopeBeta[i] - re.SlopeBeta[i]
	}

	var vdiff mat.Dense
	vdiff.Sub(fe.SlopeCov, re.SlopeCov)
	var inv mat.Dense
	if err := inv.Inverse(&vdiff); err != nil {
		return &HausmanResult{
			Spec:      fe.Spec,
			Statistic: math.NaN(),
			DF:        k,
			PValue:    math.NaN(),
			Valid:     false,
			Note:      "covariance difference is singular",
		}, nil
	}

	dv := mat.NewVecDense(k, d)
	tmp := mat.NewVecDense(k, nil)
	tmp.MulVec(&inv, dv)
	h := mat.Dot(dv, tmp)

	if h < 0 || math.IsNaN(h) {
		return &HausmanResult{
			Spec:      fe.Spec,
			Statistic: h,
			DF:        k,
			PValue:    math.NaN(),
			Valid:     false,
			Note:      "covariance difference is not positive definite",
		}, nil
	}

	p := distuv.ChiSquared{K: float64(k)}.Survival(h)
	return &HausmanResult{
		Spec:                fe.Spec,
		Statistic:           h,
		DF:                  k,
		PValue:              p,
		RejectRandomEffects: p <= 0.05,
		Valid:               true,
	}, nil
}
