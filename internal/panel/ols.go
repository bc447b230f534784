package panel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// olsFit is the least-squares core shared by both estimators.
type olsFit struct {
	beta   []float64
	cov    *mat.Dense
	sigma2 float64
	rss    float64
	tss    float64
}

// solveOLS regresses y on x without an implicit intercept and derives
// classical inference from the residual degrees of freedom dof. Callers
// add intercept or dummy columns to x themselves.
func solveOLS(x *mat.Dense, y []float64, dof int) (*olsFit, error) {
	n, k := x.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("design has %d rows, response has %d", n, len(y))
	}
	if dof < 1 {
		return nil, fmt.Errorf("no residual degrees of freedom")
	}

	yv := mat.NewVecDense(n, y)

	var qr mat.QR
	qr.Factorize(x)
	betaV := mat.NewVecDense(k, nil)
	if err := qr.SolveVecTo(betaV, false, yv); err != nil {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}

	fitted := mat.NewVecDense(n, nil)
	fitted.MulVec(x, betaV)

	var rss float64
	for i := 0; i < n; i++ {
		resid := y[i] - fitted.AtVec(i)
		rss += resid * resid
	}

	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	var tss float64
	for _, v := range y {
		dev := v - mean
		tss += dev * dev
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		// A high condition number still yields a usable inverse;
		// anything else means the design is rank deficient.
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("invert normal matrix: %w", err)
		}
	}

	sigma2 := rss / float64(dof)
	var cov mat.Dense
	cov.Scale(sigma2, &inv)

	beta := make([]float64, k)
	for j := 0; j < k; j++ {
		beta[j] = betaV.AtVec(j)
	}

	return &olsFit{beta: beta, cov: &cov, sigma2: sigma2, rss: rss, tss: tss}, nil
}

// coefficientTable pairs estimates with classical t statistics and two
// sided p values at dof residual degrees of freedom.
func coefficientTable(labels []string, beta []float64, cov *mat.Dense, dof int) []Coefficient {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	coefs := make([]Coefficient, len(labels))
	for j, label := range labels {
		se := math.Sqrt(cov.At(j, j))
		t := beta[j] / se
		coefs[j] = Coefficient{
			Label:    label,
			Estimate: beta[j],
			StdErr:   se,
			TStat:    t,
			PValue:   2 * dist.Survival(math.Abs(t)),
		}
	}
	return coefs
}

// subCovariance extracts the square covariance block for rows and columns
// [from, from+size).
func subCovariance(cov *mat.Dense, from, size int) *mat.Dense {
	out := mat.NewDense(size, size, nil)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			out.Set(i, j, cov.At(from+i, from+j))
		}
	}
	return out
}
