package panel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Estimation methods.
const (
	MethodFixedEffects  = "fixed-effects"
	MethodRandomEffects = "random-effects"
)

// Term is one regressor: a column, optionally multiplied with a second
// column to form an interaction.
type Term struct {
	Column       string
	InteractWith string
}

// Label renders the term the way regression tables name it.
func (t Term) Label() string {
	if t.InteractWith == "" {
		return t.Column
	}
	return t.Column + ":" + t.InteractWith
}

// Spec defines one regression specification: a dependent variable, the
// governance predictors of interest and the shared control set.
type Spec struct {
	Name       string
	Dependent  string
	Predictors []Term
	Controls   []string
}

// Terms returns every regressor of the specification in reporting order:
// predictors first, then controls.
func (s Spec) Terms() []Term {
	terms := make([]Term, 0, len(s.Predictors)+len(s.Controls))
	terms = append(terms, s.Predictors...)
	for _, c := range s.Controls {
		terms = append(terms, Term{Column: c})
	}
	return terms
}

// Coefficient is one estimated regression term.
type Coefficient struct {
	Label    string
	Estimate float64
	StdErr   float64
	TStat    float64
	PValue   float64
}

// Stars returns the conventional significance marker for the p-value.
func (c Coefficient) Stars() string {
	switch {
	case c.PValue <= 0.01:
		return "***"
	case c.PValue <= 0.05:
		return "**"
	case c.PValue <= 0.10:
		return "*"
	default:
		return ""
	}
}

// VarianceComponents carries the random-effects error decomposition.
type VarianceComponents struct {
	SigmaE2  float64 // idiosyncratic variance
	SigmaU2  float64 // entity variance
	ThetaMin float64
	ThetaMax float64
}

// EstimateResult is one fitted panel model.
//
// Coefficients holds the reported terms: the structural slopes for the
// within estimator, and additionally the intercept (first) for random
// effects. Period effects are absorbed in both methods and not listed.
// SlopeLabels, SlopeBeta and SlopeCov expose the structural slopes shared
// by both methods in identical order, which is what the Hausman test
// consumes.
type EstimateResult struct {
	Spec   string
	Method string

	Coefficients []Coefficient

	SlopeLabels []string
	SlopeBeta   []float64
	SlopeCov    *mat.Dense

	N        int
	Entities int
	Periods  int
	DF       int
	RSquared float64
	Sigma2   float64

	// Variance is set for random effects only.
	Variance *VarianceComponents
}

// HausmanResult compares the fixed- and random-effects fits of one
// specification. Valid is false when the covariance difference is singular
// or not positive definite; in that case the test is inconclusive and Note
// explains why.
type HausmanResult struct {
	Spec                string
	Statistic           float64
	DF                  int
	PValue              float64
	RejectRandomEffects bool
	Valid               bool
	Note                string
}

// Conclusion renders the test verdict for reports.
func (h *HausmanResult) Conclusion() string {
	if !h.Valid {
		return "inconclusive"
	}
	if h.RejectRandomEffects {
		return "fixed effects preferred"
	}
	return "random effects consistent"
}

// InsufficientDataError reports a specification whose usable sample cannot
// identify the requested parameters.
type InsufficientDataError struct {
	Spec         string
	Observations int
	Parameters   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("specification %s: insufficient observations: %d usable rows for %d parameters",
		e.Spec, e.Observations, e.Parameters)
}
