package report

import "mpipanel/internal/panel"

// RegressionRow flattens one coefficient of one fitted model together
// with the fit diagnostics of its specification.
type RegressionRow struct {
	Spec     string
	Method   string
	Term     string
	Estimate float64
	StdErr   float64
	TStat    float64
	PValue   float64
	Stars    string
	N        int
	Entities int
	Periods  int
	DF       int
	RSquared float64
}

// RegressionRows flattens every estimated coefficient across the model
// set, fixed effects before random effects per specification. Failed fits
// contribute no rows; the caller reports their errors.
func RegressionRows(comparisons []panel.ModelComparison) []RegressionRow {
	var rows []RegressionRow
	for _, cmp := range comparisons {
		for _, result := range []*panel.EstimateResult{cmp.Fixed, cmp.Random} {
			if result == nil {
				continue
			}
			for _, coef := range result.Coefficients {
				rows = append(rows, RegressionRow{
					Spec:     result.Spec,
					Method:   result.Method,
					Term:     coef.Label,
					Estimate: coef.Estimate,
					StdErr:   coef.StdErr,
					TStat:    coef.TStat,
					PValue:   coef.PValue,
					Stars:    coef.Stars(),
					N:        result.N,
					Entities: result.Entities,
					Periods:  result.Periods,
					DF:       result.DF,
					RSquared: result.RSquared,
				})
			}
		}
	}
	return rows
}

// HausmanRow flattens one specification test.
type HausmanRow struct {
	Spec       string
	Statistic  float64
	DF         int
	PValue     float64
	Conclusion string
	Note       string
}

// HausmanRows flattens the specification tests of every comparison that
// got far enough to run one.
func HausmanRows(comparisons []panel.ModelComparison) []HausmanRow {
	var rows []HausmanRow
	for _, cmp := range comparisons {
		if cmp.Hausman == nil {
			continue
		}
		rows = append(rows, HausmanRow{
			Spec:       cmp.Hausman.Spec,
			Statistic:  cmp.Hausman.Statistic,
			DF:         cmp.Hausman.DF,
			PValue:     cmp.Hausman.PValue,
			Conclusion: cmp.Hausman.Conclusion(),
			Note:       cmp.Hausman.Note,
		})
	}
	return rows
}
