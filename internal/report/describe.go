package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"

	"mpipanel/internal/dataset"
)

// VariableSummary is one row of the descriptive statistics table.
type VariableSummary struct {
	Variable string
	Count    int
	Mean     float64
	Std      float64
	Min      float64
	P25      float64
	Median   float64
	P75      float64
	Max      float64
}

// AnalysisColumns returns the panel variables the reports summarize.
func AnalysisColumns() []string {
	return []string{
		dataset.ColMPI,
		dataset.ColRealMPI,
		dataset.ColLogRealMPI,
		dataset.ColFDIAmount,
		dataset.ColLogFDIAmount,
		dataset.ColGDP,
		dataset.ColGDPPerCapita,
		dataset.ColLogGDPPerCapita,
		dataset.ColPopulation,
		dataset.ColInflation,
		dataset.ColTradeShare,
		dataset.ColExternalDebt,
		dataset.ColFDIShare,
		dataset.ColVoiceAccountability,
		dataset.ColPoliticalStability,
		dataset.ColGovernmentEffectiveness,
		dataset.ColRegulatoryQuality,
		dataset.ColRuleOfLaw,
		dataset.ColControlOfCorruption,
		dataset.ColGovernanceIndex,
	}
}

// Describe summarizes each column over its non-missing values. A column
// with no usable values keeps NaN statistics rather than dropping out of
// the table.
func Describe(df dataframe.DataFrame, columns []string) ([]VariableSummary, error) {
	summaries := make([]VariableSummary, 0, len(columns))
	for _, col := range columns {
		vals, err := dataset.FloatColumn(df, col)
		if err != nil {
			return nil, fmt.Errorf("describe: %w", err)
		}
		clean := make([]float64, 0, len(vals))
		for _, v := range vals {
			if !math.IsNaN(v) {
				clean = append(clean, v)
			}
		}

		s := VariableSummary{
			Variable: col,
			Count:    len(clean),
			Mean:     math.NaN(),
			Std:      math.NaN(),
			Min:      math.NaN(),
			P25:      math.NaN(),
			Median:   math.NaN(),
			P75:      math.NaN(),
			Max:      math.NaN(),
		}
		if len(clean) > 0 {
			sort.Float64s(clean)
			s.Mean, s.Std = stat.MeanStdDev(clean, nil)
			s.Min = clean[0]
			s.Max = clean[len(clean)-1]
			s.P25 = quantile(clean, 0.25)
			s.Median = quantile(clean, 0.5)
			s.P75 = quantile(clean, 0.75)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// quantile interpolates linearly between order statistics on the n-1
// basis, so quartiles of small samples land between data points.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
