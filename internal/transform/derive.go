package transform

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"mpipanel/internal/dataset"
)

// Derive appends the computed analysis variables to the deflated panel:
// the FDI dollar amount, the guarded log transforms and the post-threshold
// indicator. Every computation is per-row and null-propagating; a missing
// input yields a missing output, never a fabricated zero.
func Derive(df dataframe.DataFrame, thresholdYear int) (dataframe.DataFrame, error) {
	years, err := dataset.IntColumn(df, dataset.ColYear)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	gdp, err := dataset.FloatColumn(df, dataset.ColGDP)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	gdpPerCapita, err := dataset.FloatColumn(df, dataset.ColGDPPerCapita)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	population, err := dataset.FloatColumn(df, dataset.ColPopulation)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	fdiShare, err := dataset.FloatColumn(df, dataset.ColFDIShare)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	realMPI, err := dataset.FloatColumn(df, dataset.ColRealMPI)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	n := df.Nrow()
	fdiAmount := make([]float64, n)
	post := make([]int, n)
	for i := 0; i < n; i++ {
		fdiAmount[i] = fdiValue(fdiShare[i], gdp[i])
		if years[i] >= thresholdYear {
			post[i] = 1
		}
	}

	out := df.Mutate(series.New(fdiAmount, series.Float, dataset.ColFDIAmount))
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to attach FDI amount: %w", out.Err)
	}

	logs := []struct {
		src  []float64
		name string
	}{
		{realMPI, dataset.ColLogRealMPI},
		{fdiAmount, dataset.ColLogFDIAmount},
		{gdpPerCapita, dataset.ColLogGDPPerCapita},
		{gdp, dataset.ColLogGDP},
		{population, dataset.ColLogPopulation},
	}
	for _, l := range logs {
		vals := make([]float64, n)
		for i, x := range l.src {
			vals[i] = LogPositive(x)
		}
		out = out.Mutate(series.New(vals, series.Float, l.name))
		if out.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to attach %s: %w", l.name, out.Err)
		}
	}

	out = out.Mutate(series.New(post, series.Int, dataset.ColPost2020))
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to attach post-threshold indicator: %w", out.Err)
	}
	return out, nil
}

// LogPositive is ln(x+1), defined only for strictly positive x. Zero,
// negative and missing inputs are all missing.
func LogPositive(x float64) float64 {
	if math.IsNaN(x) || x <= 0 {
		return math.NaN()
	}
	return math.Log(x + 1)
}

// fdiValue converts an FDI share of GDP (in percent) into a dollar amount.
// Both inputs must be present and non-negative.
func fdiValue(share, gdp float64) float64 {
	if math.IsNaN(share) || math.IsNaN(gdp) || share < 0 || gdp < 0 {
		return math.NaN()
	}
	return share / 100 * gdp
}
