package report

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpipanel/internal/dataset"
)

func coverageFrame(t *testing.T, codes, names []string, years []int, realMPI, govIndex []float64) dataframe.DataFrame {
	t.Helper()
	df := dataframe.New(
		series.New(codes, series.String, dataset.ColCountryCode),
		series.New(names, series.String, dataset.ColCountryName),
		series.New(years, series.Int, dataset.ColYear),
		series.New(realMPI, series.Float, dataset.ColRealMPI),
		series.New(govIndex, series.Float, dataset.ColGovernanceIndex),
	)
	require.NoError(t, df.Error())
	return df
}

func TestCoverageAggregatesPerCountry(t *testing.T) {
	nan := math.NaN()
	df := coverageFrame(t,
		[]string{"KEN", "KEN", "NGA"},
		[]string{"Kenya", "Kenya", "Nigeria"},
		[]int{2016, 2015, 2015},
		[]float64{100, nan, nan},
		[]float64{0.5, nan, nan},
	)

	rows, err := Coverage(df)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	ken := rows[0]
	assert.Equal(t, "KEN", ken.CountryCode)
	assert.Equal(t, "Kenya", ken.CountryName)
	assert.Equal(t, 2, ken.Observations)
	assert.Equal(t, 2015, ken.FirstYear)
	assert.Equal(t, 2016, ken.LastYear)
	assert.InDelta(t, 100.0, ken.TotalRealMPI, 1e-12)
	assert.InDelta(t, 100.0, ken.MeanRealMPI, 1e-12)
	assert.InDelta(t, 0.5, ken.GovernanceShare, 1e-12)
	assert.InDelta(t, 0.5, ken.MeanGovernanceIndex, 1e-12)

	nga := rows[1]
	assert.Equal(t, "NGA", nga.CountryCode)
	assert.Equal(t, 1, nga.Observations)
	assert.True(t, math.IsNaN(nga.TotalRealMPI))
	assert.True(t, math.IsNaN(nga.MeanRealMPI))
	assert.Equal(t, 0.0, nga.GovernanceShare)
	assert.True(t, math.IsNaN(nga.MeanGovernanceIndex))
}

func TestCoverageBackfillsCountryName(t *testing.T) {
	nan := math.NaN()
	df := coverageFrame(t,
		[]string{"UGA", "UGA"},
		[]string{"", "Uganda"},
		[]int{2015, 2016},
		[]float64{nan, nan},
		[]float64{nan, nan},
	)

	rows, err := Coverage(df)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Uganda", rows[0].CountryName)
}

func TestCoverageMissingColumn(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"KEN"}, series.String, dataset.ColCountryCode),
		series.New([]int{2015}, series.Int, dataset.ColYear),
	)
	require.NoError(t, df.Error())

	_, err := Coverage(df)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coverage")
}
