package transform

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpipanel/internal/dataset"
)

func deriveFixture(years []int, gdp, gdpPC, pop, fdiShare, realMPI []float64) dataframe.DataFrame {
	return dataframe.New(
		series.New(years, series.Int, dataset.ColYear),
		series.New(gdp, series.Float, dataset.ColGDP),
		series.New(gdpPC, series.Float, dataset.ColGDPPerCapita),
		series.New(pop, series.Float, dataset.ColPopulation),
		series.New(fdiShare, series.Float, dataset.ColFDIShare),
		series.New(realMPI, series.Float, dataset.ColRealMPI),
	)
}

func TestLogPositive(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"positive", 5, math.Log(6)},
		{"small positive", 1e-9, math.Log(1 + 1e-9)},
		{"zero is not positive", 0, math.NaN()},
		{"negative", -3, math.NaN()},
		{"missing", math.NaN(), math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogPositive(tt.in)
			if math.IsNaN(tt.want) {
				assert.True(t, math.IsNaN(got))
			} else {
				assert.InDelta(t, tt.want, got, 1e-15)
				assert.False(t, got < 0, "a defined log transform is never negative")
			}
		})
	}
}

func TestDeriveFDIAmount(t *testing.T) {
	df := deriveFixture(
		[]int{2015, 2015, 2015, 2015, 2015},
		[]float64{100e9, 100e9, math.NaN(), 100e9, 50e9},
		[]float64{1000, 1000, 1000, 1000, 1000},
		[]float64{1e6, 1e6, 1e6, 1e6, 1e6},
		[]float64{2.5, math.NaN(), 2.5, -1, 0},
		[]float64{10, 10, 10, 10, 10},
	)

	out, err := Derive(df, 2020)
	require.NoError(t, err)

	fdi, err := dataset.FloatColumn(out, dataset.ColFDIAmount)
	require.NoError(t, err)

	assert.InDelta(t, 2.5e9, fdi[0], 1, "share of 2.5%% of a 100B GDP")
	assert.True(t, math.IsNaN(fdi[1]), "missing share propagates")
	assert.True(t, math.IsNaN(fdi[2]), "missing GDP propagates")
	assert.True(t, math.IsNaN(fdi[3]), "negative share is rejected, not clamped")
	assert.Equal(t, 0.0, fdi[4], "zero share is a real zero")
}

func TestDeriveLogColumns(t *testing.T) {
	df := deriveFixture(
		[]int{2015, 2016},
		[]float64{100e9, math.NaN()},
		[]float64{1500, -2},
		[]float64{5e7, 5e7},
		[]float64{2, 2},
		[]float64{1e6, 0},
	)

	out, err := Derive(df, 2020)
	require.NoError(t, err)

	logReal, err := dataset.FloatColumn(out, dataset.ColLogRealMPI)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1e6+1), logReal[0], 1e-12)
	assert.True(t, math.IsNaN(logReal[1]), "zero deflated value has no log transform")

	logGDP, err := dataset.FloatColumn(out, dataset.ColLogGDP)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(logGDP[0]))
	assert.True(t, math.IsNaN(logGDP[1]))

	logPC, err := dataset.FloatColumn(out, dataset.ColLogGDPPerCapita)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(logPC[1]), "negative per-capita income has no log transform")

	logFDI, err := dataset.FloatColumn(out, dataset.ColLogFDIAmount)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2.0/100*100e9+1), logFDI[0], 1e-9)
	assert.True(t, math.IsNaN(logFDI[1]), "log of FDI amount follows the derived amount")
}

func TestDerivePostThresholdBoundary(t *testing.T) {
	df := deriveFixture(
		[]int{2019, 2020, 2021},
		[]float64{1, 1, 1},
		[]float64{1, 1, 1},
		[]float64{1, 1, 1},
		[]float64{1, 1, 1},
		[]float64{1, 1, 1},
	)

	out, err := Derive(df, 2020)
	require.NoError(t, err)

	post, err := dataset.IntColumn(out, dataset.ColPost2020)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, post, "the threshold year itself is post-period")
}

func TestDeriveAppendsAllColumns(t *testing.T) {
	df := deriveFixture(
		[]int{2015},
		[]float64{1e9}, []float64{1000}, []float64{1e6}, []float64{2}, []float64{5e5},
	)

	out, err := Derive(df, 2020)
	require.NoError(t, err)

	for _, name := range []string{
		dataset.ColFDIAmount,
		dataset.ColLogRealMPI,
		dataset.ColLogFDIAmount,
		dataset.ColLogGDPPerCapita,
		dataset.ColLogGDP,
		dataset.ColLogPopulation,
		dataset.ColPost2020,
	} {
		assert.True(t, dataset.HasColumn(out, name), "missing derived column %s", name)
	}
}

func TestDeriveRequiresDeflatedPanel(t *testing.T) {
	df := dataframe.New(
		series.New([]int{2015}, series.Int, dataset.ColYear),
		series.New([]float64{1}, series.Float, dataset.ColGDP),
		series.New([]float64{1}, series.Float, dataset.ColGDPPerCapita),
		series.New([]float64{1}, series.Float, dataset.ColPopulation),
		series.New([]float64{1}, series.Float, dataset.ColFDIShare),
	)

	_, err := Derive(df, 2020)
	require.Error(t, err, "RealMPI must exist before deriving log columns")
}
