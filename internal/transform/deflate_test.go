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

func deflateFixture(codes []string, years []int, inflation, mpi []float64) dataframe.DataFrame {
	return dataframe.New(
		series.New(codes, series.String, dataset.ColCountryCode),
		series.New(years, series.Int, dataset.ColYear),
		series.New(inflation, series.Float, dataset.ColInflation),
		series.New(mpi, series.Float, dataset.ColMPI),
	)
}

func TestDeflateSingleBaseYearObservation(t *testing.T) {
	df := deflateFixture(
		[]string{"KEN"},
		[]int{2015},
		[]float64{0},
		[]float64{1_000_000},
	)

	out, unanchored, err := Deflate(df, 2015)
	require.NoError(t, err)
	assert.Empty(t, unanchored)

	index, err := dataset.FloatColumn(out, dataset.ColPriceIndex)
	require.NoError(t, err)
	realMPI, err := dataset.FloatColumn(out, dataset.ColRealMPI)
	require.NoError(t, err)

	assert.Equal(t, 1.0, index[0])
	assert.Equal(t, 1_000_000.0, realMPI[0])
}

func TestDeflateIsIdentityAtBaseYear(t *testing.T) {
	df := deflateFixture(
		[]string{"KEN", "KEN", "KEN"},
		[]int{2014, 2015, 2016},
		[]float64{8.0, 6.5, 4.2},
		[]float64{900_000, 1_000_000, 1_100_000},
	)

	out, unanchored, err := Deflate(df, 2015)
	require.NoError(t, err)
	assert.Empty(t, unanchored)

	realMPI, err := dataset.FloatColumn(out, dataset.ColRealMPI)
	require.NoError(t, err)

	assert.Equal(t, 1_000_000.0, realMPI[1], "deflation must not move the base-year value")
}

func TestDeflateCompoundsInflation(t *testing.T) {
	df := deflateFixture(
		[]string{"KEN", "KEN"},
		[]int{2015, 2016},
		[]float64{10, 20},
		[]float64{1000, 1320},
	)

	out, _, err := Deflate(df, 2015)
	require.NoError(t, err)

	index, err := dataset.FloatColumn(out, dataset.ColPriceIndex)
	require.NoError(t, err)
	realMPI, err := dataset.FloatColumn(out, dataset.ColRealMPI)
	require.NoError(t, err)

	assert.InDelta(t, 1.10, index[0], 1e-12)
	assert.InDelta(t, 1.32, index[1], 1e-12)
	// 1320 nominal in 2016 rescaled by 1.10/1.32 is 1100 in base-year terms.
	assert.InDelta(t, 1100, realMPI[1], 1e-9)
}

func TestDeflateMissingInflationPoisonsForward(t *testing.T) {
	df := deflateFixture(
		[]string{"KEN", "KEN", "KEN"},
		[]int{2014, 2015, 2016},
		[]float64{5, math.NaN(), 3},
		[]float64{900_000, 1_000_000, 1_100_000},
	)

	out, unanchored, err := Deflate(df, 2015)
	require.NoError(t, err)

	index, err := dataset.FloatColumn(out, dataset.ColPriceIndex)
	require.NoError(t, err)
	realMPI, err := dataset.FloatColumn(out, dataset.ColRealMPI)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(index[0]), "years before the gap keep their index")
	assert.True(t, math.IsNaN(index[1]))
	assert.True(t, math.IsNaN(index[2]), "the gap poisons every later year")

	// The base year fell in the gap, so nothing can be rescaled.
	assert.Equal(t, []string{"KEN"}, unanchored)
	for i := range realMPI {
		assert.True(t, math.IsNaN(realMPI[i]))
	}
}

func TestDeflateCountryWithoutBaseYear(t *testing.T) {
	df := deflateFixture(
		[]string{"KEN", "KEN", "UGA"},
		[]int{2016, 2017, 2015},
		[]float64{3, 4, 5},
		[]float64{100, 200, 300},
	)

	out, unanchored, err := Deflate(df, 2015)
	require.NoError(t, err)

	assert.Equal(t, []string{"KEN"}, unanchored)

	realMPI, err := dataset.FloatColumn(out, dataset.ColRealMPI)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(realMPI[0]))
	assert.True(t, math.IsNaN(realMPI[1]))
	assert.False(t, math.IsNaN(realMPI[2]), "the anchored country is unaffected")
}

func TestDeflateMissingNominalValue(t *testing.T) {
	df := deflateFixture(
		[]string{"KEN", "KEN"},
		[]int{2015, 2016},
		[]float64{2, 3},
		[]float64{math.NaN(), 500},
	)

	out, unanchored, err := Deflate(df, 2015)
	require.NoError(t, err)
	assert.Empty(t, unanchored)

	realMPI, err := dataset.FloatColumn(out, dataset.ColRealMPI)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(realMPI[0]), "a missing nominal value stays missing")
	assert.False(t, math.IsNaN(realMPI[1]))
}

func TestDeflateHandlesUnsortedRows(t *testing.T) {
	sorted := deflateFixture(
		[]string{"KEN", "KEN"},
		[]int{2015, 2016},
		[]float64{10, 20},
		[]float64{1000, 1320},
	)
	shuffled := deflateFixture(
		[]string{"KEN", "KEN"},
		[]int{2016, 2015},
		[]float64{20, 10},
		[]float64{1320, 1000},
	)

	outSorted, _, err := Deflate(sorted, 2015)
	require.NoError(t, err)
	outShuffled, _, err := Deflate(shuffled, 2015)
	require.NoError(t, err)

	sortedReal, err := dataset.FloatColumn(outSorted, dataset.ColRealMPI)
	require.NoError(t, err)
	shuffledReal, err := dataset.FloatColumn(outShuffled, dataset.ColRealMPI)
	require.NoError(t, err)

	// Same observations, row order reversed.
	assert.InDelta(t, sortedReal[0], shuffledReal[1], 1e-9)
	assert.InDelta(t, sortedReal[1], shuffledReal[0], 1e-9)
}
