package govindex

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpipanel/internal/dataset"
)

// govFixture builds a panel with n rows and one column per indicator, where
// indicators[j][i] is the value of indicator j on row i.
func govFixture(n int, indicators [][]float64) dataframe.DataFrame {
	codes := make([]string, n)
	years := make([]int, n)
	for i := range codes {
		codes[i] = fmt.Sprintf("C%02d", i)
		years[i] = 2015
	}

	cols := []series.Series{
		series.New(codes, series.String, dataset.ColCountryCode),
		series.New(years, series.Int, dataset.ColYear),
	}
	for j, name := range dataset.GovernanceColumns() {
		cols = append(cols, series.New(indicators[j], series.Float, name))
	}
	return dataframe.New(cols...)
}

// spreadIndicators builds six linearly independent indicator columns with a
// shared underlying quality signal plus distinct per-indicator wiggles.
func spreadIndicators(n int) [][]float64 {
	indicators := make([][]float64, 6)
	for j := range indicators {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			base := float64(i) - float64(n)/2
			wiggle := math.Sin(float64(i*(j+1))) * 0.3
			col[i] = base*0.2 + wiggle
		}
		indicators[j] = col
	}
	return indicators
}

func TestReduceAttachesScores(t *testing.T) {
	n := 12
	indicators := spreadIndicators(n)
	// Two incomplete rows: one hole each in different indicators.
	indicators[0][3] = math.NaN()
	indicators[4][7] = math.NaN()

	df := govFixture(n, indicators)
	out, result, err := Reduce(df)
	require.NoError(t, err)

	assert.Equal(t, n, out.Nrow(), "every input row survives")
	assert.Equal(t, 10, result.RowsUsed)
	assert.Equal(t, n, result.RowsTotal)
	assert.Len(t, result.Loadings, 6)
	assert.Greater(t, result.ExplainedShare, 0.0)
	assert.LessOrEqual(t, result.ExplainedShare, 1.0+1e-12)

	scores, err := dataset.FloatColumn(out, dataset.ColGovernanceIndex)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(scores[3]), "incomplete rows keep a missing score")
	assert.True(t, math.IsNaN(scores[7]))

	var sum float64
	var count int
	for i, s := range scores {
		if i == 3 || i == 7 {
			continue
		}
		require.False(t, math.IsNaN(s), "complete row %d should be scored", i)
		sum += s
		count++
	}
	assert.Equal(t, 10, count)
	assert.InDelta(t, 0, sum/float64(count), 1e-8, "scores are centered on the estimation sample")
}

func TestReduceCompleteCaseCount(t *testing.T) {
	n := 11

	t.Run("no missing values", func(t *testing.T) {
		_, result, err := Reduce(govFixture(n, spreadIndicators(n)))
		require.NoError(t, err)
		assert.Equal(t, n, result.RowsUsed)
	})

	t.Run("any missing value shrinks the sample", func(t *testing.T) {
		indicators := spreadIndicators(n)
		indicators[2][0] = math.NaN()
		_, result, err := Reduce(govFixture(n, indicators))
		require.NoError(t, err)
		assert.Equal(t, n-1, result.RowsUsed)
		assert.Less(t, result.RowsUsed, result.RowsTotal)
	})
}

func TestReducePerfectlyCorrelatedIndicators(t *testing.T) {
	n := 12
	indicators := make([][]float64, 6)
	for j := range indicators {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			// Scaled and shifted copies of one signal: correlation exactly 1.
			col[i] = (float64(i) - 5.5) * float64(j+1)
		}
		indicators[j] = col
	}

	out, result, err := Reduce(govFixture(n, indicators))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.ExplainedShare, 1e-9,
		"one component carries all variance of perfectly correlated indicators")

	expected := 1 / math.Sqrt(6)
	for j, loading := range result.Loadings {
		assert.InDelta(t, expected, loading, 1e-9, "indicator %d should load equally", j)
	}

	scores, err := dataset.FloatColumn(out, dataset.ColGovernanceIndex)
	require.NoError(t, err)
	for i := 1; i < n; i++ {
		assert.Greater(t, scores[i], scores[i-1], "scores follow the underlying signal")
	}
}

func TestReduceSignOrientation(t *testing.T) {
	n := 15
	_, result, err := Reduce(govFixture(n, spreadIndicators(n)))
	require.NoError(t, err)

	var sum float64
	for _, l := range result.Loadings {
		sum += l
	}
	assert.Greater(t, sum, 0.0, "the component is oriented to a positive loading sum")
}

func TestReduceZeroVarianceIndicator(t *testing.T) {
	n := 12
	indicators := spreadIndicators(n)
	for i := range indicators[1] {
		indicators[1][i] = 0.75
	}

	_, _, err := Reduce(govFixture(n, indicators))
	require.Error(t, err)
	assert.Contains(t, err.Error(), dataset.ColPoliticalStability)
	assert.Contains(t, err.Error(), "zero variance")
}

func TestReduceInsufficientCompleteCases(t *testing.T) {
	n := 12
	indicators := spreadIndicators(n)
	// Only nine complete rows remain.
	for i := 0; i < 3; i++ {
		indicators[0][i] = math.NaN()
	}

	_, _, err := Reduce(govFixture(n, indicators))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "complete observations")
}

func TestReduceCountryWithoutGovernanceData(t *testing.T) {
	n := 13
	indicators := spreadIndicators(n)
	// The last row belongs to a country absent from the governance extract.
	for j := range indicators {
		indicators[j][n-1] = math.NaN()
	}

	out, result, err := Reduce(govFixture(n, indicators))
	require.NoError(t, err)

	assert.Equal(t, n, out.Nrow(), "the unmatched country keeps its panel row")
	assert.Equal(t, n-1, result.RowsUsed)

	scores, err := dataset.FloatColumn(out, dataset.ColGovernanceIndex)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(scores[n-1]))
}
