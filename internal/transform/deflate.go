package transform

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"mpipanel/internal/dataset"
)

// Deflate appends the per-country price index and the deflated investment
// value to the merged panel, and returns the country codes that could not be
// anchored at the base year.
//
// The index is a cumulative product of (1 + Inflation/100) over the
// country's rows in year order, seeded at 1 before the first row. A missing
// inflation poisons the index for that and every later year; there is no
// implied zero-inflation default. Deflation rescales by the country's
// base-year index, so it is exactly the identity at the base year. Countries
// whose base-year index is unusable keep their rows with missing RealMPI.
func Deflate(df dataframe.DataFrame, baseYear int) (dataframe.DataFrame, []string, error) {
	codes, err := dataset.StringColumn(df, dataset.ColCountryCode)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}
	years, err := dataset.IntColumn(df, dataset.ColYear)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}
	inflation, err := dataset.FloatColumn(df, dataset.ColInflation)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}
	mpi, err := dataset.FloatColumn(df, dataset.ColMPI)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}

	n := df.Nrow()
	index := make([]float64, n)
	deflated := make([]float64, n)

	groups := make(map[string][]int)
	countryOrder := make([]string, 0)
	for i, code := range codes {
		if _, ok := groups[code]; !ok {
			countryOrder = append(countryOrder, code)
		}
		groups[code] = append(groups[code], i)
	}

	var unanchored []string
	for _, code := range countryOrder {
		rows := groups[code]
		sort.Slice(rows, func(a, b int) bool { return years[rows[a]] < years[rows[b]] })

		running := 1.0
		for _, r := range rows {
			running *= 1 + inflation[r]/100
			index[r] = running
		}

		baseIdx := math.NaN()
		for _, r := range rows {
			if years[r] == baseYear {
				baseIdx = index[r]
			}
		}
		if math.IsNaN(baseIdx) {
			unanchored = append(unanchored, code)
		}

		// The ratio is computed first so the base year rescales by
		// exactly 1 and keeps its nominal value bit for bit.
		for _, r := range rows {
			deflated[r] = mpi[r] * (baseIdx / index[r])
		}
	}

	out := df.Mutate(series.New(index, series.Float, dataset.ColPriceIndex))
	if out.Err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("failed to attach price index: %w", out.Err)
	}
	out = out.Mutate(series.New(deflated, series.Float, dataset.ColRealMPI))
	if out.Err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("failed to attach deflated investment: %w", out.Err)
	}
	return out, unanchored, nil
}
