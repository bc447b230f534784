package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// PivotGovernance reshapes the long governance table into one row per
// country-year with one float column per indicator. A repeated
// (country, year, indicator) triple is a DuplicateKeyError, never a silent
// pick; an indicator code outside the known set is a SchemaError.
func PivotGovernance(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	codes, err := StringColumn(df, ColCountryCode)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	years, err := IntColumn(df, ColYear)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	inds, err := StringColumn(df, ColIndicator)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	ests, err := FloatColumn(df, ColEstimate)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	columnFor := make(map[string]string, len(governanceIndicators))
	for _, ind := range governanceIndicators {
		columnFor[ind.Code] = ind.Column
	}

	type cell struct {
		Key    keyPair
		Column string
	}
	values := make(map[keyPair]map[string]float64)
	seen := make(map[cell]bool)
	order := make([]keyPair, 0)

	for i := range codes {
		code := strings.ToLower(inds[i])
		column, ok := columnFor[code]
		if !ok {
			return dataframe.DataFrame{}, &SchemaError{
				Dataset: "governance",
				Column:  ColIndicator,
				Value:   inds[i],
				Message: "unknown indicator code",
			}
		}

		key := keyPair{Code: codes[i], Year: years[i]}
		c := cell{Key: key, Column: column}
		if seen[c] {
			return dataframe.DataFrame{}, &DuplicateKeyError{
				Dataset:     "governance",
				CountryCode: key.Code,
				Year:        key.Year,
				Indicator:   code,
			}
		}
		seen[c] = true

		row, ok := values[key]
		if !ok {
			row = make(map[string]float64, len(governanceIndicators))
			values[key] = row
			order = append(order, key)
		}
		row[column] = ests[i]
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].Code != order[j].Code {
			return order[i].Code < order[j].Code
		}
		return order[i].Year < order[j].Year
	})

	outCodes := make([]string, len(order))
	outYears := make([]int, len(order))
	for i, key := range order {
		outCodes[i] = key.Code
		outYears[i] = key.Year
	}

	cols := []series.Series{
		series.New(outCodes, series.String, ColCountryCode),
		series.New(outYears, series.Int, ColYear),
	}
	for _, ind := range governanceIndicators {
		vals := make([]float64, len(order))
		for i, key := range order {
			v, ok := values[key][ind.Column]
			if !ok {
				v = math.NaN()
			}
			vals[i] = v
		}
		cols = append(cols, series.New(vals, series.Float, ind.Column))
	}

	out := dataframe.New(cols...)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to assemble wide governance table: %w", out.Err)
	}
	return out, nil
}
