package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"mpipanel/internal/dataset"
)

// CountryCoverage aggregates one country's presence in the merged panel,
// keyed by ISO-3 code so downstream choropleth tools can join on it.
type CountryCoverage struct {
	CountryCode         string
	CountryName         string
	Observations        int
	FirstYear           int
	LastYear            int
	TotalRealMPI        float64
	MeanRealMPI         float64
	GovernanceShare     float64
	MeanGovernanceIndex float64
}

// Coverage aggregates the panel per country, sorted by country code.
// Monetary totals stay NaN for countries with no usable deflated values
// instead of collapsing to a fabricated zero.
func Coverage(df dataframe.DataFrame) ([]CountryCoverage, error) {
	codes, err := dataset.StringColumn(df, dataset.ColCountryCode)
	if err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}
	names, err := dataset.StringColumn(df, dataset.ColCountryName)
	if err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}
	years, err := dataset.IntColumn(df, dataset.ColYear)
	if err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}
	realMPI, err := dataset.FloatColumn(df, dataset.ColRealMPI)
	if err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}
	govIndex, err := dataset.FloatColumn(df, dataset.ColGovernanceIndex)
	if err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}

	type agg struct {
		name      string
		count     int
		firstYear int
		lastYear  int
		realSum   float64
		realCount int
		govSum    float64
		govCount  int
	}

	byCode := make(map[string]*agg)
	for r := range codes {
		a := byCode[codes[r]]
		if a == nil {
			a = &agg{firstYear: years[r], lastYear: years[r]}
			byCode[codes[r]] = a
		}
		if a.name == "" || a.name == "NaN" {
			a.name = names[r]
		}
		a.count++
		if years[r] < a.firstYear {
			a.firstYear = years[r]
		}
		if years[r] > a.lastYear {
			a.lastYear = years[r]
		}
		if !math.IsNaN(realMPI[r]) {
			a.realSum += realMPI[r]
			a.realCount++
		}
		if !math.IsNaN(govIndex[r]) {
			a.govSum += govIndex[r]
			a.govCount++
		}
	}

	out := make([]CountryCoverage, 0, len(byCode))
	for code, a := range byCode {
		c := CountryCoverage{
			CountryCode:         code,
			CountryName:         a.name,
			Observations:        a.count,
			FirstYear:           a.firstYear,
			LastYear:            a.lastYear,
			TotalRealMPI:        math.NaN(),
			MeanRealMPI:         math.NaN(),
			GovernanceShare:     float64(a.govCount) / float64(a.count),
			MeanGovernanceIndex: math.NaN(),
		}
		if a.realCount > 0 {
			c.TotalRealMPI = a.realSum
			c.MeanRealMPI = a.realSum / float64(a.realCount)
		}
		if a.govCount > 0 {
			c.MeanGovernanceIndex = a.govSum / float64(a.govCount)
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CountryCode < out[j].CountryCode })
	return out, nil
}
