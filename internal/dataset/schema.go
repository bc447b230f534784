package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ColumnSpec declares one canonical column: the header it carries in the raw
// file, the name and type it carries afterwards, and whether a value is
// required on every row. A missing required value fails coercion; optional
// values stay missing.
type ColumnSpec struct {
	Source    string
	Canonical string
	Type      series.Type
	Required  bool
}

// Schema declares the normalization plan for one dataset.
type Schema struct {
	Dataset string
	Columns []ColumnSpec
}

// InvestmentSchema returns the plan for the mobilized private investment
// workbook, the anchor dataset of the panel.
func InvestmentSchema() Schema {
	return Schema{
		Dataset: "investment",
		Columns: []ColumnSpec{
			{Source: "Country Name", Canonical: ColCountryName, Type: series.String},
			{Source: "Country Code", Canonical: ColCountryCode, Type: series.String, Required: true},
			{Source: "Year", Canonical: ColYear, Type: series.Int, Required: true},
			{Source: "Private Investment Mobilized (US$)", Canonical: ColMPI, Type: series.Float},
		},
	}
}

// EconomicSchema returns the plan for the World Development Indicators
// extract. Source headers are the WDI series codes.
func EconomicSchema() Schema {
	return Schema{
		Dataset: "economic",
		Columns: []ColumnSpec{
			{Source: "Country Code", Canonical: ColCountryCode, Type: series.String, Required: true},
			{Source: "Year", Canonical: ColYear, Type: series.Int, Required: true},
			{Source: "NY.GDP.MKTP.CD", Canonical: ColGDP, Type: series.Float},
			{Source: "NY.GDP.PCAP.CD", Canonical: ColGDPPerCapita, Type: series.Float},
			{Source: "SP.POP.TOTL", Canonical: ColPopulation, Type: series.Float},
			{Source: "FP.CPI.TOTL.ZG", Canonical: ColInflation, Type: series.Float},
			{Source: "NE.TRD.GNFS.ZS", Canonical: ColTradeShare, Type: series.Float},
			{Source: "DT.DOD.DECT.GN.ZS", Canonical: ColExternalDebt, Type: series.Float},
			{Source: "BX.KLT.DINV.WD.GD.ZS", Canonical: ColFDIShare, Type: series.Float},
		},
	}
}

// GovernanceSchema returns the plan for the Worldwide Governance Indicators
// extract in long format: one row per country, year and indicator code.
func GovernanceSchema() Schema {
	return Schema{
		Dataset: "governance",
		Columns: []ColumnSpec{
			{Source: "Country Code", Canonical: ColCountryCode, Type: series.String, Required: true},
			{Source: "Year", Canonical: ColYear, Type: series.Int, Required: true},
			{Source: "Indicator", Canonical: ColIndicator, Type: series.String, Required: true},
			{Source: "Estimate", Canonical: ColEstimate, Type: series.Float},
		},
	}
}

// PanelSchema returns the plan for re-reading a previously exported merged
// panel. Headers are already canonical, so every source equals its canonical
// name.
func PanelSchema() Schema {
	cols := []ColumnSpec{
		{Source: ColCountryCode, Canonical: ColCountryCode, Type: series.String, Required: true},
		{Source: ColCountryName, Canonical: ColCountryName, Type: series.String},
		{Source: ColYear, Canonical: ColYear, Type: series.Int, Required: true},
	}
	for _, name := range []string{
		ColMPI, ColGDP, ColGDPPerCapita, ColPopulation, ColInflation,
		ColTradeShare, ColExternalDebt, ColFDIShare,
		ColVoiceAccountability, ColPoliticalStability, ColGovernmentEffectiveness,
		ColRegulatoryQuality, ColRuleOfLaw, ColControlOfCorruption,
		ColPriceIndex, ColRealMPI, ColFDIAmount,
		ColLogRealMPI, ColLogFDIAmount, ColLogGDPPerCapita, ColLogGDP, ColLogPopulation,
	} {
		cols = append(cols, ColumnSpec{Source: name, Canonical: name, Type: series.Float})
	}
	cols = append(cols,
		ColumnSpec{Source: ColPost2020, Canonical: ColPost2020, Type: series.Int, Required: true},
		ColumnSpec{Source: ColGovernanceIndex, Canonical: ColGovernanceIndex, Type: series.Float},
	)
	return Schema{Dataset: "panel", Columns: cols}
}

// Normalize renames source headers to canonical names, projects the table to
// schema columns only, and coerces each column to its declared type. It is
// idempotent: applying it to an already-normalized table changes nothing.
func Normalize(df dataframe.DataFrame, schema Schema) (dataframe.DataFrame, error) {
	renamed, err := applyRenames(df, schema)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return coerceTypes(renamed, schema)
}

// NormalizeInvestment normalizes the raw MPI workbook table.
func NormalizeInvestment(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return Normalize(df, InvestmentSchema())
}

// NormalizeEconomic normalizes the raw WDI table.
func NormalizeEconomic(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return Normalize(df, EconomicSchema())
}

// NormalizeGovernance normalizes the raw WGI long-format table.
func NormalizeGovernance(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return Normalize(df, GovernanceSchema())
}

// NormalizePanel types a re-read merged panel export.
func NormalizePanel(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return Normalize(df, PanelSchema())
}

// applyRenames maps source headers to canonical names and drops everything
// outside the schema. A column that is already canonical is left alone, which
// is what makes Normalize idempotent.
func applyRenames(df dataframe.DataFrame, schema Schema) (dataframe.DataFrame, error) {
	have := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		have[name] = true
	}

	out := df
	for _, col := range schema.Columns {
		if have[col.Canonical] {
			continue
		}
		if !have[col.Source] {
			return dataframe.DataFrame{}, &SchemaError{
				Dataset: schema.Dataset,
				Column:  col.Source,
				Message: "required column missing",
			}
		}
		out = out.Rename(col.Canonical, col.Source)
		if out.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to rename column %s: %w", col.Source, out.Err)
		}
	}

	names := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		names[i] = col.Canonical
	}
	out = out.Select(names)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to project %s columns: %w", schema.Dataset, out.Err)
	}
	return out, nil
}

// coerceTypes rebuilds each schema column with its declared type. Columns
// that already carry the right type pass through untouched, so repeated
// coercion cannot drift values.
func coerceTypes(df dataframe.DataFrame, schema Schema) (dataframe.DataFrame, error) {
	cols := make([]series.Series, 0, len(schema.Columns))
	for _, spec := range schema.Columns {
		s := df.Col(spec.Canonical)
		if s.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to read column %s: %w", spec.Canonical, s.Err)
		}

		coerced, err := coerceColumn(s, spec, schema.Dataset)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		cols = append(cols, coerced)
	}

	out := dataframe.New(cols...)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to assemble %s table: %w", schema.Dataset, out.Err)
	}
	return out, nil
}

func coerceColumn(s series.Series, spec ColumnSpec, ds string) (series.Series, error) {
	switch spec.Type {
	case series.Float:
		if s.Type() == series.Float {
			return s, nil
		}
		vals := make([]float64, s.Len())
		for i, raw := range s.Records() {
			if isMissingRecord(raw) {
				vals[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
			if err != nil {
				return series.Series{}, &SchemaError{
					Dataset: ds,
					Column:  spec.Canonical,
					Value:   raw,
					Message: "cannot parse numeric value",
				}
			}
			vals[i] = v
		}
		return series.New(vals, series.Float, spec.Canonical), nil

	case series.Int:
		if s.Type() == series.Int {
			return s, nil
		}
		vals := make([]int, s.Len())
		for i, raw := range s.Records() {
			if isMissingRecord(raw) {
				return series.Series{}, &SchemaError{
					Dataset: ds,
					Column:  spec.Canonical,
					Message: "missing value in key column",
				}
			}
			v, err := parseIntLike(raw)
			if err != nil {
				return series.Series{}, &SchemaError{
					Dataset: ds,
					Column:  spec.Canonical,
					Value:   raw,
					Message: "cannot parse integer value",
				}
			}
			vals[i] = v
		}
		return series.New(vals, series.Int, spec.Canonical), nil

	case series.String:
		vals := s.Records()
		out := make([]string, len(vals))
		for i, raw := range vals {
			if isMissingRecord(raw) {
				if spec.Required {
					return series.Series{}, &SchemaError{
						Dataset: ds,
						Column:  spec.Canonical,
						Message: "missing value in key column",
					}
				}
				out[i] = "NaN"
				continue
			}
			if spec.Required {
				// Key-like strings compare case-insensitively across datasets.
				out[i] = strings.ToUpper(strings.TrimSpace(raw))
			} else {
				out[i] = strings.TrimSpace(raw)
			}
		}
		return series.New(out, series.String, spec.Canonical), nil
	}

	return series.Series{}, &SchemaError{
		Dataset: ds,
		Column:  spec.Canonical,
		Message: fmt.Sprintf("unsupported column type %v", spec.Type),
	}
}

// isMissingRecord reports whether a rendered cell is the missing marker.
func isMissingRecord(raw string) bool {
	return raw == "" || raw == "NaN"
}

// parseIntLike parses integers that may be rendered with a fractional zero
// tail, e.g. "2015.0" from spreadsheet formatting.
func parseIntLike(raw string) (int, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %s", raw)
	}
	return int(f), nil
}
