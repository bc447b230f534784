package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpipanel/internal/config"
	"mpipanel/internal/dataset"
	"mpipanel/internal/govindex"
	"mpipanel/internal/panel"
	"mpipanel/internal/report"
)

func setupReportExporter(t *testing.T) (*ReportExporter, *config.Paths) {
	t.Helper()
	paths, err := config.GetPaths(t.TempDir())
	require.NoError(t, err)
	return NewReportExporter(paths), paths
}

func readReport(t *testing.T, paths *config.Paths, fileName string) [][]string {
	t.Helper()
	hasBOM, records := readCSVFile(t, paths.GetReportPath(fileName))
	assert.True(t, hasBOM, "report files carry a BOM for spreadsheet tools")
	return records
}

func TestExportDescriptiveStats(t *testing.T) {
	exporter, paths := setupReportExporter(t)

	summaries := []report.VariableSummary{
		{Variable: "MPI", Count: 4, Mean: 2.5, Std: 1.2909944487358056,
			Min: 1, P25: 1.75, Median: 2.5, P75: 3.25, Max: 4},
		{Variable: "ExternalDebt", Count: 0, Mean: math.NaN(), Std: math.NaN(),
			Min: math.NaN(), P25: math.NaN(), Median: math.NaN(), P75: math.NaN(), Max: math.NaN()},
	}

	require.NoError(t, exporter.ExportDescriptiveStats(summaries))

	records := readReport(t, paths, config.DescriptiveStatsCSV)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Variable", "Count", "Mean", "Std", "Min", "P25", "Median", "P75", "Max"}, records[0])
	assert.Equal(t, []string{"MPI", "4", "2.500000", "1.290994", "1.000000", "1.750000", "2.500000", "3.250000", "4.000000"}, records[1])
	assert.Equal(t, "ExternalDebt", records[2][0])
	assert.Equal(t, "0", records[2][1])
	assert.Equal(t, "NaN", records[2][2])
}

func TestExportCorrelationMatrix(t *testing.T) {
	exporter, paths := setupReportExporter(t)

	matrix := &report.CorrelationMatrix{
		Variables: []string{"MPI", "GovernanceIndex"},
		Values: [][]float64{
			{1, -0.5},
			{-0.5, 1},
		},
	}

	require.NoError(t, exporter.ExportCorrelationMatrix(matrix))

	records := readReport(t, paths, config.CorrelationMatrixCSV)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Variable", "MPI", "GovernanceIndex"}, records[0])
	assert.Equal(t, []string{"MPI", "1.000000", "-0.500000"}, records[1])
	assert.Equal(t, []string{"GovernanceIndex", "-0.500000", "1.000000"}, records[2])
}

// exportFixture is one estimated specification with a single structural
// slope, enough to exercise the flattened regression and Hausman tables.
func exportFixture() panel.ModelComparison {
	fixed := &panel.EstimateResult{
		Spec:   "mpi-rule-of-law",
		Method: panel.MethodFixedEffects,
		Coefficients: []panel.Coefficient{
			{Label: "RuleOfLaw", Estimate: 0.42, StdErr: 0.11, TStat: 3.8181, PValue: 0.0003},
		},
		N: 120, Entities: 24, Periods: 5, DF: 91, RSquared: 0.37,
	}
	random := &panel.EstimateResult{
		Spec:   "mpi-rule-of-law",
		Method: panel.MethodRandomEffects,
		Coefficients: []panel.Coefficient{
			{Label: "Intercept", Estimate: 1.05, StdErr: 0.4, TStat: 2.625, PValue: 0.0099},
			{Label: "RuleOfLaw", Estimate: 0.39, StdErr: 0.09, TStat: 4.3333, PValue: 0.0001},
		},
		N: 120, Entities: 24, Periods: 5, DF: 113, RSquared: 0.41,
	}
	hausman := &panel.HausmanResult{
		Spec:      "mpi-rule-of-law",
		Statistic: 1.21,
		DF:        1,
		PValue:    0.27,
		Valid:     true,
	}
	return panel.ModelComparison{Fixed: fixed, Random: random, Hausman: hausman}
}

func TestExportRegressionResults(t *testing.T) {
	exporter, paths := setupReportExporter(t)

	require.NoError(t, exporter.ExportRegressionResults([]panel.ModelComparison{exportFixture()}))

	records := readReport(t, paths, config.RegressionResultsCSV)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Spec", "Method", "Term", "Estimate", "StdErr", "TStat", "PValue", "Stars", "N", "Entities", "Periods", "DF", "RSquared"}, records[0])

	assert.Equal(t, []string{
		"mpi-rule-of-law", "fixed-effects", "RuleOfLaw",
		"0.420000", "0.110000", "3.818100", "0.000300", "***",
		"120", "24", "5", "91", "0.370000",
	}, records[1])
	assert.Equal(t, "random-effects", records[2][1])
	assert.Equal(t, "Intercept", records[2][2])
	assert.Equal(t, "RuleOfLaw", records[3][2])
}

func TestExportHausmanResults(t *testing.T) {
	exporter, paths := setupReportExporter(t)

	comparisons := []panel.ModelComparison{exportFixture()}
	comparisons = append(comparisons, panel.ModelComparison{
		Hausman: &panel.HausmanResult{
			Spec:      "fdi-governance-index",
			Statistic: math.NaN(),
			DF:        5,
			PValue:    math.NaN(),
			Valid:     false,
			Note:      "covariance difference is singular",
		},
	})

	require.NoError(t, exporter.ExportHausmanResults(comparisons))

	records := readReport(t, paths, config.HausmanResultsCSV)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Spec", "Statistic", "DF", "PValue", "Conclusion", "Note"}, records[0])
	assert.Equal(t, []string{"mpi-rule-of-law", "1.210000", "1", "0.270000", "random effects consistent", ""}, records[1])
	assert.Equal(t, []string{"fdi-governance-index", "NaN", "5", "NaN", "inconclusive", "covariance difference is singular"}, records[2])
}

func TestExportGovernanceLoadings(t *testing.T) {
	exporter, paths := setupReportExporter(t)

	result := &govindex.Result{
		Loadings:       []float64{0.41, 0.40, 0.42, 0.39, 0.43, 0.38},
		ExplainedShare: 0.81,
		RowsUsed:       96,
		RowsTotal:      120,
	}

	require.NoError(t, exporter.ExportGovernanceLoadings(result))

	records := readReport(t, paths, config.GovernanceLoadingsCSV)
	indicators := dataset.GovernanceColumns()
	require.Len(t, records, len(indicators)+1)
	assert.Equal(t, []string{"Indicator", "Loading", "ExplainedShare", "RowsUsed", "RowsTotal"}, records[0])
	assert.Equal(t, []string{indicators[0], "0.410000", "0.810000", "96", "120"}, records[1])
	assert.Equal(t, indicators[5], records[6][0])
}

func TestExportCoverage(t *testing.T) {
	exporter, paths := setupReportExporter(t)

	rows := []report.CountryCoverage{
		{
			CountryCode: "KEN", CountryName: "Kenya",
			Observations: 10, FirstYear: 2010, LastYear: 2019,
			TotalRealMPI: 12.5, MeanRealMPI: 1.25,
			GovernanceShare: 0.8, MeanGovernanceIndex: -0.3,
		},
	}

	require.NoError(t, exporter.ExportCoverage(rows))

	records := readReport(t, paths, config.MapDataCSV)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"CountryCode", "CountryName", "Observations", "FirstYear", "LastYear", "TotalRealMPI", "MeanRealMPI", "GovernanceShare", "MeanGovernanceIndex"}, records[0])
	assert.Equal(t, []string{"KEN", "Kenya", "10", "2010", "2019", "12.500000", "1.250000", "0.800000", "-0.300000"}, records[1])
}

func TestExportScatter(t *testing.T) {
	exporter, paths := setupReportExporter(t)

	points := []report.ScatterPoint{
		{CountryCode: "KEN", Year: 2015, X: -0.4, Y: 1.7},
		{CountryCode: "NGA", Year: 2016, X: 0.2, Y: 2.1},
	}

	require.NoError(t, exporter.ExportScatter(config.ScatterInvestmentCSV, points, "GovernanceIndex", "LogRealMPI"))

	records := readReport(t, paths, config.ScatterInvestmentCSV)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"CountryCode", "Year", "GovernanceIndex", "LogRealMPI"}, records[0])
	assert.Equal(t, []string{"NGA", "2016", "0.200000", "2.100000"}, records[2])
}

func TestExportUnanchored(t *testing.T) {
	exporter, paths := setupReportExporter(t)

	require.NoError(t, exporter.ExportUnanchored([]string{"SSD", "ERI"}))

	records := readReport(t, paths, config.UnanchoredCSV)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"CountryCode"}, records[0])
	assert.Equal(t, []string{"SSD"}, records[1])
	assert.Equal(t, []string{"ERI"}, records[2])
}

func TestExportUnanchoredEmpty(t *testing.T) {
	exporter, paths := setupReportExporter(t)

	require.NoError(t, exporter.ExportUnanchored(nil))

	records := readReport(t, paths, config.UnanchoredCSV)
	require.Len(t, records, 1, "header only when every country is anchored")
}
