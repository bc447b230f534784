package config

// Application constants - all fixed literal values for the MPI panel pipeline
const (
	// Application Info
	AppName    = "MPI Panel"
	AppVersion = "1.2.0"

	// Analysis Constants
	BaseYear      = 2015 // deflation anchor: real values in constant 2015 US$
	ThresholdYear = 2020 // post-period indicator switches on at this year

	// Input Files (inside the raw data directory)
	InvestmentFileName = "mobilized_private_investment.xlsx"
	EconomicFileName   = "wdi_indicators.csv"
	GovernanceFileName = "wgi_estimates.csv"

	// Well-known output files (inside the reports directory)
	MergedPanelCSV        = "panel_merged.csv"
	DescriptiveStatsCSV   = "descriptive_stats.csv"
	CorrelationMatrixCSV  = "correlation_matrix.csv"
	RegressionResultsCSV  = "regression_results.csv"
	HausmanResultsCSV     = "hausman_tests.csv"
	GovernanceLoadingsCSV = "governance_loadings.csv"
	MapDataCSV            = "map_data.csv"
	ScatterInvestmentCSV  = "scatter_governance_investment.csv"
	ScatterFDICSV         = "scatter_governance_fdi.csv"
	UnanchoredCSV         = "unanchored_countries.csv"

	// File Paths (relative to the base directory)
	DefaultDataDir    = "data"
	DefaultRawDir     = "data/raw"
	DefaultReportsDir = "data/reports"
	DefaultLogsDir    = "logs"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogFile   = "logs/app.log"
)

// MissingTokens are the cell values recognized as missing on load. Cells are
// trimmed of surrounding whitespace before comparison; unrecognized tokens
// are left untouched for the type-coercion stage to reject.
var MissingTokens = []string{"", "..", "NA", "NaN", "N/A", "n/a", "-", "#N/A"}
