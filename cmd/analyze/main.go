// Command analyze runs the full investment panel pipeline: it loads the three
// raw datasets, builds the merged country-year panel, estimates every
// regression specification and writes the report files.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"

	"mpipanel/internal/config"
	"mpipanel/internal/dataset"
	"mpipanel/internal/exporter"
	"mpipanel/internal/govindex"
	"mpipanel/internal/infrastructure"
	"mpipanel/internal/panel"
	"mpipanel/internal/report"
	"mpipanel/internal/transform"
)

func main() {
	dataDir := flag.String("data", "", "directory holding the raw input files (defaults to data/raw)")
	outputDir := flag.String("out", "", "output directory for generated reports (defaults to data/reports)")
	flag.Parse()

	// Initialize paths
	paths, err := config.GetPaths("")
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		paths.RawDir = *dataDir
		paths.InvestmentFile = paths.GetRawPath(config.InvestmentFileName)
		paths.EconomicFile = paths.GetRawPath(config.EconomicFileName)
		paths.GovernanceFile = paths.GetRawPath(config.GovernanceFileName)
	}
	if *outputDir != "" {
		paths.ReportsDir = *outputDir
		paths.MergedPanelFile = paths.GetReportPath(config.MergedPanelCSV)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	// Initialize logging with a run ID carried through the whole pipeline
	logCfg := infrastructure.DefaultConfig()
	logCfg.FilePath = paths.GetLogPath("analyze.log")
	logger := infrastructure.MustInitializeLogger(logCfg)
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "Starting analysis pipeline",
		"app", config.AppName,
		"version", config.AppVersion,
		"raw_dir", paths.RawDir,
		"reports_dir", paths.ReportsDir)

	// Check inputs before doing any work
	inputs := []struct{ name, path string }{
		{"investment", paths.InvestmentFile},
		{"economic", paths.EconomicFile},
		{"governance", paths.GovernanceFile},
	}
	for _, input := range inputs {
		if !config.FileExists(input.path) {
			logger.ErrorContext(ctx, "Input file not found",
				"dataset", input.name,
				"path", input.path,
				"hint", "place the raw datasets under the raw data directory")
			os.Exit(1)
		}
	}

	// Load and normalize the three datasets
	invest, err := loadTable(ctx, logger, paths.InvestmentFile, "investment", dataset.NormalizeInvestment)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load investment data", "error", err)
		os.Exit(1)
	}
	econ, err := loadTable(ctx, logger, paths.EconomicFile, "economic", dataset.NormalizeEconomic)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load economic data", "error", err)
		os.Exit(1)
	}
	govLong, err := loadTable(ctx, logger, paths.GovernanceFile, "governance", dataset.NormalizeGovernance)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load governance data", "error", err)
		os.Exit(1)
	}

	// Pivot governance from long to wide and merge onto the anchor
	gov, err := dataset.PivotGovernance(govLong)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to pivot governance data", "error", err)
		os.Exit(1)
	}
	merged, err := dataset.MergePanel(invest, econ, gov)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to merge panel", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Merged panel assembled", "rows", merged.Nrow(), "columns", merged.Ncol())

	// Deflate to constant base-year dollars
	deflated, unanchored, err := transform.Deflate(merged, config.BaseYear)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to deflate investment values", "error", err)
		os.Exit(1)
	}
	if len(unanchored) > 0 {
		logger.WarnContext(ctx, "Countries without a usable base-year price index",
			"count", len(unanchored),
			"countries", unanchored)
	}

	// Derived variables and the governance composite
	derived, err := transform.Derive(deflated, config.ThresholdYear)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to derive analysis variables", "error", err)
		os.Exit(1)
	}
	final, pca, err := govindex.Reduce(derived)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build governance composite", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Governance composite built",
		"rows_used", pca.RowsUsed,
		"rows_total", pca.RowsTotal,
		"explained_share", pca.ExplainedShare)

	// Persist the merged panel so panel-report can rerun the estimation alone
	csvWriter := exporter.NewCSVWriter(paths)
	if err := csvWriter.WriteDataFrame(paths.MergedPanelFile, final); err != nil {
		logger.ErrorContext(ctx, "Failed to write merged panel", "error", err)
		os.Exit(1)
	}

	// Estimate every specification. A failed specification is reported and
	// skipped; only a run with no estimable specification at all is fatal.
	comparisons := panel.EstimateAll(final, panel.Specifications())
	fitted := 0
	for _, cmp := range comparisons {
		if cmp.Err != nil {
			logger.WarnContext(ctx, "Specification not fully estimated",
				"spec", cmp.Spec.Name,
				"error", cmp.Err)
		}
		if cmp.Fixed != nil || cmp.Random != nil {
			fitted++
		}
	}
	if fitted == 0 {
		logger.ErrorContext(ctx, "No specification could be estimated")
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Estimation finished", "specifications", len(comparisons), "fitted", fitted)

	// Compute the report frames
	summaries, err := report.Describe(final, report.AnalysisColumns())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compute descriptive statistics", "error", err)
		os.Exit(1)
	}
	matrix, err := report.Correlate(final, report.AnalysisColumns())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compute correlation matrix", "error", err)
		os.Exit(1)
	}
	coverage, err := report.Coverage(final)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compute country coverage", "error", err)
		os.Exit(1)
	}
	scatterMPI, err := report.ScatterFrame(final, dataset.ColGovernanceIndex, dataset.ColLogRealMPI)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compute investment scatter frame", "error", err)
		os.Exit(1)
	}
	scatterFDI, err := report.ScatterFrame(final, dataset.ColGovernanceIndex, dataset.ColLogFDIAmount)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compute FDI scatter frame", "error", err)
		os.Exit(1)
	}

	// Write every report file
	reports := exporter.NewReportExporter(paths)
	exports := []struct {
		name string
		run  func() error
	}{
		{"descriptive statistics", func() error { return reports.ExportDescriptiveStats(summaries) }},
		{"correlation matrix", func() error { return reports.ExportCorrelationMatrix(matrix) }},
		{"regression results", func() error { return reports.ExportRegressionResults(comparisons) }},
		{"hausman tests", func() error { return reports.ExportHausmanResults(comparisons) }},
		{"governance loadings", func() error { return reports.ExportGovernanceLoadings(pca) }},
		{"country coverage", func() error { return reports.ExportCoverage(coverage) }},
		{"investment scatter", func() error {
			return reports.ExportScatter(config.ScatterInvestmentCSV, scatterMPI, dataset.ColGovernanceIndex, dataset.ColLogRealMPI)
		}},
		{"fdi scatter", func() error {
			return reports.ExportScatter(config.ScatterFDICSV, scatterFDI, dataset.ColGovernanceIndex, dataset.ColLogFDIAmount)
		}},
		{"unanchored countries", func() error { return reports.ExportUnanchored(unanchored) }},
	}
	for _, e := range exports {
		if err := e.run(); err != nil {
			logger.ErrorContext(ctx, "Report export failed", "report", e.name, "error", err)
			os.Exit(1)
		}
	}

	logger.InfoContext(ctx, "Analysis pipeline finished",
		"panel_rows", final.Nrow(),
		"countries", len(coverage),
		"specifications_fitted", fitted,
		"reports_dir", paths.ReportsDir)
}

// loadTable reads one raw file and normalizes it to its canonical schema.
func loadTable(ctx context.Context, logger *slog.Logger, path, name string,
	normalize func(dataframe.DataFrame) (dataframe.DataFrame, error)) (dataframe.DataFrame, error) {
	logger.InfoContext(ctx, "Loading dataset", "dataset", name, "path", path)
	raw, err := dataset.ReadTable(path, config.MissingTokens)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	normalized, err := normalize(raw)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	logger.InfoContext(ctx, "Dataset normalized", "dataset", name, "rows", normalized.Nrow())
	return normalized, nil
}
