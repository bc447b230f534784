// Command panel-report re-runs the estimation and report stage on a merged
// panel produced by a previous analyze run, without touching the raw inputs.
// Results are rendered to the console and the regression CSVs are rewritten.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"mpipanel/internal/config"
	"mpipanel/internal/dataset"
	"mpipanel/internal/exporter"
	"mpipanel/internal/infrastructure"
	"mpipanel/internal/panel"
	"mpipanel/internal/report"
)

func main() {
	inputPath := flag.String("panel", "", "merged panel CSV to analyze (defaults to data/reports/panel_merged.csv)")
	outputDir := flag.String("out", "", "output directory for regression CSVs (defaults to data/reports)")
	flag.Parse()

	// Initialize paths
	paths, err := config.GetPaths("")
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		paths.ReportsDir = *outputDir
		paths.MergedPanelFile = paths.GetReportPath(config.MergedPanelCSV)
	}
	if *inputPath == "" {
		*inputPath = paths.MergedPanelFile
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	// Log to file only so stdout stays clean for the rendered tables
	logCfg := infrastructure.DefaultConfig()
	logCfg.Output = "file"
	logCfg.FilePath = paths.GetLogPath("panel-report.log")
	logger := infrastructure.MustInitializeLogger(logCfg)
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "Starting panel report", "panel", *inputPath, "reports_dir", paths.ReportsDir)

	if !config.FileExists(*inputPath) {
		color.Red("Merged panel not found: %s", *inputPath)
		color.Red("Run analyze first to generate it.")
		logger.ErrorContext(ctx, "Merged panel not found", "path", *inputPath)
		os.Exit(1)
	}

	// Re-read and re-type the previously exported panel
	raw, err := dataset.ReadTable(*inputPath, config.MissingTokens)
	if err != nil {
		color.Red("Failed to read merged panel: %v", err)
		logger.ErrorContext(ctx, "Failed to read merged panel", "error", err)
		os.Exit(1)
	}
	df, err := dataset.NormalizePanel(raw)
	if err != nil {
		color.Red("Failed to normalize merged panel: %v", err)
		logger.ErrorContext(ctx, "Failed to normalize merged panel", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Merged panel loaded", "rows", df.Nrow(), "columns", df.Ncol())

	color.Cyan("%s v%s", config.AppName, config.AppVersion)
	color.Cyan("Panel: %s (%d rows)", *inputPath, df.Nrow())

	// Descriptive statistics
	summaries, err := report.Describe(df, report.AnalysisColumns())
	if err != nil {
		color.Red("Failed to compute descriptive statistics: %v", err)
		logger.ErrorContext(ctx, "Failed to compute descriptive statistics", "error", err)
		os.Exit(1)
	}
	color.Yellow("\n=== Descriptive Statistics ===")
	report.RenderDescriptiveTable(os.Stdout, summaries)

	// Estimation, one table per specification
	comparisons := panel.EstimateAll(df, panel.Specifications())
	fitted := 0
	for _, cmp := range comparisons {
		if cmp.Fixed == nil && cmp.Random == nil {
			color.Red("\n=== Specification: %s skipped (%v) ===", cmp.Spec.Name, cmp.Err)
			logger.WarnContext(ctx, "Specification skipped", "spec", cmp.Spec.Name, "error", cmp.Err)
			continue
		}
		if cmp.Err != nil {
			logger.WarnContext(ctx, "Specification partially estimated", "spec", cmp.Spec.Name, "error", cmp.Err)
		}
		fitted++
		color.Yellow("\n=== Specification: %s (dependent: %s) ===", cmp.Spec.Name, cmp.Spec.Dependent)
		report.RenderRegressionTable(os.Stdout, cmp)
	}
	if fitted == 0 {
		color.Red("\nNo specification could be estimated.")
		logger.ErrorContext(ctx, "No specification could be estimated")
		os.Exit(1)
	}

	// Hausman summary across specifications
	hausmanRows := report.HausmanRows(comparisons)
	if len(hausmanRows) > 0 {
		color.Yellow("\n=== Hausman Tests ===")
		report.RenderHausmanTable(os.Stdout, hausmanRows)
	}

	// Rewrite the regression CSVs from this run
	reports := exporter.NewReportExporter(paths)
	if err := reports.ExportRegressionResults(comparisons); err != nil {
		color.Red("Failed to export regression results: %v", err)
		logger.ErrorContext(ctx, "Failed to export regression results", "error", err)
		os.Exit(1)
	}
	if err := reports.ExportHausmanResults(comparisons); err != nil {
		color.Red("Failed to export hausman tests: %v", err)
		logger.ErrorContext(ctx, "Failed to export hausman tests", "error", err)
		os.Exit(1)
	}

	color.Green("\nRegression tables written to %s", paths.ReportsDir)
	logger.InfoContext(ctx, "Panel report finished", "specifications", len(comparisons), "fitted", fitted)
}
