// Package exporter provides CSV export functionality for the panel
// analysis pipeline.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// UTF-8 BOM for Excel compatibility, and whole-frame export through gota.
//
// ReportExporter: Writes the analysis report frames (descriptive
// statistics, correlation matrix, regression and Hausman tables,
// governance loadings, map and scatter frames) under their fixed file
// names in the reports directory.
//
// Example usage:
//
//	reports := exporter.NewReportExporter(paths)
//	err := reports.ExportDescriptiveStats(summaries)
//
//	writer := exporter.NewCSVWriter(paths)
//	err = writer.WriteDataFrame(paths.MergedPanelFile, panelFrame)
package exporter
