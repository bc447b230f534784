// Package config provides centralized configuration for the MPI panel
// pipeline. All configuration values are fixed literals compiled into the
// binary: analysis constants (deflation base year, post-period threshold),
// canonical input and report file names, and the missing-value token set.
// There is no environment or file-driven configuration.
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which roots the data/raw, data/reports and logs directories at a base
// directory chosen on the command line (defaulting to the working
// directory):
//
//	paths, err := config.GetPaths("")
//	rawPath := paths.GetRawPath(config.EconomicFileName)
//	reportPath := paths.GetReportPath(config.DescriptiveStatsCSV)
package config
