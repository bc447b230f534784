package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the pipeline paths.
// This is the single source of truth for file locations in the application.
type Paths struct {
	BaseDir    string
	DataDir    string
	RawDir     string
	ReportsDir string
	LogsDir    string

	// Well-known input files
	InvestmentFile string
	EconomicFile   string
	GovernanceFile string

	// Well-known output files
	MergedPanelFile string
}

// GetPaths returns the pipeline paths rooted at baseDir.
// An empty baseDir resolves to the current working directory.
//
// Directory structure:
//
//	<base>/
//	  ├── data/
//	  │   ├── raw/       (source datasets: MPI spreadsheet, WDI and WGI CSVs)
//	  │   └── reports/   (generated CSV outputs)
//	  └── logs/          (application logs)
func GetPaths(baseDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		baseDir = wd
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", baseDir, err)
	}

	dataDir := filepath.Join(abs, "data")
	rawDir := filepath.Join(dataDir, "raw")
	reportsDir := filepath.Join(dataDir, "reports")

	return &Paths{
		BaseDir:    abs,
		DataDir:    dataDir,
		RawDir:     rawDir,
		ReportsDir: reportsDir,
		LogsDir:    filepath.Join(abs, "logs"),

		InvestmentFile: filepath.Join(rawDir, InvestmentFileName),
		EconomicFile:   filepath.Join(rawDir, EconomicFileName),
		GovernanceFile: filepath.Join(rawDir, GovernanceFileName),

		MergedPanelFile: filepath.Join(reportsDir, MergedPanelCSV),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RawDir,
		p.ReportsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetRawPath returns the path for a raw input file.
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetReportPath returns the path for a report file.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
