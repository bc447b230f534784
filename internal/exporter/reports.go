package exporter

import (
	"fmt"

	"mpipanel/internal/config"
	"mpipanel/internal/dataset"
	"mpipanel/internal/govindex"
	"mpipanel/internal/panel"
	"mpipanel/internal/report"
)

// ReportExporter writes the analysis report frames to the reports
// directory under their fixed file names.
type ReportExporter struct {
	csvWriter *CSVWriter
}

// NewReportExporter creates a new report exporter
func NewReportExporter(paths *config.Paths) *ReportExporter {
	return &ReportExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportDescriptiveStats writes the per-variable summary table
func (e *ReportExporter) ExportDescriptiveStats(summaries []report.VariableSummary) error {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{
			s.Variable,
			formatInt(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.Std),
			formatFloat(s.Min),
			formatFloat(s.P25),
			formatFloat(s.Median),
			formatFloat(s.P75),
			formatFloat(s.Max),
		})
	}
	headers := []string{"Variable", "Count", "Mean", "Std", "Min", "P25", "Median", "P75", "Max"}
	if err := e.csvWriter.WriteSimpleCSV(config.DescriptiveStatsCSV, headers, records); err != nil {
		return fmt.Errorf("failed to write descriptive stats: %w", err)
	}
	return nil
}

// ExportCorrelationMatrix writes the square correlation matrix with the
// variable names both as header and as row labels
func (e *ReportExporter) ExportCorrelationMatrix(m *report.CorrelationMatrix) error {
	headers := append([]string{"Variable"}, m.Variables...)
	records := make([][]string, 0, len(m.Variables))
	for i, name := range m.Variables {
		row := make([]string, 0, len(m.Variables)+1)
		row = append(row, name)
		for j := range m.Variables {
			row = append(row, formatFloat(m.Values[i][j]))
		}
		records = append(records, row)
	}
	if err := e.csvWriter.WriteSimpleCSV(config.CorrelationMatrixCSV, headers, records); err != nil {
		return fmt.Errorf("failed to write correlation matrix: %w", err)
	}
	return nil
}

// ExportRegressionResults writes the flattened coefficient table across
// every estimated specification
func (e *ReportExporter) ExportRegressionResults(comparisons []panel.ModelComparison) error {
	rows := report.RegressionRows(comparisons)
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Spec,
			r.Method,
			r.Term,
			formatFloat(r.Estimate),
			formatFloat(r.StdErr),
			formatFloat(r.TStat),
			formatFloat(r.PValue),
			r.Stars,
			formatInt(r.N),
			formatInt(r.Entities),
			formatInt(r.Periods),
			formatInt(r.DF),
			formatFloat(r.RSquared),
		})
	}
	headers := []string{"Spec", "Method", "Term", "Estimate", "StdErr", "TStat", "PValue", "Stars", "N", "Entities", "Periods", "DF", "RSquared"}
	if err := e.csvWriter.WriteSimpleCSV(config.RegressionResultsCSV, headers, records); err != nil {
		return fmt.Errorf("failed to write regression results: %w", err)
	}
	return nil
}

// ExportHausmanResults writes the specification test table
func (e *ReportExporter) ExportHausmanResults(comparisons []panel.ModelComparison) error {
	rows := report.HausmanRows(comparisons)
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Spec,
			formatFloat(r.Statistic),
			formatInt(r.DF),
			formatFloat(r.PValue),
			r.Conclusion,
			r.Note,
		})
	}
	headers := []string{"Spec", "Statistic", "DF", "PValue", "Conclusion", "Note"}
	if err := e.csvWriter.WriteSimpleCSV(config.HausmanResultsCSV, headers, records); err != nil {
		return fmt.Errorf("failed to write hausman results: %w", err)
	}
	return nil
}

// ExportGovernanceLoadings writes the first-component loadings so readers
// can check the orientation of the composite score
func (e *ReportExporter) ExportGovernanceLoadings(result *govindex.Result) error {
	indicators := dataset.GovernanceColumns()
	records := make([][]string, 0, len(indicators))
	for i, name := range indicators {
		records = append(records, []string{
			name,
			formatFloat(result.Loadings[i]),
			formatFloat(result.ExplainedShare),
			formatInt(result.RowsUsed),
			formatInt(result.RowsTotal),
		})
	}
	headers := []string{"Indicator", "Loading", "ExplainedShare", "RowsUsed", "RowsTotal"}
	if err := e.csvWriter.WriteSimpleCSV(config.GovernanceLoadingsCSV, headers, records); err != nil {
		return fmt.Errorf("failed to write governance loadings: %w", err)
	}
	return nil
}

// ExportCoverage writes the per-country map frame
func (e *ReportExporter) ExportCoverage(rows []report.CountryCoverage) error {
	records := make([][]string, 0, len(rows))
	for _, c := range rows {
		records = append(records, []string{
			c.CountryCode,
			c.CountryName,
			formatInt(c.Observations),
			formatInt(c.FirstYear),
			formatInt(c.LastYear),
			formatFloat(c.TotalRealMPI),
			formatFloat(c.MeanRealMPI),
			formatFloat(c.GovernanceShare),
			formatFloat(c.MeanGovernanceIndex),
		})
	}
	headers := []string{"CountryCode", "CountryName", "Observations", "FirstYear", "LastYear", "TotalRealMPI", "MeanRealMPI", "GovernanceShare", "MeanGovernanceIndex"}
	if err := e.csvWriter.WriteSimpleCSV(config.MapDataCSV, headers, records); err != nil {
		return fmt.Errorf("failed to write map data: %w", err)
	}
	return nil
}

// ExportScatter writes one plot-ready frame of complete (x, y) pairs
func (e *ReportExporter) ExportScatter(fileName string, points []report.ScatterPoint, xName, yName string) error {
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{
			p.CountryCode,
			formatInt(p.Year),
			formatFloat(p.X),
			formatFloat(p.Y),
		})
	}
	headers := []string{"CountryCode", "Year", xName, yName}
	if err := e.csvWriter.WriteSimpleCSV(fileName, headers, records); err != nil {
		return fmt.Errorf("failed to write scatter frame %s: %w", fileName, err)
	}
	return nil
}

// ExportUnanchored writes the countries deflation had to flag for missing
// the base year
func (e *ReportExporter) ExportUnanchored(countries []string) error {
	records := make([][]string, 0, len(countries))
	for _, code := range countries {
		records = append(records, []string{code})
	}
	if err := e.csvWriter.WriteSimpleCSV(config.UnanchoredCSV, []string{"CountryCode"}, records); err != nil {
		return fmt.Errorf("failed to write unanchored countries: %w", err)
	}
	return nil
}
