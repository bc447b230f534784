package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"mpipanel/internal/panel"
)

// RenderDescriptiveTable writes the descriptive statistics table.
func RenderDescriptiveTable(w io.Writer, summaries []VariableSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Variable", "Count", "Mean", "Std", "Min", "P25", "Median", "P75", "Max"})
	for _, s := range summaries {
		table.Append([]string{
			s.Variable,
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.3f", s.Mean),
			fmt.Sprintf("%.3f", s.Std),
			fmt.Sprintf("%.3f", s.Min),
			fmt.Sprintf("%.3f", s.P25),
			fmt.Sprintf("%.3f", s.Median),
			fmt.Sprintf("%.3f", s.P75),
			fmt.Sprintf("%.3f", s.Max),
		})
	}
	table.Render()
}

// RenderRegressionTable writes one specification's fixed- and
// random-effects estimates side by side, followed by the Hausman verdict.
func RenderRegressionTable(w io.Writer, cmp panel.ModelComparison) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Term", "FE Estimate", "FE SE", "RE Estimate", "RE SE"})

	fe := coefficientsByLabel(cmp.Fixed)
	re := coefficientsByLabel(cmp.Random)
	for _, label := range coefficientLabels(cmp) {
		row := []string{label, "", "", "", ""}
		if c, ok := fe[label]; ok {
			row[1] = fmt.Sprintf("%.4f%s", c.Estimate, c.Stars())
			row[2] = fmt.Sprintf("(%.4f)", c.StdErr)
		}
		if c, ok := re[label]; ok {
			row[3] = fmt.Sprintf("%.4f%s", c.Estimate, c.Stars())
			row[4] = fmt.Sprintf("(%.4f)", c.StdErr)
		}
		table.Append(row)
	}

	appendFitRow(table, "Observations", cmp, func(r *panel.EstimateResult) string { return strconv.Itoa(r.N) })
	appendFitRow(table, "Countries", cmp, func(r *panel.EstimateResult) string { return strconv.Itoa(r.Entities) })
	appendFitRow(table, "Years", cmp, func(r *panel.EstimateResult) string { return strconv.Itoa(r.Periods) })
	appendFitRow(table, "R2", cmp, func(r *panel.EstimateResult) string { return fmt.Sprintf("%.4f", r.RSquared) })
	table.Render()

	if cmp.Hausman != nil {
		h := cmp.Hausman
		if h.Valid {
			fmt.Fprintf(w, "Hausman: chi2(%d) = %.3f, p = %.4f, %s\n", h.DF, h.Statistic, h.PValue, h.Conclusion())
		} else {
			fmt.Fprintf(w, "Hausman: %s (%s)\n", h.Conclusion(), h.Note)
		}
	}
}

// RenderHausmanTable writes the specification test summary.
func RenderHausmanTable(w io.Writer, rows []HausmanRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Spec", "Statistic", "DF", "P Value", "Conclusion"})
	for _, r := range rows {
		conclusion := r.Conclusion
		if r.Note != "" {
			conclusion = fmt.Sprintf("%s (%s)", r.Conclusion, r.Note)
		}
		table.Append([]string{
			r.Spec,
			fmt.Sprintf("%.3f", r.Statistic),
			strconv.Itoa(r.DF),
			fmt.Sprintf("%.4f", r.PValue),
			conclusion,
		})
	}
	table.Render()
}

func coefficientsByLabel(result *panel.EstimateResult) map[string]panel.Coefficient {
	out := make(map[string]panel.Coefficient)
	if result == nil {
		return out
	}
	for _, c := range result.Coefficients {
		out[c.Label] = c
	}
	return out
}

// coefficientLabels merges the two term lists, intercept first when the
// random-effects fit reports one.
func coefficientLabels(cmp panel.ModelComparison) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, result := range []*panel.EstimateResult{cmp.Random, cmp.Fixed} {
		if result == nil {
			continue
		}
		for _, c := range result.Coefficients {
			if !seen[c.Label] {
				seen[c.Label] = true
				labels = append(labels, c.Label)
			}
		}
	}
	return labels
}

func appendFitRow(table *tablewriter.Table, name string, cmp panel.ModelComparison, value func(*panel.EstimateResult) string) {
	row := []string{name, "", "", "", ""}
	if cmp.Fixed != nil {
		row[1] = value(cmp.Fixed)
	}
	if cmp.Random != nil {
		row[3] = value(cmp.Random)
	}
	table.Append(row)
}
