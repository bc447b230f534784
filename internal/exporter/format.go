package exporter

import (
	"fmt"
)

// formatFloat formats a float64 value for CSV output with six decimal
// places. NaN renders as "NaN", the loader's missing token, so exported
// frames re-read cleanly.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.6f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
