package report

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"

	"mpipanel/internal/dataset"
)

// ScatterPoint is one complete country-year pair of the plotted variables.
type ScatterPoint struct {
	CountryCode string
	Year        int
	X           float64
	Y           float64
}

// ScatterFrame extracts the complete-case (x, y) pairs with their
// country-year labels, ready for plotting downstream. Panel order is
// preserved.
func ScatterFrame(df dataframe.DataFrame, xcol, ycol string) ([]ScatterPoint, error) {
	codes, err := dataset.StringColumn(df, dataset.ColCountryCode)
	if err != nil {
		return nil, fmt.Errorf("scatter frame: %w", err)
	}
	years, err := dataset.IntColumn(df, dataset.ColYear)
	if err != nil {
		return nil, fmt.Errorf("scatter frame: %w", err)
	}
	xs, err := dataset.FloatColumn(df, xcol)
	if err != nil {
		return nil, fmt.Errorf("scatter frame: %w", err)
	}
	ys, err := dataset.FloatColumn(df, ycol)
	if err != nil {
		return nil, fmt.Errorf("scatter frame: %w", err)
	}

	var points []ScatterPoint
	for r := range xs {
		if math.IsNaN(xs[r]) || math.IsNaN(ys[r]) {
			continue
		}
		points = append(points, ScatterPoint{
			CountryCode: codes[r],
			Year:        years[r],
			X:           xs[r],
			Y:           ys[r],
		})
	}
	return points, nil
}
