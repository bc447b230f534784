package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
)

// keyPair identifies one country-year observation.
type keyPair struct {
	Code string
	Year int
}

// HasColumn reports whether the table carries a column with the given name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// StringColumn returns the rendered values of a column. Missing values
// render as "NaN".
func StringColumn(df dataframe.DataFrame, name string) ([]string, error) {
	s := df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("failed to read column %s: %w", name, s.Err)
	}
	return s.Records(), nil
}

// IntColumn returns an integer column. Integer columns carry keys, so a
// missing value is an error.
func IntColumn(df dataframe.DataFrame, name string) ([]int, error) {
	s := df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("failed to read column %s: %w", name, s.Err)
	}
	vals, err := s.Int()
	if err != nil {
		return nil, fmt.Errorf("failed to read column %s as integers: %w", name, err)
	}
	return vals, nil
}

// FloatColumn returns a float column with missing values as NaN.
func FloatColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	s := df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("failed to read column %s: %w", name, s.Err)
	}
	return s.Float(), nil
}
