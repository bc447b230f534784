package dataset

import "fmt"

// SchemaError reports a dataset whose shape or content does not match its
// declared schema: a required column is absent, a key value is missing, or a
// cell cannot be coerced to the declared type.
type SchemaError struct {
	Dataset string
	Column  string
	Value   string
	Message string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Value != "":
		return fmt.Sprintf("dataset %s: column %s: %s (value %q)", e.Dataset, e.Column, e.Message, e.Value)
	case e.Column != "":
		return fmt.Sprintf("dataset %s: column %s: %s", e.Dataset, e.Column, e.Message)
	default:
		return fmt.Sprintf("dataset %s: %s", e.Dataset, e.Message)
	}
}

// DuplicateKeyError reports observations sharing a key that must be unique.
// Indicator is set for long-format governance rows, where the key is the
// (country, year, indicator) triple.
type DuplicateKeyError struct {
	Dataset     string
	CountryCode string
	Year        int
	Indicator   string
}

func (e *DuplicateKeyError) Error() string {
	if e.Indicator != "" {
		return fmt.Sprintf("dataset %s: duplicate observation for country %s, year %d, indicator %s",
			e.Dataset, e.CountryCode, e.Year, e.Indicator)
	}
	return fmt.Sprintf("dataset %s: duplicate key for country %s, year %d",
		e.Dataset, e.CountryCode, e.Year)
}
