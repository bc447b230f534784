package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
)

// MergePanel left-joins the economic and wide governance tables onto the
// investment anchor on (CountryCode, Year). Every input must be unique on
// the key: a duplicate on the right side of a left join would fan anchor
// rows out, so duplicates anywhere are rejected before joining. Anchor rows
// without a match survive with missing values in the joined columns. The
// result is sorted by country code, then year.
func MergePanel(invest, econ, gov dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := CheckUniqueKeys(invest, "investment"); err != nil {
		return dataframe.DataFrame{}, err
	}
	if err := CheckUniqueKeys(econ, "economic"); err != nil {
		return dataframe.DataFrame{}, err
	}
	if err := CheckUniqueKeys(gov, "governance"); err != nil {
		return dataframe.DataFrame{}, err
	}

	merged := invest.LeftJoin(econ, ColCountryCode, ColYear)
	if merged.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to join economic indicators: %w", merged.Err)
	}

	merged = merged.LeftJoin(gov, ColCountryCode, ColYear)
	if merged.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to join governance indicators: %w", merged.Err)
	}

	merged = merged.Arrange(dataframe.Sort(ColCountryCode), dataframe.Sort(ColYear))
	if merged.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to sort merged panel: %w", merged.Err)
	}
	return merged, nil
}

// CheckUniqueKeys verifies that (CountryCode, Year) identifies at most one
// row of the table.
func CheckUniqueKeys(df dataframe.DataFrame, name string) error {
	codes, err := StringColumn(df, ColCountryCode)
	if err != nil {
		return err
	}
	years, err := IntColumn(df, ColYear)
	if err != nil {
		return err
	}

	seen := make(map[keyPair]bool, len(codes))
	for i := range codes {
		key := keyPair{Code: codes[i], Year: years[i]}
		if seen[key] {
			return &DuplicateKeyError{Dataset: name, CountryCode: key.Code, Year: key.Year}
		}
		seen[key] = true
	}
	return nil
}
