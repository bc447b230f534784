package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// ReadTable loads a delimited text file or spreadsheet into a string-typed
// frame. The format is chosen by extension: .xlsx/.xlsm/.xls open through
// excelize (first sheet), .csv as comma-separated, .tsv and .txt as
// tab-separated. Cells are trimmed of surrounding whitespace, and trimmed
// cells matching one of missingTokens load as missing. No schema is imposed
// here; renaming and typing happen in Normalize.
func ReadTable(path string, missingTokens []string) (dataframe.DataFrame, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		records, err = readSpreadsheet(path)
	case ".csv":
		records, err = readDelimited(path, ',')
	case ".tsv", ".txt":
		records, err = readDelimited(path, '\t')
	default:
		return dataframe.DataFrame{}, fmt.Errorf("unsupported table format %q: %s", filepath.Ext(path), path)
	}
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	records = squareRecords(records)
	if len(records) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("table %s has no data rows", path)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingTokens),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to load table %s: %w", path, df.Err)
	}
	return df, nil
}

// readDelimited reads a delimited text file into raw records. A UTF-8 BOM on
// the first header cell is stripped.
func readDelimited(path string, comma rune) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}

	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	}
	return records, nil
}

// readSpreadsheet reads the first sheet of a workbook into raw records.
func readSpreadsheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s from %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

// squareRecords trims every cell, drops columns with blank headers and rows
// that are entirely blank, and pads ragged rows to header width.
func squareRecords(records [][]string) [][]string {
	if len(records) == 0 {
		return records
	}

	header := records[0]
	keep := make([]int, 0, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) != "" {
			keep = append(keep, i)
		}
	}

	squared := make([][]string, 0, len(records))
	for rowIdx, row := range records {
		cells := make([]string, len(keep))
		blank := true
		for j, col := range keep {
			var cell string
			if col < len(row) {
				cell = strings.TrimSpace(row[col])
			}
			cells[j] = cell
			if cell != "" {
				blank = false
			}
		}
		if blank && rowIdx > 0 {
			continue
		}
		squared = append(squared, cells)
	}
	return squared
}
