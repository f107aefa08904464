package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Read parses an uploaded XLSX roster from r. It reads the first sheet,
// treats the first row as headers, verifies the required columns are
// present and returns an immutable Dataset with its fingerprint computed.
// Any failure leaves no partial state behind; the caller's session is
// untouched.
func Read(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrDatasetUnreadable().SetDebug(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrDatasetUnreadable().SetDebug(fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ErrDatasetUnreadable().SetDebug(fmt.Errorf("failed to read sheet %s: %w", sheets[0], err))
	}
	if len(rows) == 0 {
		return nil, ErrMissingColumns([]string{ColImage1, ColImage2, ColRubric})
	}

	columns := rows[0]
	colIdx := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, ok := colIdx[name]; !ok {
			colIdx[name] = i
		}
	}

	var missing []string
	for _, required := range []string{ColImage1, ColImage2, ColRubric} {
		if _, ok := colIdx[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, ErrMissingColumns(missing)
	}

	dataRows := rows[1:]
	if len(dataRows) == 0 {
		return nil, ErrDatasetEmpty()
	}

	cellAt := func(row []string, col int) string {
		// excelize trims trailing empty cells from each row
		if col >= len(row) {
			return ""
		}
		return row[col]
	}

	ds := &Dataset{
		Columns:     columns,
		Rows:        make([][]string, 0, len(dataRows)),
		Submissions: make([]Submission, 0, len(dataRows)),
	}
	for _, row := range dataRows {
		padded := make([]string, len(columns))
		for i := range columns {
			padded[i] = cellAt(row, i)
		}
		ds.Rows = append(ds.Rows, padded)
		ds.Submissions = append(ds.Submissions, Submission{
			Image1: padded[colIdx[ColImage1]],
			Image2: padded[colIdx[ColImage2]],
			Rubric: padded[colIdx[ColRubric]],
		})
	}

	ds.fingerprint = fingerprintOf(ds.Columns, ds.Rows)

	return ds, nil
}
