package dataset

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	ExportSheetName = "批改结果"
	ExportFileName  = "作文批改结果.xlsx"
	ExportMimeType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	colScore       = "得分"
	colEssayPrompt = "作文题目"

	unscoredPlaceholder = "未批改"
)

// Export writes the grading result workbook: every original column and row
// of the dataset, plus a score column (unscored rows rendered as a
// placeholder, not the sentinel) and a column repeating the essay prompt.
// scores must have one entry per dataset row, -1 meaning unscored.
func Export(ds *Dataset, scores []int, prompt string) ([]byte, error) {
	if len(scores) != len(ds.Rows) {
		return nil, fmt.Errorf("score count %d does not match row count %d", len(scores), len(ds.Rows))
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, fmt.Errorf("failed to name result sheet: %w", err)
	}

	header := append(append([]string{}, ds.Columns...), colScore, colEssayPrompt)
	if err := writeRow(f, 1, headerToCells(header)); err != nil {
		return nil, err
	}

	for i, row := range ds.Rows {
		cells := make([]interface{}, 0, len(row)+2)
		for _, cell := range row {
			cells = append(cells, cell)
		}
		if scores[i] < 0 {
			cells = append(cells, unscoredPlaceholder)
		} else {
			cells = append(cells, scores[i])
		}
		cells = append(cells, prompt)
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize result workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func headerToCells(header []string) []interface{} {
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	return cells
}

func writeRow(f *excelize.File, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(ExportSheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %s: %w", strconv.Itoa(rowNum), err)
	}
	return nil
}
