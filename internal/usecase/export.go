package usecase

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheet is one worksheet of an export: a header row followed by data rows.
type sheet struct {
	name    string
	headers []string
	rows    [][]any
}

// buildWorkbook renders sheets into an .xlsx file.
func buildWorkbook(sheets []sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, err
		}

		for col, h := range s.headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(s.name, cell, h)
		}
		if len(s.headers) > 0 {
			endCell, _ := excelize.CoordinatesToCellName(len(s.headers), 1)
			f.SetCellStyle(s.name, "A1", endCell, headerStyle)
		}

		for r, row := range s.rows {
			for col, v := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				f.SetCellValue(s.name, cell, v)
			}
		}

		for col := range s.headers {
			colName, _ := excelize.ColumnNumberToName(col + 1)
			f.SetColWidth(s.name, colName, colName, 24)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// exportFilename makes an ASCII-only file name from a title.
func exportFilename(title, fallback string) string {
	name := strings.Trim(unsafeFilename.ReplaceAllString(strings.TrimSpace(title), "_"), "_")
	if name == "" {
		name = fallback
	}
	return name + ".xlsx"
}
