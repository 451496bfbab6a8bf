package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads the first sheet of a workbook. Workbooks carry their own
// encoding so none is configured here.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) ([]Line, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}

	lines := make([]Line, 0, len(rows))
	for i, row := range rows {
		line := Line{Number: i + 1, Fields: row}
		if line.skip() {
			continue
		}
		lines = append(lines, line)
	}

	return lines, nil
}
