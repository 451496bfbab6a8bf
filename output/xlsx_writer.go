package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tealeg/xlsx"
)

// XLSXWriter writes raw sheets through tealeg/xlsx: column names in the first
// row, values below, no styling.
type XLSXWriter struct{}

func (w *XLSXWriter) Write(path string, sheets []RawSheet) error {
	file := xlsx.NewFile()
	if len(sheets) == 0 {
		if _, err := file.AddSheet("Sheet1"); err != nil {
			return fmt.Errorf("add xlsx sheet: %w", err)
		}
	}

	for _, raw := range sheets {
		sheet, err := file.AddSheet(raw.Name)
		if err != nil {
			return fmt.Errorf("add xlsx sheet %s: %w", raw.Name, err)
		}
		header := sheet.AddRow()
		for _, column := range raw.Columns {
			header.AddCell().SetString(column)
		}
		for _, values := range raw.Rows {
			row := sheet.AddRow()
			for _, value := range values {
				row.AddCell().SetValue(value)
			}
		}
	}

	return saveAtomic(path, func(tmp string) error {
		if err := file.Save(tmp); err != nil {
			return fmt.Errorf("save xlsx output %s: %w", path, err)
		}
		return nil
	})
}

// saveAtomic lets save write a temporary file next to path and renames it into
// place only when save succeeds. The temporary file never outlives the call.
func saveAtomic(path string, save func(tmp string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".gosheet-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temporary output: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	if err := save(tmpPath); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("move output into place %s: %w", path, err)
	}
	return nil
}
