package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// CSVWriter writes all sheets into one file. The first column names the
// sheet each row came from.
type CSVWriter struct{}

func (w *CSVWriter) Write(path string, sheets []RawSheet) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	written := make(map[string]bool)
	for _, sheet := range sheets {
		header := append([]string{"sheet"}, sheet.Columns...)
		key := fmt.Sprint(header)
		if !written[key] {
			if err := writer.Write(header); err != nil {
				return fmt.Errorf("write csv headers: %w", err)
			}
			written[key] = true
		}

		for _, row := range sheet.Rows {
			record := make([]string, 0, len(row)+1)
			record = append(record, sheet.Name)
			for _, value := range row {
				record = append(record, csvValue(value))
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

func csvValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
