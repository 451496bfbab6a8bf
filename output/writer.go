package output

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RawSheet is a sheet reduced to column names and sanitized values.
type RawSheet struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Writer emits raw sheets without styling. It backs the render fallback and
// plain exports.
type Writer interface {
	Write(path string, sheets []RawSheet) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatFromPath derives the export format from a file extension.
func FormatFromPath(path string) string {
	return normalizeFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

// Export writes every sheet's sanitized data through the writer registered
// for format.
func (d *Document) Export(path, format string) error {
	w, err := WriterForFormat(format)
	if err != nil {
		return err
	}
	d.mu.Lock()
	sheets := d.rawSheets()
	d.mu.Unlock()
	return w.Write(path, sheets)
}

func (d *Document) rawSheets() []RawSheet {
	sheets := make([]RawSheet, 0, len(d.order))
	for _, name := range d.order {
		data := d.data[name].Scrub()
		rows := make([][]any, data.Len())
		for i := range rows {
			rows[i] = data.Row(i)
		}
		sheets = append(sheets, RawSheet{Name: name, Columns: d.configs[name].Columns, Rows: rows})
	}
	return sheets
}
