package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader reads list files without a header row.
type CSVReader struct {
	Encoding string
}

func (r *CSVReader) Read(path string) ([]Line, error) {
	content, err := readDecoded(path, r.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	lines := make([]Line, 0, 32)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv list %s: %w", path, err)
		}

		number, _ := reader.FieldPos(0)
		line := Line{Number: number, Fields: row}
		if line.skip() {
			continue
		}
		lines = append(lines, line)
	}

	return lines, nil
}
