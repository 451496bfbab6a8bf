package importer

import (
	"fmt"
	"path/filepath"
)

type Reader interface {
	Read(path string) ([]Line, error)
}

// ReaderForPath picks a reader by extension. Anything that is not csv or a
// workbook is read as plain text.
func ReaderForPath(path, encoding string) (Reader, error) {
	return ReaderForFormat(filepath.Ext(path), encoding)
}

func ReaderForFormat(format, encoding string) (Reader, error) {
	if _, err := decoderFor(encoding); err != nil {
		return nil, err
	}
	switch normalizeFormat(format) {
	case "csv":
		return &CSVReader{Encoding: encoding}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	case "xls":
		return nil, fmt.Errorf("unsupported input format: %s (save the list as xlsx)", format)
	default:
		return &TextReader{Encoding: encoding}, nil
	}
}
