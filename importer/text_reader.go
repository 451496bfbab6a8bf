package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

type TextReader struct {
	Encoding string
}

func (r *TextReader) Read(path string) ([]Line, error) {
	content, err := readDecoded(path, r.Encoding)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make([]Line, 0, 32)
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		line := Line{Number: number, Fields: []string{text}}
		if line.skip() {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file %s: %w", path, err)
	}

	return lines, nil
}
