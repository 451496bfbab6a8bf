package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gosheet/style"
)

// styleCache hands out one excelize style id per distinct style key within a
// single workbook.
type styleCache struct {
	newStyle func(*excelize.Style) (int, error)
	ids      map[string]int
	created  int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{newStyle: f.NewStyle, ids: make(map[string]int)}
}

func (c *styleCache) id(s *style.CellStyle) (int, error) {
	key := s.Key()
	if id, ok := c.ids[key]; ok {
		return id, nil
	}
	id, err := c.newStyle(excelStyle(s))
	if err != nil {
		return 0, fmt.Errorf("create cell style: %w", err)
	}
	c.created++
	c.ids[key] = id
	return id, nil
}
