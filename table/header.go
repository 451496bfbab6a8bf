package table

import (
	"errors"
	"fmt"

	"gosheet/style"
)

const DefaultRowHeight = 25

var (
	ErrNoHeaderRows = errors.New("header must have at least one row")
	ErrHeaderWidth  = errors.New("header rows span different column counts")
)

type HeaderItem struct {
	Text    string
	RowSpan int
	ColSpan int
	Style   *style.CellStyle
}

// Item returns a 1x1 header item.
func Item(text string) HeaderItem {
	return HeaderItem{Text: text, RowSpan: 1, ColSpan: 1}
}

// Span returns a copy spanning rows x cols. Values below 1 are clamped to 1.
func (i HeaderItem) Span(rows, cols int) HeaderItem {
	i.RowSpan = rows
	i.ColSpan = cols
	return i.clamped()
}

func (i HeaderItem) Styled(s *style.CellStyle) HeaderItem {
	i.Style = s
	return i
}

func (i HeaderItem) clamped() HeaderItem {
	if i.RowSpan < 1 {
		i.RowSpan = 1
	}
	if i.ColSpan < 1 {
		i.ColSpan = 1
	}
	return i
}

type HeaderRow struct {
	Items  []HeaderItem
	Height float64
}

// Width is the logical column count of the row, the sum of column spans.
func (r HeaderRow) Width() int {
	width := 0
	for _, item := range r.Items {
		width += item.clamped().ColSpan
	}
	return width
}

// HeaderConfig is read-only after construction; table configs copied from
// one another share it.
type HeaderConfig struct {
	rows    []HeaderRow
	overall *style.CellStyle
	merge   bool
}

type HeaderOption func(*HeaderConfig)

// WithOverallStyle sets the style used by items that carry none of their own.
func WithOverallStyle(s *style.CellStyle) HeaderOption {
	return func(h *HeaderConfig) { h.overall = s }
}

// WithMerge toggles merging of spanned items. Merging is on by default.
func WithMerge(merge bool) HeaderOption {
	return func(h *HeaderConfig) { h.merge = merge }
}

func NewHeaderConfig(rows []HeaderRow, opts ...HeaderOption) (*HeaderConfig, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeaderRows
	}

	h := &HeaderConfig{rows: make([]HeaderRow, len(rows)), merge: true}
	for i, row := range rows {
		items := make([]HeaderItem, len(row.Items))
		for j, item := range row.Items {
			items[j] = item.clamped()
		}
		height := row.Height
		if height <= 0 {
			height = DefaultRowHeight
		}
		h.rows[i] = HeaderRow{Items: items, Height: height}
	}
	for _, opt := range opts {
		opt(h)
	}

	first := h.rows[0].Width()
	for i, row := range h.rows[1:] {
		if width := row.Width(); width != first {
			return nil, fmt.Errorf("%w: row %d spans %d columns, row 1 spans %d", ErrHeaderWidth, i+2, width, first)
		}
	}
	if h.overall != nil {
		if err := h.overall.Validate(); err != nil {
			return nil, fmt.Errorf("header overall style: %w", err)
		}
	}
	for i, row := range h.rows {
		for j, item := range row.Items {
			if item.Style == nil {
				continue
			}
			if err := item.Style.Validate(); err != nil {
				return nil, fmt.Errorf("header row %d item %d style: %w", i+1, j+1, err)
			}
		}
	}

	return h, nil
}

func (h *HeaderConfig) RowCount() int { return len(h.rows) }

func (h *HeaderConfig) ColCount() int {
	if len(h.rows) == 0 {
		return 0
	}
	return h.rows[0].Width()
}

// Rows returns the header rows. Callers must not modify them.
func (h *HeaderConfig) Rows() []HeaderRow { return h.rows }

func (h *HeaderConfig) OverallStyle() *style.CellStyle { return h.overall }

func (h *HeaderConfig) Merge() bool { return h.merge }

// GridCell points a grid position at the item occupying it and at that
// item's anchor, its top-left cell.
type GridCell struct {
	Item      *HeaderItem
	AnchorRow int
	AnchorCol int
}

// IsAnchor reports whether (row, col) is the anchor of the occupying item.
func (c *GridCell) IsAnchor(row, col int) bool {
	return c != nil && c.AnchorRow == row && c.AnchorCol == col
}

// Grid resolves the rows into a RowCount x ColCount occupancy matrix. Rows are
// filled top to bottom, items left to right, and a cell already claimed by an
// earlier item keeps its first owner. Spans running past the grid are clipped.
// Unclaimed cells are nil.
func (h *HeaderConfig) Grid() [][]*GridCell {
	rowCount, colCount := h.RowCount(), h.ColCount()
	grid := make([][]*GridCell, rowCount)
	for r := range grid {
		grid[r] = make([]*GridCell, colCount)
	}

	for rowIdx := range h.rows {
		colIdx := 0
		for itemIdx := range h.rows[rowIdx].Items {
			item := &h.rows[rowIdx].Items[itemIdx]
			for r := rowIdx; r < min(rowIdx+item.RowSpan, rowCount); r++ {
				for c := colIdx; c < min(colIdx+item.ColSpan, colCount); c++ {
					if grid[r][c] == nil {
						grid[r][c] = &GridCell{Item: item, AnchorRow: rowIdx, AnchorCol: colIdx}
					}
				}
			}
			colIdx += item.ColSpan
		}
	}
	return grid
}

// MergeRange returns the inclusive zero-based bounds an anchored item covers,
// clipped to the grid.
func (h *HeaderConfig) MergeRange(cell *GridCell) (startRow, startCol, endRow, endCol int) {
	startRow, startCol = cell.AnchorRow, cell.AnchorCol
	endRow = min(startRow+cell.Item.RowSpan-1, h.RowCount()-1)
	endCol = min(startCol+cell.Item.ColSpan-1, h.ColCount()-1)
	return startRow, startCol, endRow, endCol
}
