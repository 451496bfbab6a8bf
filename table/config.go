package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"gosheet/style"
)

const (
	DefaultZoom = 100
	MinZoom     = 10
	MaxZoom     = 400
)

var ErrColumnCount = errors.New("data column count does not match header column count")

type ColumnStyle struct {
	Column       string
	DefaultStyle *style.CellStyle
	HeaderStyle  *style.CellStyle
	// Width in characters; 0 means computed from the data.
	Width  float64
	Hidden bool
}

type RowStyle struct {
	// Row is zero-based and relative to the first data row.
	Row    int
	Style  *style.CellStyle
	Height float64
}

type CellRef struct {
	Row int
	Col int
}

type CellStyle struct {
	Ref   CellRef
	Style *style.CellStyle
}

// Config binds a header layout to the data columns written under it plus
// style overrides and sheet display settings.
type Config struct {
	Name    string
	Header  *HeaderConfig
	Columns []string

	ColumnStyles map[string]ColumnStyle
	RowStyles    map[int]RowStyle
	CellStyles   map[CellRef]CellStyle

	// FreezePane is the top-left unfrozen cell, e.g. "A4". Empty disables it.
	FreezePane    string
	AutoFilter    bool
	ShowGridlines bool
	Zoom          int
}

type Option func(*Config)

func WithFreezePane(cell string) Option {
	return func(c *Config) { c.FreezePane = strings.TrimSpace(cell) }
}

func WithAutoFilter(enabled bool) Option {
	return func(c *Config) { c.AutoFilter = enabled }
}

func WithGridlines(visible bool) Option {
	return func(c *Config) { c.ShowGridlines = visible }
}

func WithZoom(percent int) Option {
	return func(c *Config) { c.Zoom = percent }
}

func WithColumnStyle(cs ColumnStyle) Option {
	return func(c *Config) { c.ColumnStyles[cs.Column] = cs }
}

func WithRowStyle(rs RowStyle) Option {
	return func(c *Config) { c.RowStyles[rs.Row] = rs }
}

func WithCellStyle(row, col int, s *style.CellStyle) Option {
	return func(c *Config) {
		ref := CellRef{Row: row, Col: col}
		c.CellStyles[ref] = CellStyle{Ref: ref, Style: s}
	}
}

// New builds and validates a Config. Auto filter and gridlines default on,
// zoom to 100%.
func New(name string, header *HeaderConfig, columns []string, opts ...Option) (*Config, error) {
	c := &Config{
		Name:          name,
		Header:        header,
		Columns:       append([]string(nil), columns...),
		ColumnStyles:  make(map[string]ColumnStyle),
		RowStyles:     make(map[int]RowStyle),
		CellStyles:    make(map[CellRef]CellStyle),
		AutoFilter:    true,
		ShowGridlines: true,
		Zoom:          DefaultZoom,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Header == nil {
		return ErrNoHeaderRows
	}
	if len(c.Columns) != c.Header.ColCount() {
		return fmt.Errorf("%w: %d data columns, header spans %d", ErrColumnCount, len(c.Columns), c.Header.ColCount())
	}

	seen := make(map[string]struct{}, len(c.Columns))
	for i, column := range c.Columns {
		if strings.TrimSpace(column) == "" {
			return fmt.Errorf("data column %d has an empty name", i+1)
		}
		if _, ok := seen[column]; ok {
			return fmt.Errorf("duplicate data column %q", column)
		}
		seen[column] = struct{}{}
	}
	for name, cs := range c.ColumnStyles {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("column style for unknown column %q", name)
		}
		if cs.Width < 0 {
			return fmt.Errorf("column %q width must be >= 0", name)
		}
		if err := validateStyle(cs.DefaultStyle); err != nil {
			return fmt.Errorf("column %q style: %w", name, err)
		}
		if err := validateStyle(cs.HeaderStyle); err != nil {
			return fmt.Errorf("column %q header style: %w", name, err)
		}
	}
	for row, rs := range c.RowStyles {
		if row < 0 {
			return fmt.Errorf("row style index %d must be >= 0", row)
		}
		if err := validateStyle(rs.Style); err != nil {
			return fmt.Errorf("row %d style: %w", row, err)
		}
	}
	for ref, cs := range c.CellStyles {
		if ref.Row < 0 || ref.Col < 0 || ref.Col >= len(c.Columns) {
			return fmt.Errorf("cell style at (%d,%d) is outside the table", ref.Row, ref.Col)
		}
		if err := validateStyle(cs.Style); err != nil {
			return fmt.Errorf("cell (%d,%d) style: %w", ref.Row, ref.Col, err)
		}
	}

	if c.FreezePane != "" {
		if _, _, err := excelize.CellNameToCoordinates(c.FreezePane); err != nil {
			return fmt.Errorf("invalid freeze pane %q: %w", c.FreezePane, err)
		}
	}
	if c.Zoom < MinZoom || c.Zoom > MaxZoom {
		return fmt.Errorf("zoom %d%% outside %d..%d", c.Zoom, MinZoom, MaxZoom)
	}
	return nil
}

func validateStyle(s *style.CellStyle) error {
	if s == nil {
		return nil
	}
	return s.Validate()
}

func (c *Config) ColumnStyle(column string) (ColumnStyle, bool) {
	cs, ok := c.ColumnStyles[column]
	return cs, ok
}

func (c *Config) RowStyle(row int) (RowStyle, bool) {
	rs, ok := c.RowStyles[row]
	return rs, ok
}

func (c *Config) CellStyle(row, col int) (CellStyle, bool) {
	cs, ok := c.CellStyles[CellRef{Row: row, Col: col}]
	return cs, ok
}

// HeaderStyleFor resolves the style of a header item anchored at column col:
// the item's own style, then the column's header style when the item covers
// only that column, then the header's overall style.
func (c *Config) HeaderStyleFor(item *HeaderItem, col int) *style.CellStyle {
	if item.Style != nil {
		return item.Style
	}
	if item.ColSpan == 1 && col >= 0 && col < len(c.Columns) {
		if cs, ok := c.ColumnStyles[c.Columns[col]]; ok && cs.HeaderStyle != nil {
			return cs.HeaderStyle
		}
	}
	return c.Header.OverallStyle()
}

// DataStyleFor resolves a data cell style: cell override, then row override,
// then the column default. Nil means write the raw value unformatted.
func (c *Config) DataStyleFor(row, col int) *style.CellStyle {
	if cs, ok := c.CellStyle(row, col); ok && cs.Style != nil {
		return cs.Style
	}
	if rs, ok := c.RowStyle(row); ok && rs.Style != nil {
		return rs.Style
	}
	if col >= 0 && col < len(c.Columns) {
		if cs, ok := c.ColumnStyle(c.Columns[col]); ok && cs.DefaultStyle != nil {
			return cs.DefaultStyle
		}
	}
	return nil
}

// Copy returns an independent config named name. The header is shared, the
// override maps are copied.
func (c *Config) Copy(name string) *Config {
	if name == "" {
		name = c.Name + "_copy"
	}
	cp := *c
	cp.Name = name
	cp.Columns = append([]string(nil), c.Columns...)
	cp.ColumnStyles = make(map[string]ColumnStyle, len(c.ColumnStyles))
	for k, v := range c.ColumnStyles {
		cp.ColumnStyles[k] = v
	}
	cp.RowStyles = make(map[int]RowStyle, len(c.RowStyles))
	for k, v := range c.RowStyles {
		cp.RowStyles[k] = v
	}
	cp.CellStyles = make(map[CellRef]CellStyle, len(c.CellStyles))
	for k, v := range c.CellStyles {
		cp.CellStyles[k] = v
	}
	return &cp
}
