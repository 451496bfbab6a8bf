package table

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"gosheet/style"
)

// Template is the YAML form of a table config. Loading one yields the same
// Config that building it in code would.
type Template struct {
	Name       string           `yaml:"name" validate:"required"`
	FreezePane string           `yaml:"freeze_pane"`
	AutoFilter *bool            `yaml:"auto_filter"`
	Gridlines  *bool            `yaml:"gridlines"`
	Zoom       int              `yaml:"zoom" validate:"omitempty,min=10,max=400"`
	Header     HeaderTemplate   `yaml:"header"`
	Columns    []ColumnTemplate `yaml:"columns" validate:"required,min=1,dive"`
	Rows       []RowOverride    `yaml:"rows" validate:"dive"`
	Cells      []CellOverride   `yaml:"cells" validate:"dive"`
	// Styles holds shared definitions that items reference through YAML
	// anchors. Entries are validated but otherwise unused.
	Styles map[string]*StyleTemplate `yaml:"styles" validate:"dive"`
}

// RowOverride targets a zero-based data row.
type RowOverride struct {
	Row    int            `yaml:"row" validate:"gte=0"`
	Height float64        `yaml:"height" validate:"gte=0"`
	Style  *StyleTemplate `yaml:"style"`
}

type CellOverride struct {
	Row   int            `yaml:"row" validate:"gte=0"`
	Col   int            `yaml:"col" validate:"gte=0"`
	Style *StyleTemplate `yaml:"style" validate:"required"`
}

type HeaderTemplate struct {
	Merge *bool          `yaml:"merge"`
	Style *StyleTemplate `yaml:"style"`
	Rows  []RowTemplate  `yaml:"rows" validate:"required,min=1,dive"`
}

type RowTemplate struct {
	Height float64        `yaml:"height" validate:"gte=0"`
	Items  []ItemTemplate `yaml:"items" validate:"required,min=1,dive"`
}

type ItemTemplate struct {
	Text    string         `yaml:"text"`
	RowSpan int            `yaml:"row_span" validate:"gte=0"`
	ColSpan int            `yaml:"col_span" validate:"gte=0"`
	Style   *StyleTemplate `yaml:"style"`
}

type ColumnTemplate struct {
	ID          string         `yaml:"id" validate:"required"`
	Width       float64        `yaml:"width" validate:"gte=0"`
	Hidden      bool           `yaml:"hidden"`
	Style       *StyleTemplate `yaml:"style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
}

type StyleTemplate struct {
	Font        *FontTemplate   `yaml:"font"`
	Fill        *FillTemplate   `yaml:"fill"`
	Border      *BorderTemplate `yaml:"border"`
	Horizontal  string          `yaml:"horizontal" validate:"omitempty,oneof=left center right justify fill center_across distributed"`
	Vertical    string          `yaml:"vertical" validate:"omitempty,oneof=top center bottom justify distributed"`
	WrapText    bool            `yaml:"wrap_text"`
	ShrinkToFit bool            `yaml:"shrink_to_fit"`
	Rotation    int             `yaml:"rotation" validate:"gte=0,lte=90"`
	Indent      int             `yaml:"indent" validate:"gte=0"`
	NumFormat   string          `yaml:"num_format"`
}

type FontTemplate struct {
	Name      string  `yaml:"name"`
	Size      float64 `yaml:"size" validate:"gte=0"`
	Color     string  `yaml:"color" validate:"omitempty,hexcolor"`
	Style     string  `yaml:"style" validate:"omitempty,oneof=normal bold italic bold_italic"`
	Underline bool    `yaml:"underline"`
}

type FillTemplate struct {
	Color   string `yaml:"color" validate:"required,hexcolor"`
	Pattern string `yaml:"pattern" validate:"omitempty,oneof=solid dark_gray medium_gray light_gray gray125 gray0625"`
}

// BorderTemplate sets every side from All, then applies the per-side entries.
type BorderTemplate struct {
	All    *EdgeTemplate `yaml:"all"`
	Left   *EdgeTemplate `yaml:"left"`
	Right  *EdgeTemplate `yaml:"right"`
	Top    *EdgeTemplate `yaml:"top"`
	Bottom *EdgeTemplate `yaml:"bottom"`
}

type EdgeTemplate struct {
	Style string `yaml:"style" validate:"required,oneof=none thin medium dashed dotted thick double hair"`
	Color string `yaml:"color" validate:"omitempty,hexcolor"`
}

// LoadTemplate reads and builds a table config from a YAML file.
func LoadTemplate(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	cfg, err := ParseTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return cfg, nil
}

func ParseTemplate(raw []byte) (*Config, error) {
	var tpl Template
	if err := yaml.Unmarshal(raw, &tpl); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return tpl.Build()
}

func (t Template) Build() (*Config, error) {
	if err := validator.New().Struct(t); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	rows := make([]HeaderRow, len(t.Header.Rows))
	for i, row := range t.Header.Rows {
		items := make([]HeaderItem, len(row.Items))
		for j, item := range row.Items {
			items[j] = Item(item.Text).Span(item.RowSpan, item.ColSpan).Styled(item.Style.CellStyle())
		}
		rows[i] = HeaderRow{Items: items, Height: row.Height}
	}
	headerOpts := []HeaderOption{WithOverallStyle(t.Header.Style.CellStyle())}
	if t.Header.Merge != nil {
		headerOpts = append(headerOpts, WithMerge(*t.Header.Merge))
	}
	header, err := NewHeaderConfig(rows, headerOpts...)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(t.Columns))
	opts := []Option{WithFreezePane(t.FreezePane)}
	for i, col := range t.Columns {
		columns[i] = col.ID
		if col.Width > 0 || col.Hidden || col.Style != nil || col.HeaderStyle != nil {
			opts = append(opts, WithColumnStyle(ColumnStyle{
				Column:       col.ID,
				DefaultStyle: col.Style.CellStyle(),
				HeaderStyle:  col.HeaderStyle.CellStyle(),
				Width:        col.Width,
				Hidden:       col.Hidden,
			}))
		}
	}
	for _, row := range t.Rows {
		opts = append(opts, WithRowStyle(RowStyle{Row: row.Row, Style: row.Style.CellStyle(), Height: row.Height}))
	}
	for _, cell := range t.Cells {
		opts = append(opts, WithCellStyle(cell.Row, cell.Col, cell.Style.CellStyle()))
	}
	if t.AutoFilter != nil {
		opts = append(opts, WithAutoFilter(*t.AutoFilter))
	}
	if t.Gridlines != nil {
		opts = append(opts, WithGridlines(*t.Gridlines))
	}
	if t.Zoom != 0 {
		opts = append(opts, WithZoom(t.Zoom))
	}
	return New(t.Name, header, columns, opts...)
}

// CellStyle converts the template; a nil template yields nil.
func (s *StyleTemplate) CellStyle() *style.CellStyle {
	if s == nil {
		return nil
	}
	out := &style.CellStyle{
		Horizontal:  style.HorizontalAlignment(s.Horizontal),
		Vertical:    style.VerticalAlignment(s.Vertical),
		WrapText:    s.WrapText,
		ShrinkToFit: s.ShrinkToFit,
		Rotation:    s.Rotation,
		Indent:      s.Indent,
		NumFormat:   s.NumFormat,
	}
	if s.Font != nil {
		font := style.DefaultFont()
		if s.Font.Name != "" {
			font.Name = s.Font.Name
		}
		if s.Font.Size > 0 {
			font.Size = s.Font.Size
		}
		if s.Font.Color != "" {
			font.Color = s.Font.Color
		}
		font.Style = style.FontStyle(s.Font.Style)
		font.Underline = s.Font.Underline
		out.Font = &font
	}
	if s.Fill != nil {
		out.Fill = &style.Fill{Color: s.Fill.Color, Pattern: style.FillPattern(s.Fill.Pattern)}
	}
	if s.Border != nil {
		border := &style.Border{}
		if s.Border.All != nil {
			border = style.Box(s.Border.All.edge())
		}
		if s.Border.Left != nil {
			edge := s.Border.Left.edge()
			border.Left = &edge
		}
		if s.Border.Right != nil {
			edge := s.Border.Right.edge()
			border.Right = &edge
		}
		if s.Border.Top != nil {
			edge := s.Border.Top.edge()
			border.Top = &edge
		}
		if s.Border.Bottom != nil {
			edge := s.Border.Bottom.edge()
			border.Bottom = &edge
		}
		out.Border = border
	}
	return out
}

func (e *EdgeTemplate) edge() style.Edge {
	color := e.Color
	if color == "" {
		color = style.DefaultFontColor
	}
	return style.Edge{Style: style.BorderStyle(e.Style), Color: color}
}
