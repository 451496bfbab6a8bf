package style

import "strings"

// HeaderOptions tunes Header. Zero values fall back to the defaults of the
// stock blue header.
type HeaderOptions struct {
	FillColor  string
	FontColor  string
	FontSize   float64
	NoBorder   bool
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
	FontStyle  FontStyle
}

func Header(opts HeaderOptions) *CellStyle {
	font := DefaultFont()
	font.Color = firstNonEmpty(opts.FontColor, "#FFFFFF")
	if opts.FontSize > 0 {
		font.Size = opts.FontSize
	}
	if opts.FontStyle != "" {
		font.Style = opts.FontStyle
	}

	s := &CellStyle{
		Font:       &font,
		Fill:       &Fill{Color: firstNonEmpty(opts.FillColor, "#4F81BD"), Pattern: PatternSolid},
		Horizontal: opts.Horizontal,
		Vertical:   opts.Vertical,
		WrapText:   true,
	}
	if !opts.NoBorder {
		s.Border = Box(Edge{Style: BorderThin, Color: "#000000"})
	}
	return s
}

// Data is the plain body style; with alternate set, odd rows get a light gray
// band.
func Data(fontColor string, fontSize float64, alternate bool, rowIndex int) *CellStyle {
	font := DefaultFont()
	font.Color = firstNonEmpty(fontColor, DefaultFontColor)
	if fontSize > 0 {
		font.Size = fontSize
	} else {
		font.Size = 10
	}
	fill := DefaultFillColor
	if alternate && rowIndex%2 == 1 {
		fill = "#F5F5F5"
	}
	return &CellStyle{
		Font:       &font,
		Fill:       &Fill{Color: fill, Pattern: PatternSolid},
		Border:     &Border{Bottom: Thin("#E0E0E0")},
		Horizontal: AlignLeft,
		Vertical:   VAlignCenter,
	}
}

func Number(numFormat string) *CellStyle {
	font := DefaultFont()
	return &CellStyle{
		Font:       &font,
		Horizontal: AlignRight,
		NumFormat:  firstNonEmpty(numFormat, "#,##0.00"),
	}
}

func Currency(symbol string, bold bool) *CellStyle {
	font := DefaultFont()
	font.Color = "#1B5E20"
	if bold {
		font.Style = FontBold
	}
	return &CellStyle{
		Font:       &font,
		Horizontal: AlignRight,
		NumFormat:  firstNonEmpty(symbol, "¥") + "#,##0.00",
	}
}

func Percentage(bold bool) *CellStyle {
	font := DefaultFont()
	font.Color = "#0D47A1"
	if bold {
		font.Style = FontBold
	}
	return &CellStyle{
		Font:       &font,
		Horizontal: AlignRight,
		NumFormat:  "0.00%",
	}
}

func Highlight() *CellStyle {
	font := DefaultFont()
	font.Color = "#F57C00"
	font.Style = FontBold
	return &CellStyle{
		Font:   &font,
		Fill:   &Fill{Color: "#FFF9C4", Pattern: PatternSolid},
		Border: Box(Edge{Style: BorderThin, Color: "#FFB74D"}),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
