// Package style describes cell formatting as plain values. Nothing here knows
// about a spreadsheet backend; renderers map these values to their own
// vocabulary.
package style

import (
	"encoding/json"
	"fmt"
)

type HorizontalAlignment string

const (
	AlignLeft         HorizontalAlignment = "left"
	AlignCenter       HorizontalAlignment = "center"
	AlignRight        HorizontalAlignment = "right"
	AlignJustify      HorizontalAlignment = "justify"
	AlignFill         HorizontalAlignment = "fill"
	AlignCenterAcross HorizontalAlignment = "center_across"
	AlignDistributed  HorizontalAlignment = "distributed"
)

func (a HorizontalAlignment) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify, AlignFill, AlignCenterAcross, AlignDistributed:
		return true
	}
	return false
}

type VerticalAlignment string

const (
	VAlignTop         VerticalAlignment = "top"
	VAlignCenter      VerticalAlignment = "center"
	VAlignBottom      VerticalAlignment = "bottom"
	VAlignJustify     VerticalAlignment = "justify"
	VAlignDistributed VerticalAlignment = "distributed"
)

func (a VerticalAlignment) Valid() bool {
	switch a {
	case VAlignTop, VAlignCenter, VAlignBottom, VAlignJustify, VAlignDistributed:
		return true
	}
	return false
}

type BorderStyle string

const (
	BorderNone   BorderStyle = "none"
	BorderThin   BorderStyle = "thin"
	BorderMedium BorderStyle = "medium"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
	BorderThick  BorderStyle = "thick"
	BorderDouble BorderStyle = "double"
	BorderHair   BorderStyle = "hair"
)

func (b BorderStyle) Valid() bool {
	switch b {
	case BorderNone, BorderThin, BorderMedium, BorderDashed, BorderDotted, BorderThick, BorderDouble, BorderHair:
		return true
	}
	return false
}

type FontStyle string

const (
	FontNormal     FontStyle = "normal"
	FontBold       FontStyle = "bold"
	FontItalic     FontStyle = "italic"
	FontBoldItalic FontStyle = "bold_italic"
)

func (f FontStyle) Valid() bool {
	switch f {
	case FontNormal, FontBold, FontItalic, FontBoldItalic:
		return true
	}
	return false
}

func (f FontStyle) Bold() bool   { return f == FontBold || f == FontBoldItalic }
func (f FontStyle) Italic() bool { return f == FontItalic || f == FontBoldItalic }

type FillPattern string

const (
	PatternSolid      FillPattern = "solid"
	PatternDarkGray   FillPattern = "dark_gray"
	PatternMediumGray FillPattern = "medium_gray"
	PatternLightGray  FillPattern = "light_gray"
	PatternGray125    FillPattern = "gray125"
	PatternGray0625   FillPattern = "gray0625"
)

func (p FillPattern) Valid() bool {
	switch p {
	case PatternSolid, PatternDarkGray, PatternMediumGray, PatternLightGray, PatternGray125, PatternGray0625:
		return true
	}
	return false
}

const (
	DefaultFontName  = "微软雅黑"
	DefaultFontSize  = 11
	DefaultFontColor = "#000000"
	DefaultFillColor = "#FFFFFF"
	GeneralFormat    = "General"
)

type Font struct {
	Name      string
	Size      float64
	Color     string
	Style     FontStyle
	Underline bool
}

// DefaultFont returns the font used when a style asks for one without details.
func DefaultFont() Font {
	return Font{Name: DefaultFontName, Size: DefaultFontSize, Color: DefaultFontColor, Style: FontNormal}
}

type Fill struct {
	Color   string
	Pattern FillPattern
}

type Edge struct {
	Style BorderStyle
	Color string
}

// Thin is the common single black edge.
func Thin(color string) *Edge {
	return &Edge{Style: BorderThin, Color: color}
}

type Border struct {
	Left   *Edge
	Right  *Edge
	Top    *Edge
	Bottom *Edge
}

// Box returns a border with the same edge on all four sides.
func Box(edge Edge) *Border {
	l, r, t, b := edge, edge, edge, edge
	return &Border{Left: &l, Right: &r, Top: &t, Bottom: &b}
}

// CellStyle is treated as immutable once built. Share pointers freely; build a
// new value to change anything.
type CellStyle struct {
	Font        *Font
	Fill        *Fill
	Border      *Border
	Horizontal  HorizontalAlignment
	Vertical    VerticalAlignment
	WrapText    bool
	ShrinkToFit bool
	Rotation    int
	Indent      int
	NumFormat   string
}

// Normalized fills the zero-valued enum fields with their defaults and clamps
// rotation to 0..90.
func (s CellStyle) Normalized() CellStyle {
	if s.Horizontal == "" {
		s.Horizontal = AlignLeft
	}
	if s.Vertical == "" {
		s.Vertical = VAlignCenter
	}
	if s.NumFormat == "" {
		s.NumFormat = GeneralFormat
	}
	if s.Rotation < 0 {
		s.Rotation = 0
	}
	if s.Rotation > 90 {
		s.Rotation = 90
	}
	if s.Indent < 0 {
		s.Indent = 0
	}
	if s.Font != nil {
		font := *s.Font
		if font.Style == "" {
			font.Style = FontNormal
		}
		s.Font = &font
	}
	if s.Fill != nil {
		fill := *s.Fill
		if fill.Pattern == "" {
			fill.Pattern = PatternSolid
		}
		s.Fill = &fill
	}
	return s
}

// Validate reports enum values outside the closed sets.
func (s CellStyle) Validate() error {
	n := s.Normalized()
	if !n.Horizontal.Valid() {
		return fmt.Errorf("invalid horizontal alignment %q", s.Horizontal)
	}
	if !n.Vertical.Valid() {
		return fmt.Errorf("invalid vertical alignment %q", s.Vertical)
	}
	if n.Font != nil && !n.Font.Style.Valid() {
		return fmt.Errorf("invalid font style %q", s.Font.Style)
	}
	if n.Fill != nil && !n.Fill.Pattern.Valid() {
		return fmt.Errorf("invalid fill pattern %q", s.Fill.Pattern)
	}
	if n.Border != nil {
		for side, edge := range n.Border.edges() {
			if edge != nil && !edge.Style.Valid() {
				return fmt.Errorf("invalid %s border style %q", side, edge.Style)
			}
		}
	}
	return nil
}

func (b *Border) edges() map[string]*Edge {
	return map[string]*Edge{"left": b.Left, "right": b.Right, "top": b.Top, "bottom": b.Bottom}
}

// Attributes returns the style as a plain attribute tree. Optional parts that
// are unset are left out.
func (s CellStyle) Attributes() map[string]any {
	n := s.Normalized()
	attrs := map[string]any{
		"horizontal":    string(n.Horizontal),
		"vertical":      string(n.Vertical),
		"wrap_text":     n.WrapText,
		"shrink_to_fit": n.ShrinkToFit,
		"rotation":      n.Rotation,
		"indent":        n.Indent,
		"num_format":    n.NumFormat,
	}
	if n.Font != nil {
		attrs["font"] = map[string]any{
			"name":      n.Font.Name,
			"size":      n.Font.Size,
			"color":     n.Font.Color,
			"style":     string(n.Font.Style),
			"underline": n.Font.Underline,
		}
	}
	if n.Fill != nil {
		attrs["fill"] = map[string]any{
			"color":   n.Fill.Color,
			"pattern": string(n.Fill.Pattern),
		}
	}
	if n.Border != nil {
		border := make(map[string]any, 4)
		for side, edge := range n.Border.edges() {
			if edge == nil {
				continue
			}
			border[side] = map[string]any{"style": string(edge.Style), "color": edge.Color}
		}
		attrs["border"] = border
	}
	return attrs
}

// Key is the canonical serialization of the style. Structurally equal styles
// produce equal keys no matter how they were built.
func (s CellStyle) Key() string {
	// encoding/json writes map keys in sorted order.
	raw, err := json.Marshal(s.Attributes())
	if err != nil {
		return fmt.Sprintf("%#v", s.Attributes())
	}
	return string(raw)
}
