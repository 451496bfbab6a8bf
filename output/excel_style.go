package output

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"gosheet/style"
)

var borderStyles = map[style.BorderStyle]int{
	style.BorderNone:   0,
	style.BorderThin:   1,
	style.BorderMedium: 2,
	style.BorderDashed: 3,
	style.BorderDotted: 4,
	style.BorderThick:  5,
	style.BorderDouble: 6,
	style.BorderHair:   7,
}

var fillPatterns = map[style.FillPattern]int{
	style.PatternSolid:      1,
	style.PatternMediumGray: 2,
	style.PatternDarkGray:   3,
	style.PatternLightGray:  4,
	style.PatternGray125:    17,
	style.PatternGray0625:   18,
}

var horizontalAlignments = map[style.HorizontalAlignment]string{
	style.AlignLeft:         "left",
	style.AlignCenter:       "center",
	style.AlignRight:        "right",
	style.AlignJustify:      "justify",
	style.AlignFill:         "fill",
	style.AlignCenterAcross: "centerContinuous",
	style.AlignDistributed:  "distributed",
}

// excelStyle maps a cell style onto excelize's style vocabulary.
func excelStyle(s *style.CellStyle) *excelize.Style {
	n := s.Normalized()
	out := &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal:   horizontalAlignments[n.Horizontal],
			Vertical:     string(n.Vertical),
			WrapText:     n.WrapText,
			ShrinkToFit:  n.ShrinkToFit,
			TextRotation: n.Rotation,
			Indent:       n.Indent,
		},
	}

	if n.Font != nil {
		font := &excelize.Font{
			Bold:   n.Font.Style.Bold(),
			Italic: n.Font.Style.Italic(),
			Family: n.Font.Name,
			Size:   n.Font.Size,
			Color:  hexColor(n.Font.Color),
		}
		if n.Font.Underline {
			font.Underline = "single"
		}
		out.Font = font
	}

	if n.Fill != nil && n.Fill.Color != "" {
		out.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: fillPatterns[n.Fill.Pattern],
			Color:   []string{hexColor(n.Fill.Color)},
		}
	}

	if n.Border != nil {
		for _, side := range []struct {
			name string
			edge *style.Edge
		}{
			{"left", n.Border.Left},
			{"right", n.Border.Right},
			{"top", n.Border.Top},
			{"bottom", n.Border.Bottom},
		} {
			if side.edge == nil || side.edge.Style == style.BorderNone {
				continue
			}
			out.Border = append(out.Border, excelize.Border{
				Type:  side.name,
				Color: hexColor(side.edge.Color),
				Style: borderStyles[side.edge.Style],
			})
		}
	}

	if n.NumFormat != style.GeneralFormat {
		numFmt := n.NumFormat
		out.CustomNumFmt = &numFmt
	}
	return out
}

func hexColor(color string) string {
	return strings.TrimPrefix(strings.TrimSpace(color), "#")
}
