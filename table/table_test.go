package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosheet/style"
)

func twoRowHeader(t *testing.T) *HeaderConfig {
	t.Helper()

	h, err := NewHeaderConfig([]HeaderRow{
		{Items: []HeaderItem{Item("Group").Span(1, 2), Item("C").Span(2, 1)}},
		{Items: []HeaderItem{Item("A"), Item("B")}},
	})
	require.NoError(t, err)
	return h
}

func TestNewHeaderConfig_RejectsUnevenRows(t *testing.T) {
	t.Parallel()

	_, err := NewHeaderConfig([]HeaderRow{
		{Items: []HeaderItem{Item("A"), Item("B")}},
		{Items: []HeaderItem{Item("C")}},
	})
	require.ErrorIs(t, err, ErrHeaderWidth)
	assert.Contains(t, err.Error(), "row 2 spans 1 columns, row 1 spans 2")

	_, err = NewHeaderConfig(nil)
	assert.ErrorIs(t, err, ErrNoHeaderRows)
}

func TestNewHeaderConfig_ClampsSpansAndDefaultsHeight(t *testing.T) {
	t.Parallel()

	h, err := NewHeaderConfig([]HeaderRow{{Items: []HeaderItem{{Text: "x", RowSpan: 0, ColSpan: -3}}}})
	require.NoError(t, err)

	item := h.Rows()[0].Items[0]
	assert.Equal(t, 1, item.RowSpan)
	assert.Equal(t, 1, item.ColSpan)
	assert.Equal(t, float64(DefaultRowHeight), h.Rows()[0].Height)
	assert.True(t, h.Merge())
}

func TestGrid_FirstOwnerWins(t *testing.T) {
	t.Parallel()

	h := twoRowHeader(t)
	grid := h.Grid()
	require.Len(t, grid, 2)
	require.Len(t, grid[0], 3)

	assert.Equal(t, "Group", grid[0][1].Item.Text)
	assert.True(t, grid[0][0].IsAnchor(0, 0))
	assert.False(t, grid[0][1].IsAnchor(0, 1))

	// C spans down into row 2, so the second row's items take columns 0 and 1.
	assert.Equal(t, "C", grid[1][2].Item.Text)
	assert.Equal(t, "A", grid[1][0].Item.Text)
	assert.Equal(t, "B", grid[1][1].Item.Text)

	sr, sc, er, ec := h.MergeRange(grid[0][2])
	assert.Equal(t, []int{0, 2, 1, 2}, []int{sr, sc, er, ec})
}

func TestGrid_ClipsSpansPastGrid(t *testing.T) {
	t.Parallel()

	h, err := NewHeaderConfig([]HeaderRow{{Items: []HeaderItem{Item("wide").Span(3, 2)}}})
	require.NoError(t, err)

	grid := h.Grid()
	require.Len(t, grid, 1)
	sr, sc, er, ec := h.MergeRange(grid[0][0])
	assert.Equal(t, []int{0, 0, 0, 1}, []int{sr, sc, er, ec})
}

func TestNew_ValidatesColumns(t *testing.T) {
	t.Parallel()

	h := twoRowHeader(t)

	_, err := New("t", h, []string{"a", "b"})
	require.ErrorIs(t, err, ErrColumnCount)

	_, err = New("t", h, []string{"a", "b", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = New("t", h, []string{"a", "b", "c"}, WithFreezePane("not a cell"))
	require.Error(t, err)

	_, err = New("t", h, []string{"a", "b", "c"}, WithZoom(500))
	require.Error(t, err)

	cfg, err := New("t", h, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.True(t, cfg.AutoFilter)
	assert.True(t, cfg.ShowGridlines)
	assert.Equal(t, DefaultZoom, cfg.Zoom)
}

func TestHeaderStyleFor_Precedence(t *testing.T) {
	t.Parallel()

	overall := style.Header(style.HeaderOptions{})
	own := style.Highlight()
	columnHeader := style.Header(style.HeaderOptions{FillColor: "#00FF00"})

	h, err := NewHeaderConfig([]HeaderRow{
		{Items: []HeaderItem{Item("wide").Span(1, 2), Item("own").Styled(own)}},
		{Items: []HeaderItem{Item("a"), Item("b"), Item("c")}},
	}, WithOverallStyle(overall))
	require.NoError(t, err)

	cfg, err := New("t", h, []string{"a", "b", "c"}, WithColumnStyle(ColumnStyle{Column: "a", HeaderStyle: columnHeader}))
	require.NoError(t, err)

	rows := h.Rows()
	assert.Same(t, overall, cfg.HeaderStyleFor(&rows[0].Items[0], 0), "multi-column item ignores column header style")
	assert.Same(t, own, cfg.HeaderStyleFor(&rows[0].Items[1], 2))
	assert.Same(t, columnHeader, cfg.HeaderStyleFor(&rows[1].Items[0], 0))
	assert.Same(t, overall, cfg.HeaderStyleFor(&rows[1].Items[1], 1))
}

func TestDataStyleFor_Precedence(t *testing.T) {
	t.Parallel()

	colStyle := style.Number("")
	rowStyle := style.Data("", 0, false, 0)
	cellStyle := style.Highlight()

	cfg, err := New("t", twoRowHeader(t), []string{"a", "b", "c"},
		WithColumnStyle(ColumnStyle{Column: "b", DefaultStyle: colStyle}),
		WithRowStyle(RowStyle{Row: 1, Style: rowStyle}),
		WithCellStyle(1, 1, cellStyle),
	)
	require.NoError(t, err)

	assert.Same(t, colStyle, cfg.DataStyleFor(0, 1))
	assert.Same(t, rowStyle, cfg.DataStyleFor(1, 0))
	assert.Same(t, cellStyle, cfg.DataStyleFor(1, 1))
	assert.Nil(t, cfg.DataStyleFor(0, 0))
}

func TestCopy_IsIndependent(t *testing.T) {
	t.Parallel()

	cfg, err := New("orig", twoRowHeader(t), []string{"a", "b", "c"}, WithColumnStyle(ColumnStyle{Column: "a", Width: 10}))
	require.NoError(t, err)

	cp := cfg.Copy("copy")
	cp.ColumnStyles["b"] = ColumnStyle{Column: "b", Width: 20}
	cp.Columns[0] = "z"

	assert.Equal(t, "copy", cp.Name)
	assert.Same(t, cfg.Header, cp.Header)
	assert.Len(t, cfg.ColumnStyles, 1)
	assert.Equal(t, "a", cfg.Columns[0])
	assert.Equal(t, "orig_copy", cfg.Copy("").Name)
}

const sampleTemplate = `
name: servers
freeze_pane: B3
zoom: 120
auto_filter: false
header:
  style:
    font: {size: 12, style: bold}
    fill: {color: "#DDDDDD"}
    border: {all: {style: thin}}
    horizontal: center
  rows:
    - height: 30
      items:
        - {text: Host, col_span: 2}
        - {text: Port, row_span: 2}
    - items:
        - {text: Name}
        - {text: IP}
columns:
  - id: name
    width: 20
  - id: ip
    header_style:
      fill: {color: "#FF0000"}
  - id: port
    hidden: true
rows:
  - {row: 0, height: 40}
cells:
  - {row: 1, col: 2, style: {num_format: "0.00"}}
`

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	cfg, err := ParseTemplate([]byte(sampleTemplate))
	require.NoError(t, err)

	assert.Equal(t, "servers", cfg.Name)
	assert.Equal(t, "B3", cfg.FreezePane)
	assert.Equal(t, 120, cfg.Zoom)
	assert.False(t, cfg.AutoFilter)
	assert.True(t, cfg.ShowGridlines)
	assert.Equal(t, []string{"name", "ip", "port"}, cfg.Columns)
	assert.Equal(t, 2, cfg.Header.RowCount())
	assert.Equal(t, 30.0, cfg.Header.Rows()[0].Height)

	overall := cfg.Header.OverallStyle()
	require.NotNil(t, overall)
	assert.True(t, overall.Font.Style.Bold())
	assert.Equal(t, style.BorderThin, overall.Border.Top.Style)

	ip, ok := cfg.ColumnStyle("ip")
	require.True(t, ok)
	assert.Equal(t, "#FF0000", ip.HeaderStyle.Fill.Color)
	port, _ := cfg.ColumnStyle("port")
	assert.True(t, port.Hidden)

	row, ok := cfg.RowStyle(0)
	require.True(t, ok)
	assert.Equal(t, 40.0, row.Height)
	assert.Equal(t, "0.00", cfg.DataStyleFor(1, 2).NumFormat)
}

func TestParseTemplate_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bad alignment": "name: x\nheader:\n  rows:\n    - items: [{text: a, style: {horizontal: middle}}]\ncolumns: [{id: a}]\n",
		"no columns":    "name: x\nheader:\n  rows:\n    - items: [{text: a}]\n",
		"bad color":     "name: x\nheader:\n  rows:\n    - items: [{text: a, style: {fill: {color: red}}}]\ncolumns: [{id: a}]\n",
		"width":         "name: x\nheader:\n  rows:\n    - items: [{text: a}, {text: b}]\ncolumns: [{id: a}]\n",
		"yaml":          "name: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTemplate([]byte(raw))
			assert.Error(t, err)
		})
	}
}
