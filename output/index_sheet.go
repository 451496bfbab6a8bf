package output

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"gosheet/progress"
	"gosheet/style"
)

const indexSheetName = "Index"

var (
	indexHeaders = []string{"No.", "Sheet", "Rows", "Columns", "Remark"}
	indexWidths  = []float64{8, 20, 12, 12, 30}
)

func indexTitleStyle() *style.CellStyle {
	font := style.DefaultFont()
	font.Size = 14
	font.Style = style.FontBold
	return &style.CellStyle{Font: &font, Horizontal: style.AlignCenter}
}

func indexLinkStyle() *style.CellStyle {
	font := style.DefaultFont()
	font.Color = "#0000FF"
	font.Underline = true
	return &style.CellStyle{Font: &font}
}

// uniqueSheetName returns base, or base with the first free numeric suffix
// when a data sheet already uses it. Workbook sheet names ignore case.
func uniqueSheetName(base string, jobs []sheetJob) string {
	taken := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		taken[strings.ToLower(job.name)] = true
	}
	name := base
	for i := 1; taken[strings.ToLower(name)]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	return name
}

// sheetLink is the internal hyperlink target of a sheet's first cell.
func sheetLink(name string) string {
	return fmt.Sprintf("'%s'!A1", strings.ReplaceAll(name, "'", "''"))
}

// writeIndexSheet appends a sheet listing every data sheet with a link to it.
func (d *Document) writeIndexSheet(f *excelize.File, jobs []sheetJob, pm *progress.Manager) error {
	pm.Update(95, "writing index sheet")

	sheet := uniqueSheetName(indexSheetName, jobs)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create index sheet: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("Sheet index - %s", d.title)); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "E1"); err != nil {
		return fmt.Errorf("merge index title: %w", err)
	}
	if err := d.applyStyle(f, sheet, "A1", "E1", indexTitleStyle()); err != nil {
		return err
	}

	for col, header := range indexHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set index header %s: %w", cell, err)
		}
	}
	if err := d.applyStyle(f, sheet, "A3", "E3", style.Header(style.HeaderOptions{FontStyle: style.FontBold})); err != nil {
		return err
	}

	for i, job := range jobs {
		row := i + 4
		remark := fmt.Sprintf("header rows: %d", job.cfg.Header.RowCount())
		if job.cfg.FreezePane != "" {
			remark += ", freeze: " + job.cfg.FreezePane
		}
		values := []any{i + 1, job.name, job.data.Len(), len(job.cfg.Columns), remark}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set index value %s: %w", cell, err)
			}
		}

		link := fmt.Sprintf("B%d", row)
		if err := f.SetCellHyperLink(sheet, link, sheetLink(job.name), "Location"); err != nil {
			return fmt.Errorf("link %s: %w", job.name, err)
		}
		if err := d.applyStyle(f, sheet, link, link, indexLinkStyle()); err != nil {
			return err
		}
	}

	for col, width := range indexWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set index column %s width: %w", name, err)
		}
	}
	return nil
}

func (d *Document) applyStyle(f *excelize.File, sheet, from, to string, s *style.CellStyle) error {
	id, err := d.styles.id(s)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, id)
}
