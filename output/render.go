package output

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"gosheet/dataset"
	"gosheet/progress"
	"gosheet/style"
	"gosheet/table"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusFallback  Status = "fallback"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Result describes one render. Path is empty unless a file was written.
type Result struct {
	Status  Status
	Path    string
	Sheets  int
	Rows    int
	Elapsed time.Duration
	// Cause is the primary failure behind a fallback or failed render.
	Cause error
}

// OK reports whether a file was produced.
func (r *Result) OK() bool {
	return r.Status == StatusCompleted || r.Status == StatusFallback
}

type RenderOptions struct {
	IncludeIndexSheet bool
	// Progress receives overall progress; nil logs it instead.
	Progress progress.Callback
}

const (
	minAutoWidth     = 12
	progressInterval = 10
)

var errCancelled = errors.New("render cancelled")

type sheetJob struct {
	name string
	cfg  *table.Config
	data *dataset.Dataset
}

// Render writes the document to path. It always returns a Result; the error
// is non-nil only when both the styled render and the raw fallback failed.
// Cancellation through the progress callback or ctx yields StatusCancelled,
// leaves no new file behind and is not an error.
func (d *Document) Render(ctx context.Context, path string, opts RenderOptions) (*Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	started := time.Now()
	pm := progress.New(opts.Progress, d.logger)
	defer pm.Cleanup()

	jobs := d.jobs()
	result := &Result{Sheets: len(jobs)}
	for _, job := range jobs {
		result.Rows += job.data.Len()
	}
	finish := func(status Status) *Result {
		result.Status = status
		result.Elapsed = time.Since(started)
		d.logger.Info().
			Str("status", string(status)).
			Str("path", result.Path).
			Int("sheets", result.Sheets).
			Dur("elapsed", result.Elapsed).
			Msg("render finished")
		return result
	}

	if !pm.StartExport(len(jobs)) || ctx.Err() != nil {
		return finish(StatusCancelled), nil
	}

	err := d.renderStyled(ctx, path, jobs, opts, pm)
	switch {
	case errors.Is(err, errCancelled):
		return finish(StatusCancelled), nil
	case err == nil:
		pm.Finish()
		result.Path = path
		return finish(StatusCompleted), nil
	}

	pm.Error(err)
	result.Cause = err
	d.logger.Error().Err(err).Str("path", path).Msg("styled render failed, writing raw fallback")
	if fbErr := d.fallback.Write(path, d.rawSheets()); fbErr != nil {
		return finish(StatusFailed), errors.Join(err, fmt.Errorf("fallback writer: %w", fbErr))
	}
	pm.Finish()
	result.Path = path
	return finish(StatusFallback), nil
}

func (d *Document) jobs() []sheetJob {
	jobs := make([]sheetJob, 0, len(d.order))
	for _, name := range d.order {
		jobs = append(jobs, sheetJob{name: name, cfg: d.configs[name], data: d.data[name]})
	}
	return jobs
}

// renderStyled runs the full-fidelity excelize pipeline. Panics are turned
// into errors so they reach the fallback.
func (d *Document) renderStyled(ctx context.Context, path string, jobs []sheetJob, opts RenderOptions, pm *progress.Manager) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()

	f := excelize.NewFile()
	defer f.Close()
	d.styles = newStyleCache(f)
	defaultSheet := f.GetSheetName(0)

	keepDefault := false
	for i, job := range jobs {
		if cancelled(ctx, pm) || !pm.StartSheet(job.name, i+1) {
			return errCancelled
		}
		if job.name == defaultSheet {
			keepDefault = true
		}
		if err := d.renderSheet(ctx, f, job, pm); err != nil {
			return err
		}
		if pm.Cancelled() {
			return errCancelled
		}
	}

	if opts.IncludeIndexSheet {
		if err := d.writeIndexSheet(f, jobs, pm); err != nil {
			d.logger.Warn().Err(err).Msg("index sheet skipped")
		}
	}
	if len(jobs) > 0 && !keepDefault {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("remove default sheet: %w", err)
		}
	}
	if len(jobs) > 0 {
		if idx, err := f.GetSheetIndex(jobs[0].name); err == nil && idx >= 0 {
			f.SetActiveSheet(idx)
		}
	}
	if cancelled(ctx, pm) {
		return errCancelled
	}

	return saveAtomic(path, func(tmp string) error {
		if err := f.SaveAs(tmp); err != nil {
			return fmt.Errorf("save excel output %s: %w", path, err)
		}
		return nil
	})
}

func cancelled(ctx context.Context, pm *progress.Manager) bool {
	if ctx.Err() != nil {
		pm.Cancel()
	}
	return pm.Cancelled()
}

// renderSheet writes one sheet. A failure in settings, header or data layout
// recreates the sheet and retries once without data.
func (d *Document) renderSheet(ctx context.Context, f *excelize.File, job sheetJob, pm *progress.Manager) error {
	log := d.logger.With().Str("sheet", job.name).Logger()

	pm.UpdateSheetProgress(5, "preprocessing data")
	data := job.data.Scrub()

	if _, err := f.NewSheet(job.name); err != nil {
		return fmt.Errorf("create sheet %s: %w", job.name, err)
	}

	err := d.layoutSheet(ctx, f, job.name, job.cfg, data, pm, log)
	if err == nil || errors.Is(err, errCancelled) {
		return err
	}

	log.Warn().Err(err).Msg("sheet formatting failed, retrying without data")
	if delErr := f.DeleteSheet(job.name); delErr != nil {
		return fmt.Errorf("sheet %s: %w", job.name, errors.Join(err, delErr))
	}
	if _, newErr := f.NewSheet(job.name); newErr != nil {
		return fmt.Errorf("sheet %s: %w", job.name, errors.Join(err, newErr))
	}
	if retryErr := d.layoutSheet(ctx, f, job.name, job.cfg, dataset.Empty(job.cfg.Columns), pm, log); retryErr != nil {
		return fmt.Errorf("sheet %s: %w", job.name, retryErr)
	}
	return nil
}

func (d *Document) layoutSheet(ctx context.Context, f *excelize.File, sheet string, cfg *table.Config, data *dataset.Dataset, pm *progress.Manager, log zerolog.Logger) error {
	pm.UpdateSheetProgress(10, "applying table settings")
	if err := applySettings(f, sheet, cfg); err != nil {
		return err
	}
	pm.UpdateSheetProgress(30, "writing header")
	if err := d.writeHeader(f, sheet, cfg); err != nil {
		return err
	}
	return d.writeData(ctx, f, sheet, cfg, data, pm, log)
}

func applySettings(f *excelize.File, sheet string, cfg *table.Config) error {
	zoom := float64(cfg.Zoom)
	gridlines := cfg.ShowGridlines
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{ZoomScale: &zoom, ShowGridLines: &gridlines}); err != nil {
		return fmt.Errorf("set sheet view: %w", err)
	}

	if cfg.FreezePane == "" {
		return nil
	}
	col, row, err := excelize.CellNameToCoordinates(cfg.FreezePane)
	if err != nil {
		return fmt.Errorf("freeze pane %q: %w", cfg.FreezePane, err)
	}
	xSplit, ySplit := col-1, row-1
	if xSplit == 0 && ySplit == 0 {
		return nil
	}
	pane := "bottomRight"
	switch {
	case xSplit == 0:
		pane = "bottomLeft"
	case ySplit == 0:
		pane = "topRight"
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      xSplit,
		YSplit:      ySplit,
		TopLeftCell: cfg.FreezePane,
		ActivePane:  pane,
	}); err != nil {
		return fmt.Errorf("freeze panes at %s: %w", cfg.FreezePane, err)
	}
	return nil
}

func (d *Document) writeHeader(f *excelize.File, sheet string, cfg *table.Config) error {
	header := cfg.Header
	for r, row := range header.Rows() {
		if err := f.SetRowHeight(sheet, r+1, row.Height); err != nil {
			return fmt.Errorf("set header row %d height: %w", r+1, err)
		}
	}

	grid := header.Grid()
	for r := range grid {
		for c, cell := range grid[r] {
			if cell == nil || !cell.IsAnchor(r, c) {
				continue
			}
			anchor, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, anchor, cell.Item.Text); err != nil {
				return fmt.Errorf("set header %s: %w", anchor, err)
			}

			sr, sc, er, ec := header.MergeRange(cell)
			last, _ := excelize.CoordinatesToCellName(ec+1, er+1)
			if s := cfg.HeaderStyleFor(cell.Item, c); s != nil {
				id, err := d.styles.id(s)
				if err != nil {
					return fmt.Errorf("header %s: %w", anchor, err)
				}
				if err := f.SetCellStyle(sheet, anchor, last, id); err != nil {
					return fmt.Errorf("style header %s: %w", anchor, err)
				}
			}
			if header.Merge() && (er > sr || ec > sc) {
				if err := f.MergeCell(sheet, anchor, last); err != nil {
					return fmt.Errorf("merge header %s:%s: %w", anchor, last, err)
				}
			}
		}
	}
	return nil
}

func (d *Document) writeData(ctx context.Context, f *excelize.File, sheet string, cfg *table.Config, data *dataset.Dataset, pm *progress.Manager, log zerolog.Logger) error {
	pm.UpdateSheetProgress(35, "setting column widths")
	if err := setColumnWidths(f, sheet, cfg, data); err != nil {
		return err
	}

	pm.UpdateSheetProgress(40, "checking data rows")
	if isHeaderEcho(data, cfg.Columns) {
		// Heuristic: a first row equal to the column ids is taken for a header
		// that slipped into the data. Legitimate rows with those exact values
		// are dropped too.
		log.Info().Msg("dropping first data row that repeats the column ids")
		data = data.Drop(0)
	}

	headerRows := cfg.Header.RowCount()
	total := data.Len()
	for i := 0; i < total; i++ {
		excelRow := headerRows + 1 + i
		if rs, ok := cfg.RowStyle(i); ok && rs.Height > 0 {
			if err := f.SetRowHeight(sheet, excelRow, rs.Height); err != nil {
				log.Warn().Err(err).Int("row", excelRow).Msg("row height not applied")
			}
		}
		for c, column := range cfg.Columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, excelRow)
			d.writeCell(f, sheet, cell, data.Value(i, column, c), cfg.DataStyleFor(i, c), log)
		}

		if (i+1)%progressInterval == 0 || i == total-1 {
			if cancelled(ctx, pm) {
				return errCancelled
			}
			percent := min(40+(i+1)*50/total, 90)
			if !pm.UpdateSheetProgress(percent, fmt.Sprintf("writing row %d/%d", i+1, total)) {
				return errCancelled
			}
		}
	}

	if cfg.AutoFilter && total > 0 {
		pm.UpdateSheetProgress(92, "applying auto filter")
		first, _ := excelize.CoordinatesToCellName(1, headerRows)
		last, _ := excelize.CoordinatesToCellName(len(cfg.Columns), headerRows+total)
		if err := f.AutoFilter(sheet, first+":"+last, nil); err != nil {
			log.Warn().Err(err).Msg("auto filter not applied")
		}
	}
	pm.UpdateSheetProgress(95, "sheet done")
	return nil
}

// writeCell never fails: a value or style the workbook rejects leaves the
// cell empty.
func (d *Document) writeCell(f *excelize.File, sheet, cell string, value any, s *style.CellStyle, log zerolog.Logger) {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		log.Warn().Err(err).Str("cell", cell).Msg("cell value not written")
		_ = f.SetCellValue(sheet, cell, "")
	}
	if s == nil {
		return
	}
	id, err := d.styles.id(s)
	if err == nil {
		err = f.SetCellStyle(sheet, cell, cell, id)
	}
	if err != nil {
		log.Warn().Err(err).Str("cell", cell).Msg("cell style not applied")
		_ = f.SetCellValue(sheet, cell, "")
	}
}

func setColumnWidths(f *excelize.File, sheet string, cfg *table.Config, data *dataset.Dataset) error {
	for c, column := range cfg.Columns {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		cs, _ := cfg.ColumnStyle(column)
		width := cs.Width
		if width <= 0 {
			width = float64(autoWidth(column, c, data))
		}
		width = min(width, excelize.MaxColumnWidth)
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set column %s width %.0f: %w", column, width, err)
		}
		if cs.Hidden {
			if err := f.SetColVisible(sheet, name, false); err != nil {
				return fmt.Errorf("hide column %s: %w", column, err)
			}
		}
	}
	return nil
}

// autoWidth is max(len(column id), 12), widened to the longest value + 2.
// setColumnWidths caps the result at the workbook limit.
func autoWidth(column string, index int, data *dataset.Dataset) int {
	width := max(utf8.RuneCountInString(column), minAutoWidth)
	longest := 0
	for i := 0; i < data.Len(); i++ {
		longest = max(longest, utf8.RuneCountInString(fmt.Sprint(data.Value(i, column, index))))
	}
	if data.Len() > 0 {
		width = max(width, longest+2)
	}
	return width
}

func isHeaderEcho(data *dataset.Dataset, columns []string) bool {
	if data.Empty() {
		return false
	}
	row := data.Row(0)
	if len(row) != len(columns) {
		return false
	}
	for i, column := range columns {
		if fmt.Sprint(row[i]) != column {
			return false
		}
	}
	return true
}
