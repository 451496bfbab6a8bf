package output

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gosheet/dataset"
	"gosheet/style"
	"gosheet/table"
)

const Version = "1.0"

var (
	ErrSheetExists   = errors.New("sheet already exists")
	ErrSheetNotFound = errors.New("sheet not found")
	ErrSheetName     = errors.New("invalid sheet name")
)

const maxSheetNameLength = 31

type Metadata struct {
	Title      string
	Version    string
	SheetCount int
	TotalRows  int
	CreatedAt  time.Time
	ModifiedAt time.Time
}

type SheetInfo struct {
	Name        string
	Rows        int
	Columns     int
	HeaderRows  int
	FreezePane  string
	AutoFilter  bool
	DataColumns []string
}

// Document is a set of named sheets, each a table config plus its data,
// rendered together into one workbook. Sheets keep insertion order.
type Document struct {
	mu sync.Mutex

	title   string
	order   []string
	configs map[string]*table.Config
	data    map[string]*dataset.Dataset

	logger   zerolog.Logger
	fallback Writer
	styles   *styleCache

	createdAt  time.Time
	modifiedAt time.Time
}

type DocumentOption func(*Document)

func WithLogger(logger zerolog.Logger) DocumentOption {
	return func(d *Document) { d.logger = logger }
}

// WithFallbackWriter replaces the reduced-fidelity writer used when the
// styled render fails.
func WithFallbackWriter(w Writer) DocumentOption {
	return func(d *Document) { d.fallback = w }
}

func NewDocument(title string, opts ...DocumentOption) *Document {
	now := time.Now()
	d := &Document{
		title:      title,
		configs:    make(map[string]*table.Config),
		data:       make(map[string]*dataset.Dataset),
		logger:     log.Logger,
		fallback:   &XLSXWriter{},
		createdAt:  now,
		modifiedAt: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewSharedDocument creates one sheet per name, each with its own copy of cfg
// and no data.
func NewSharedDocument(title string, cfg *table.Config, names []string, opts ...DocumentOption) (*Document, error) {
	d := NewDocument(title, opts...)
	for _, name := range names {
		if err := d.AddSheet(name, cfg.Copy(name), nil); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Document) Title() string { return d.title }

// AddSheet registers a sheet. data may be nil; otherwise it must contain every
// column of cfg and is reduced to exactly those columns.
func (d *Document) AddSheet(name string, cfg *table.Config, data *dataset.Dataset) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := validateSheetName(name); err != nil {
		return err
	}
	for _, existing := range d.order {
		if strings.EqualFold(existing, name) {
			return fmt.Errorf("%w: %q", ErrSheetExists, name)
		}
	}
	if cfg == nil {
		return fmt.Errorf("sheet %q: table config is required", name)
	}
	normalized, err := normalize(cfg, data)
	if err != nil {
		return fmt.Errorf("sheet %q: %w", name, err)
	}

	d.order = append(d.order, name)
	d.configs[name] = cfg
	d.data[name] = normalized
	d.touch()
	return nil
}

func (d *Document) RemoveSheet(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.configs[name]; !ok {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	delete(d.configs, name)
	delete(d.data, name)
	for i, existing := range d.order {
		if existing == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.touch()
	return nil
}

func (d *Document) UpdateSheetData(name string, data *dataset.Dataset) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg, ok := d.configs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	normalized, err := normalize(cfg, data)
	if err != nil {
		return fmt.Errorf("sheet %q: %w", name, err)
	}
	d.data[name] = normalized
	d.touch()
	return nil
}

// UpdateSheetConfig swaps the config and re-normalizes the stored data
// against it.
func (d *Document) UpdateSheetConfig(name string, cfg *table.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, ok := d.data[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	if cfg == nil {
		return fmt.Errorf("sheet %q: table config is required", name)
	}
	normalized, err := normalize(cfg, current)
	if err != nil {
		return fmt.Errorf("sheet %q: %w", name, err)
	}
	d.configs[name] = cfg
	d.data[name] = normalized
	d.touch()
	return nil
}

func (d *Document) SetSheetColumnStyle(name, column string, s *style.CellStyle, width float64) error {
	return d.withConfig(name, func(cfg *table.Config) error {
		if !contains(cfg.Columns, column) {
			return fmt.Errorf("sheet %q has no column %q", name, column)
		}
		cs := cfg.ColumnStyles[column]
		cs.Column = column
		cs.DefaultStyle = s
		if width > 0 {
			cs.Width = width
		}
		cfg.ColumnStyles[column] = cs
		return nil
	})
}

func (d *Document) SetSheetRowStyle(name string, row int, s *style.CellStyle, height float64) error {
	return d.withConfig(name, func(cfg *table.Config) error {
		if row < 0 {
			return fmt.Errorf("row index %d must be >= 0", row)
		}
		cfg.RowStyles[row] = table.RowStyle{Row: row, Style: s, Height: height}
		return nil
	})
}

func (d *Document) SetSheetCellStyle(name string, row, col int, s *style.CellStyle) error {
	return d.withConfig(name, func(cfg *table.Config) error {
		if row < 0 || col < 0 || col >= len(cfg.Columns) {
			return fmt.Errorf("cell (%d,%d) is outside sheet %q", row, col, name)
		}
		ref := table.CellRef{Row: row, Col: col}
		cfg.CellStyles[ref] = table.CellStyle{Ref: ref, Style: s}
		return nil
	})
}

// SetColumnStyleForAllSheets applies the style to every sheet that has the
// column and returns how many sheets were changed.
func (d *Document) SetColumnStyleForAllSheets(column string, s *style.CellStyle, width float64) int {
	changed := 0
	for _, name := range d.ListSheets() {
		if err := d.SetSheetColumnStyle(name, column, s, width); err == nil {
			changed++
		}
	}
	return changed
}

func (d *Document) withConfig(name string, fn func(*table.Config) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg, ok := d.configs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	if err := fn(cfg); err != nil {
		return err
	}
	d.touch()
	return nil
}

func (d *Document) ListSheets() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.order...)
}

func (d *Document) SheetInfo(name string) (SheetInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg, ok := d.configs[name]
	if !ok {
		return SheetInfo{}, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return SheetInfo{
		Name:        name,
		Rows:        d.data[name].Len(),
		Columns:     len(cfg.Columns),
		HeaderRows:  cfg.Header.RowCount(),
		FreezePane:  cfg.FreezePane,
		AutoFilter:  cfg.AutoFilter,
		DataColumns: append([]string(nil), cfg.Columns...),
	}, nil
}

// SheetData returns a copy of the stored data.
func (d *Document) SheetData(name string) (*dataset.Dataset, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, ok := d.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return data.Clone(), nil
}

func (d *Document) SheetConfig(name string) (*table.Config, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg, ok := d.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return cfg, nil
}

func (d *Document) Metadata() Metadata {
	d.mu.Lock()
	defer d.mu.Unlock()
	rows := 0
	for _, name := range d.order {
		rows += d.data[name].Len()
	}
	return Metadata{
		Title:      d.title,
		Version:    Version,
		SheetCount: len(d.order),
		TotalRows:  rows,
		CreatedAt:  d.createdAt,
		ModifiedAt: d.modifiedAt,
	}
}

func (d *Document) touch() { d.modifiedAt = time.Now() }

// validateSheetName applies the workbook rules: 1 to 31 UTF-16 units, no
// leading or trailing apostrophe and none of : \ / ? * [ ].
func validateSheetName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is required", ErrSheetName)
	case len(utf16.Encode([]rune(name))) > maxSheetNameLength:
		return fmt.Errorf("%w %q: longer than %d characters", ErrSheetName, name, maxSheetNameLength)
	case strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'"):
		return fmt.Errorf("%w %q: starts or ends with an apostrophe", ErrSheetName, name)
	case strings.ContainsAny(name, `:\/?*[]`):
		return fmt.Errorf("%w %q: contains one of :\\/?*[]", ErrSheetName, name)
	}
	return nil
}

func normalize(cfg *table.Config, data *dataset.Dataset) (*dataset.Dataset, error) {
	if data == nil {
		return dataset.Empty(cfg.Columns), nil
	}
	return data.Select(cfg.Columns)
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
