// Package dataset holds the rectangular row data written under a table
// header. Columns are ordered; rows are positional.
package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"
)

// MissingColumnsError lists declared columns absent from supplied data.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("data is missing columns: %s", strings.Join(e.Columns, ", "))
}

type Dataset struct {
	columns []string
	rows    [][]any
}

// New copies rows; short rows are padded with nil, long rows truncated.
func New(columns []string, rows [][]any) *Dataset {
	d := Empty(columns)
	d.rows = make([][]any, len(rows))
	for i, row := range rows {
		out := make([]any, len(columns))
		copy(out, row)
		d.rows[i] = out
	}
	return d
}

func Empty(columns []string) *Dataset {
	return &Dataset{columns: append([]string(nil), columns...)}
}

// FromRecords builds a dataset from keyed records. Columns are the union of
// record keys in first-seen order, keys within a record taken sorted.
func FromRecords(records []map[string]any) *Dataset {
	var columns []string
	index := make(map[string]int)
	for _, record := range records {
		keys := make([]string, 0, len(record))
		for key := range record {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if _, ok := index[key]; !ok {
				index[key] = len(columns)
				columns = append(columns, key)
			}
		}
	}

	rows := make([][]any, len(records))
	for i, record := range records {
		row := make([]any, len(columns))
		for key, value := range record {
			row[index[key]] = value
		}
		rows[i] = row
	}
	return &Dataset{columns: columns, rows: rows}
}

func (d *Dataset) Columns() []string { return append([]string(nil), d.columns...) }

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

func (d *Dataset) Empty() bool { return d.Len() == 0 }

// Row returns the stored row. Callers must not modify it.
func (d *Dataset) Row(i int) []any { return d.rows[i] }

func (d *Dataset) ColumnIndex(name string) int {
	for i, column := range d.columns {
		if column == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at (row, column). An unknown column falls back to
// positional access at fallback.
func (d *Dataset) Value(row int, column string, fallback int) any {
	idx := d.ColumnIndex(column)
	if idx < 0 {
		idx = fallback
	}
	r := d.rows[row]
	if idx < 0 || idx >= len(r) {
		return nil
	}
	return r[idx]
}

// Select reorders the dataset to columns, dropping any extra columns. An empty
// dataset always selects cleanly to an empty dataset with the given columns.
func (d *Dataset) Select(columns []string) (*Dataset, error) {
	if d.Empty() {
		return Empty(columns), nil
	}

	positions := make([]int, len(columns))
	var missing []string
	for i, column := range columns {
		positions[i] = d.ColumnIndex(column)
		if positions[i] < 0 {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingColumnsError{Columns: missing}
	}

	out := Empty(columns)
	out.rows = make([][]any, len(d.rows))
	for i, row := range d.rows {
		selected := make([]any, len(columns))
		for j, pos := range positions {
			if pos < len(row) {
				selected[j] = row[pos]
			}
		}
		out.rows[i] = selected
	}
	return out, nil
}

func (d *Dataset) Clone() *Dataset {
	return New(d.columns, d.rows)
}

// Drop returns a copy without the row at index i.
func (d *Dataset) Drop(i int) *Dataset {
	out := Empty(d.columns)
	out.rows = make([][]any, 0, len(d.rows))
	out.rows = append(out.rows, d.rows[:i]...)
	out.rows = append(out.rows, d.rows[i+1:]...)
	return out
}

// Scrub returns a sanitized copy. Each column is cleaned value by value; a
// column holding composite values (maps, slices, structs) is coerced to text.
func (d *Dataset) Scrub() *Dataset {
	out := d.Clone()
	for col := range out.columns {
		composite := false
		for _, row := range out.rows {
			if isComposite(row[col]) {
				composite = true
				break
			}
		}
		for _, row := range out.rows {
			v := Sanitize(row[col])
			if composite {
				if s, ok := v.(string); !ok || s != "" {
					v = fmt.Sprint(v)
				}
			}
			row[col] = v
		}
	}
	return out
}

var timeType = reflect.TypeOf(time.Time{})

func isComposite(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if rv.Type() == timeType {
		return false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

// Sanitize maps nil, NaN and infinities to the empty string, dereferences
// pointers and unwraps named numeric types to their plain Go kind. Anything
// else passes through unchanged.
func Sanitize(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return x
	case float32:
		return Sanitize(float64(x))
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return Sanitize(f)
		}
		return x.String()
	case string, bool, int, int64, time.Time:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return Sanitize(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return Sanitize(rv.Float())
	case reflect.String:
		if _, ok := v.(fmt.Stringer); ok {
			return v
		}
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}
