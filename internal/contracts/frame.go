package contracts

import "sort"

// Row is a single record of a Frame keyed by column name.
type Row map[string]interface{}

// Float reads a numeric cell. Returns false when the column is absent
// or holds a non-numeric value.
func (r Row) Float(col string) (float64, bool) {
	v, ok := r[col]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// String reads a string cell; absent or non-string cells read as "".
func (r Row) String(col string) string {
	if v, ok := r[col]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Frame is the in-memory tabular form flowing through the pipeline.
// Every transforming operation returns a new Frame; rows of an existing
// Frame are never mutated in place, so stages can safely share them.
type Frame struct {
	cols []string
	rows []Row
}

// NewFrame creates an empty frame with the given column schema
func NewFrame(cols ...string) *Frame {
	return &Frame{cols: append([]string(nil), cols...)}
}

// Columns returns a copy of the column schema in order
func (f *Frame) Columns() []string {
	return append([]string(nil), f.cols...)
}

// HasColumn reports whether the schema contains the column
func (f *Frame) HasColumn(name string) bool {
	for _, c := range f.cols {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return len(f.rows)
}

// Empty reports whether the frame has no rows
func (f *Frame) Empty() bool {
	return len(f.rows) == 0
}

// Append adds a row. The frame takes ownership of the map.
func (f *Frame) Append(row Row) {
	f.rows = append(f.rows, row)
}

// Row returns the i-th row. Callers must treat it as read-only.
func (f *Frame) Row(i int) Row {
	return f.rows[i]
}

// Float reads a numeric cell of the i-th row
func (f *Frame) Float(i int, col string) (float64, bool) {
	return f.rows[i].Float(col)
}

// String reads a string cell of the i-th row
func (f *Frame) String(i int, col string) string {
	return f.rows[i].String(col)
}

// Select returns a new frame holding the rows matching the predicate.
// The schema is preserved, so an empty result keeps its columns.
func (f *Frame) Select(pred func(Row) bool) *Frame {
	out := NewFrame(f.cols...)
	for _, row := range f.rows {
		if pred(row) {
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// WithFloatColumn returns a new frame with an extra numeric column.
// vals must align with the rows; existing rows are cloned, not touched.
func (f *Frame) WithFloatColumn(name string, vals []float64) *Frame {
	out := NewFrame(f.cols...)
	if !out.HasColumn(name) {
		out.cols = append(out.cols, name)
	}
	for i, row := range f.rows {
		clone := row.clone()
		clone[name] = vals[i]
		out.rows = append(out.rows, clone)
	}
	return out
}

// SortByFloatDesc returns a new frame sorted descending by a numeric
// column. The sort is stable: rows with equal values (and rows where the
// column is missing) keep their input order.
func (f *Frame) SortByFloatDesc(col string) *Frame {
	out := NewFrame(f.cols...)
	out.rows = append([]Row(nil), f.rows...)
	sort.SliceStable(out.rows, func(i, j int) bool {
		a, _ := out.rows[i].Float(col)
		b, _ := out.rows[j].Float(col)
		return a > b
	})
	return out
}

// Head returns a new frame with at most n leading rows
func (f *Frame) Head(n int) *Frame {
	if n > len(f.rows) {
		n = len(f.rows)
	}
	if n < 0 {
		n = 0
	}
	out := NewFrame(f.cols...)
	out.rows = append([]Row(nil), f.rows[:n]...)
	return out
}

// FloatColumn collects a numeric column; missing cells are skipped
func (f *Frame) FloatColumn(col string) []float64 {
	out := make([]float64, 0, len(f.rows))
	for _, row := range f.rows {
		if v, ok := row.Float(col); ok {
			out = append(out, v)
		}
	}
	return out
}
