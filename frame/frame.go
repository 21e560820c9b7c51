// Package frame is a small in-memory tabular engine for run preparation.
//
// A Frame is a column-ordered table of string cells, the shape a
// header-only CSV read produces. The empty string is the null value;
// numeric operations parse cells on demand and skip nulls. Every
// operation returns a new Frame and leaves its receiver untouched.
package frame

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrColumnNotFound reports a reference to a column a Frame does not have.
var ErrColumnNotFound = errors.New("column not found")

// Frame is one rectangular table. The zero value is an empty table
// with no columns; use New or an Engine to build populated ones.
type Frame struct {
	cols []string
	rows [][]string
}

// New builds a Frame from a header and row data. Every row must match
// the header width.
func New(cols []string, rows [][]string) (*Frame, error) {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, ok := seen[c]; ok {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d columns", i, len(row), len(cols))
		}
	}
	return &Frame{cols: copyStrings(cols), rows: copyRows(rows)}, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return copyStrings(f.cols)
}

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	return len(f.rows)
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.colIndex(name)
	return ok
}

// Column returns all cells of one column in row order.
func (f *Frame) Column(name string) ([]string, error) {
	idx, ok := f.colIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	out := make([]string, len(f.rows))
	for i, row := range f.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Cell returns one cell by row index and column name.
func (f *Frame) Cell(row int, name string) (string, error) {
	if row < 0 || row >= len(f.rows) {
		return "", fmt.Errorf("row %d out of range (%d rows)", row, len(f.rows))
	}
	idx, ok := f.colIndex(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return f.rows[row][idx], nil
}

// Rows returns a copy of all row data in column order.
func (f *Frame) Rows() [][]string {
	return copyRows(f.rows)
}

// Row is a read view of one row during WithColumn and Filter callbacks.
type Row struct {
	f   *Frame
	idx int
}

// Get returns the named cell, or the null value for unknown columns.
func (r Row) Get(name string) string {
	idx, ok := r.f.colIndex(name)
	if !ok {
		return ""
	}
	return r.f.rows[r.idx][idx]
}

// WithRowIndex appends a column of 0-based sequential integers in the
// Frame's current row order.
func (f *Frame) WithRowIndex(name string) *Frame {
	cols := append(copyStrings(f.cols), name)
	rows := make([][]string, len(f.rows))
	for i, row := range f.rows {
		rows[i] = append(copyStrings(row), strconv.Itoa(i))
	}
	return &Frame{cols: cols, rows: rows}
}

// SuffixExcept appends suffix to every column name not listed in keep.
func (f *Frame) SuffixExcept(suffix string, keep ...string) *Frame {
	kept := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		kept[k] = struct{}{}
	}
	cols := make([]string, len(f.cols))
	for i, c := range f.cols {
		if _, ok := kept[c]; ok {
			cols[i] = c
		} else {
			cols[i] = c + suffix
		}
	}
	return &Frame{cols: cols, rows: copyRows(f.rows)}
}

// Select keeps only the named columns, in the given order. Every name
// must exist.
func (f *Frame) Select(names ...string) (*Frame, error) {
	idxs := make([]int, len(names))
	for i, name := range names {
		idx, ok := f.colIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		idxs[i] = idx
	}
	rows := make([][]string, len(f.rows))
	for i, row := range f.rows {
		out := make([]string, len(idxs))
		for j, idx := range idxs {
			out[j] = row[idx]
		}
		rows[i] = out
	}
	return &Frame{cols: copyStrings(names), rows: rows}, nil
}

// Drop removes the named columns. Names that do not exist are ignored,
// matching relational drop-if-present semantics.
func (f *Frame) Drop(names ...string) *Frame {
	dropped := make(map[string]struct{}, len(names))
	for _, name := range names {
		dropped[name] = struct{}{}
	}
	keepIdx := make([]int, 0, len(f.cols))
	cols := make([]string, 0, len(f.cols))
	for i, c := range f.cols {
		if _, ok := dropped[c]; ok {
			continue
		}
		keepIdx = append(keepIdx, i)
		cols = append(cols, c)
	}
	rows := make([][]string, len(f.rows))
	for i, row := range f.rows {
		out := make([]string, len(keepIdx))
		for j, idx := range keepIdx {
			out[j] = row[idx]
		}
		rows[i] = out
	}
	return &Frame{cols: cols, rows: rows}
}

// WithColumn appends a derived column computed per row.
func (f *Frame) WithColumn(name string, fn func(Row) string) *Frame {
	cols := append(copyStrings(f.cols), name)
	rows := make([][]string, len(f.rows))
	for i, row := range f.rows {
		rows[i] = append(copyStrings(row), fn(Row{f: f, idx: i}))
	}
	return &Frame{cols: cols, rows: rows}
}

// Filter keeps rows for which fn returns true, preserving order.
func (f *Frame) Filter(fn func(Row) bool) *Frame {
	rows := make([][]string, 0, len(f.rows))
	for i := range f.rows {
		if fn(Row{f: f, idx: i}) {
			rows = append(rows, copyStrings(f.rows[i]))
		}
	}
	return &Frame{cols: copyStrings(f.cols), rows: rows}
}

// SortByNumber stably sorts rows ascending by the numeric value of one
// column. Null and unparseable cells sort after all numeric ones.
func (f *Frame) SortByNumber(name string) (*Frame, error) {
	idx, ok := f.colIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	rows := copyRows(f.rows)
	sort.SliceStable(rows, func(i, j int) bool {
		vi, oki := parseNumber(rows[i][idx])
		vj, okj := parseNumber(rows[j][idx])
		if oki && okj {
			return vi < vj
		}
		return oki && !okj
	})
	return &Frame{cols: copyStrings(f.cols), rows: rows}, nil
}

func (f *Frame) colIndex(name string) (int, bool) {
	for i, c := range f.cols {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyRows(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, row := range in {
		out[i] = copyStrings(row)
	}
	return out
}
