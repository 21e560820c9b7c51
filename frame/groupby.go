package frame

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregation maps one input column to one output column via an
// aggregation function. Numeric aggregations parse cells as floats and
// skip nulls; a group with no usable values aggregates to null.
type Aggregation struct {
	Col  string
	Name string
	fn   func(values []string) string
}

// As renames the aggregation's output column.
func (a Aggregation) As(name string) Aggregation {
	a.Name = name
	return a
}

// Mean averages the numeric values of a column.
func Mean(col string) Aggregation {
	return numericAgg(col, func(vs []float64) float64 { return stat.Mean(vs, nil) })
}

// Max takes the numeric maximum of a column.
func Max(col string) Aggregation {
	return numericAgg(col, floats.Max)
}

// Min takes the numeric minimum of a column.
func Min(col string) Aggregation {
	return numericAgg(col, floats.Min)
}

// Sum totals the numeric values of a column.
func Sum(col string) Aggregation {
	return numericAgg(col, floats.Sum)
}

// StdDev takes the sample standard deviation of a column.
func StdDev(col string) Aggregation {
	return numericAgg(col, func(vs []float64) float64 { return stat.StdDev(vs, nil) })
}

// Count counts the non-null cells of a column.
func Count(col string) Aggregation {
	return Aggregation{Col: col, Name: col, fn: func(values []string) string {
		n := 0
		for _, v := range values {
			if v != "" {
				n++
			}
		}
		return strconv.Itoa(n)
	}}
}

// Mode takes the most frequent non-null value of a column. Ties break
// to the lexicographically smallest value so results are deterministic.
func Mode(col string) Aggregation {
	return Aggregation{Col: col, Name: col, fn: func(values []string) string {
		counts := make(map[string]int, len(values))
		for _, v := range values {
			if v != "" {
				counts[v]++
			}
		}
		best, bestCount := "", 0
		for v, n := range counts {
			if n > bestCount || (n == bestCount && v < best) {
				best, bestCount = v, n
			}
		}
		return best
	}}
}

// First takes the first non-null value of a column in group row order.
func First(col string) Aggregation {
	return Aggregation{Col: col, Name: col, fn: func(values []string) string {
		for _, v := range values {
			if v != "" {
				return v
			}
		}
		return ""
	}}
}

// Last takes the last non-null value of a column in group row order.
func Last(col string) Aggregation {
	return Aggregation{Col: col, Name: col, fn: func(values []string) string {
		for i := len(values) - 1; i >= 0; i-- {
			if values[i] != "" {
				return values[i]
			}
		}
		return ""
	}}
}

func numericAgg(col string, fn func([]float64) float64) Aggregation {
	return Aggregation{Col: col, Name: col, fn: func(values []string) string {
		parsed := make([]float64, 0, len(values))
		for _, v := range values {
			if x, ok := parseNumber(v); ok {
				parsed = append(parsed, x)
			}
		}
		if len(parsed) == 0 {
			return ""
		}
		return formatNumber(fn(parsed))
	}}
}

// GroupBy partitions rows by the value of one column and emits one row
// per distinct key holding the given aggregations. The key column is
// not part of the output. Groups are emitted in ascending numeric key
// order, with non-numeric keys after in first-appearance order.
func (f *Frame) GroupBy(key string, aggs ...Aggregation) (*Frame, error) {
	keyIdx, ok := f.colIndex(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, key)
	}
	aggIdx := make([]int, len(aggs))
	for i, a := range aggs {
		idx, ok := f.colIndex(a.Col)
		if !ok {
			return nil, fmt.Errorf("aggregation %s: %w: %s", a.Name, ErrColumnNotFound, a.Col)
		}
		aggIdx[i] = idx
	}

	groups := make(map[string][]int)
	order := make([]string, 0, 64)
	for i, row := range f.rows {
		k := row[keyIdx]
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		vi, oki := parseNumber(order[i])
		vj, okj := parseNumber(order[j])
		if oki && okj {
			return vi < vj
		}
		return oki && !okj
	})

	cols := make([]string, len(aggs))
	for i, a := range aggs {
		cols[i] = a.Name
	}
	rows := make([][]string, 0, len(order))
	for _, k := range order {
		members := groups[k]
		out := make([]string, len(aggs))
		for i, a := range aggs {
			values := make([]string, len(members))
			for j, ri := range members {
				values[j] = f.rows[ri][aggIdx[i]]
			}
			out[i] = a.fn(values)
		}
		rows = append(rows, out)
	}
	return &Frame{cols: cols, rows: rows}, nil
}
