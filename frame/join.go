package frame

import (
	"fmt"
	"strings"
)

// LeftJoin joins two Frames on an equality of the named columns with
// left-outer semantics: every left row appears in the output, and a
// left row with no right match carries nulls in the right columns.
// A left row with several right matches is repeated per match.
//
// Output column order is the join keys, then the remaining left
// columns, then the remaining right columns.
func (f *Frame) LeftJoin(right *Frame, on ...string) (*Frame, error) {
	if len(on) == 0 {
		return nil, fmt.Errorf("left join requires at least one key column")
	}

	leftKeyIdx := make([]int, len(on))
	rightKeyIdx := make([]int, len(on))
	for i, name := range on {
		idx, ok := f.colIndex(name)
		if !ok {
			return nil, fmt.Errorf("left side: %w: %s", ErrColumnNotFound, name)
		}
		leftKeyIdx[i] = idx
		idx, ok = right.colIndex(name)
		if !ok {
			return nil, fmt.Errorf("right side: %w: %s", ErrColumnNotFound, name)
		}
		rightKeyIdx[i] = idx
	}

	keySet := make(map[string]struct{}, len(on))
	for _, name := range on {
		keySet[name] = struct{}{}
	}
	leftRestIdx := restIndexes(f.cols, keySet)
	rightRestIdx := restIndexes(right.cols, keySet)

	cols := make([]string, 0, len(on)+len(leftRestIdx)+len(rightRestIdx))
	cols = append(cols, on...)
	for _, idx := range leftRestIdx {
		cols = append(cols, f.cols[idx])
	}
	for _, idx := range rightRestIdx {
		cols = append(cols, right.cols[idx])
	}

	index := make(map[string][]int, len(right.rows))
	for i, row := range right.rows {
		k := joinKey(row, rightKeyIdx)
		index[k] = append(index[k], i)
	}

	rows := make([][]string, 0, len(f.rows))
	for _, lrow := range f.rows {
		base := make([]string, 0, len(cols))
		for _, idx := range leftKeyIdx {
			base = append(base, lrow[idx])
		}
		for _, idx := range leftRestIdx {
			base = append(base, lrow[idx])
		}

		matches := index[joinKey(lrow, leftKeyIdx)]
		if len(matches) == 0 {
			row := append(copyStrings(base), make([]string, len(rightRestIdx))...)
			rows = append(rows, row)
			continue
		}
		for _, ri := range matches {
			row := copyStrings(base)
			for _, idx := range rightRestIdx {
				row = append(row, right.rows[ri][idx])
			}
			rows = append(rows, row)
		}
	}
	return &Frame{cols: cols, rows: rows}, nil
}

func restIndexes(cols []string, exclude map[string]struct{}) []int {
	out := make([]int, 0, len(cols))
	for i, c := range cols {
		if _, ok := exclude[c]; ok {
			continue
		}
		out = append(out, i)
	}
	return out
}

func joinKey(row []string, idxs []int) string {
	parts := make([]string, len(idxs))
	for i, idx := range idxs {
		parts[i] = row[idx]
	}
	return strings.Join(parts, "\x1f")
}
