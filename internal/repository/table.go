package repository

import (
	"strconv"

	"github.com/moritzgrimm/gigbook/internal/model"
)

// headerIndex maps header cell names to their 0-based column positions.
// Rows are header-keyed on read so a sheet whose columns were migrated
// additively still loads correctly.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}

// cell returns the named column's value for a row, or "" when the column is
// declared but the sparse row does not reach it. Missing required columns
// therefore never fail a load.
func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// headerOf returns the sheet's actual header row, or the canonical fallback
// for a sheet that has no rows yet.
func headerOf(rows [][]string, canonical []string) []string {
	if len(rows) > 0 && len(rows[0]) > 0 {
		return rows[0]
	}
	return canonical
}

// renderRow lays values out under the sheet's actual header, so a write
// stays aligned after the header was migrated additively and its column
// order diverged from the canonical one. Header names the caller does not
// know keep their cell from prev; pass nil on append.
func renderRow(header []string, values map[string]string, prev []string) []string {
	row := make([]string, len(header))
	for i, name := range header {
		if v, ok := values[name]; ok {
			row[i] = v
		} else if i < len(prev) {
			row[i] = prev[i]
		}
	}
	return row
}

// nextID computes a fresh id from the rows of a sheet: the maximum over all
// cells in the id column that parse as non-negative integers, plus one, or
// "1" when no numeric id exists. Malformed id cells are skipped; they never
// block allocation but also never get caught up to.
//
// Two sessions computing this from the same snapshot can allocate the same
// id and both append. The store has no atomic increment, so the race is
// accepted for the tool's single-writer usage and documented here rather
// than hidden.
func nextID(rows [][]string, idCol int) string {
	var max int64
	for i, row := range rows {
		if i == 0 || idCol >= len(row) {
			continue // header row, or sparse row without an id cell
		}
		if n, ok := model.NumericID(row[idCol]); ok && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}
