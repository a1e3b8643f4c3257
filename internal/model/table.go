package model

import "strings"

// RawTable is an input file as read from disk: header plus untyped cells.
type RawTable struct {
	Source string
	Header []string
	Rows   [][]string
}

// NormalizeColumn trims, lowercases and replaces spaces with underscores,
// so "Timestamp IST" and " timestamp_ist" address the same column.
func NormalizeColumn(name string) string {
	name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Index maps normalized column names to their position. The first occurrence wins.
func (t *RawTable) Index() map[string]int {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		key := NormalizeColumn(h)
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// Require returns the positions of the given columns or a SchemaError for the first missing one.
func (t *RawTable) Require(columns ...string) (map[string]int, error) {
	idx := t.Index()
	for _, c := range columns {
		if _, ok := idx[c]; !ok {
			return nil, &SchemaError{Source: t.Source, Column: c}
		}
	}
	return idx, nil
}

// Cell returns the value at column i of row, or "" when the row is short or i < 0.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
