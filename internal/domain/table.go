package domain

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports required tabular columns absent from the input.
// It is a whole-batch precondition failure: no rows are processed when raised.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("input table is missing required columns: %s",
		strings.Join(e.Missing, ", "))
}

// Table is tabular coordinate input with case-insensitive column access.
//
// Column names are canonicalized to lower case once, at construction — the
// ingestion boundary — so every later lookup is a plain map hit. When a
// header repeats, the first occurrence wins.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header row and data rows.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    rows,
	}
	for i, c := range columns {
		name := strings.ToLower(strings.TrimSpace(c))
		t.columns[i] = name
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	return t
}

// Columns returns the canonicalized column names in input order.
func (t *Table) Columns() []string { return t.columns }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Column returns the index of a column; the name is matched case-insensitively.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[strings.ToLower(name)]
	return i, ok
}

// Require verifies that every named column exists, reporting all absences
// together so the caller sees the full shortfall at once.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := t.Column(n); !ok {
			missing = append(missing, strings.ToLower(n))
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}

// Cell returns the value at (row, col). Short rows read as empty cells.
func (t *Table) Cell(row, col int) string {
	r := t.rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}
