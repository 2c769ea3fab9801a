// Package store owns the durable tabular record set behind the
// annotation pipeline: a CSV-backed table of one row per article, written
// back after every annotated item so an interrupted run loses at most the
// item in flight.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Table is a row-oriented record set with named columns. Unknown input
// columns are preserved untouched so upstream metadata survives a run.
type Table struct {
	columns  []string
	colIndex map[string]int
	rows     [][]string
}

// NewTable creates an empty table with the given columns
func NewTable(columns []string) *Table {
	t := &Table{
		colIndex: make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

// Load reads a CSV file into a table. Ragged rows are padded or truncated
// to the header width.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read table: %s has no header row", path)
	}

	t := NewTable(records[0])
	width := len(t.columns)
	for _, rec := range records[1:] {
		row := make([]string, width)
		copy(row, rec)
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func (t *Table) addColumn(name string) {
	if _, exists := t.colIndex[name]; exists {
		return
	}
	t.colIndex[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], "")
	}
}

// Columns returns the column names in order
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether a column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIndex[name]
	return ok
}

// EnsureColumns appends any missing columns, padding existing rows
func (t *Table) EnsureColumns(names ...string) {
	for _, n := range names {
		t.addColumn(n)
	}
}

// AppendRow adds a row from a column->value map and returns its index
func (t *Table) AppendRow(values map[string]string) int {
	row := make([]string, len(t.columns))
	for col, val := range values {
		if idx, ok := t.colIndex[col]; ok {
			row[idx] = val
		}
	}
	t.rows = append(t.rows, row)
	return len(t.rows) - 1
}

// Get returns the cell value, or "" for an unknown column
func (t *Table) Get(row int, col string) string {
	idx, ok := t.colIndex[col]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	return t.rows[row][idx]
}

// Set writes a cell value, creating the column if needed
func (t *Table) Set(row int, col, val string) {
	idx, ok := t.colIndex[col]
	if !ok {
		t.addColumn(col)
		idx = t.colIndex[col]
	}
	if row < 0 || row >= len(t.rows) {
		return
	}
	t.rows[row][idx] = val
}

// Write stores the table as CSV at path, creating parent directories
func (t *Table) Write(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.columns); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush table: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close table file: %w", err)
	}
	return nil
}
