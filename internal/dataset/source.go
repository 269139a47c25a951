// Package dataset supplies rows to the grid. Sources are read-only and are
// only asked for the cells the viewport materializes.
//
// Column widths are measured in terminal cells and include a one-cell
// divider drawn after the cell content.
package dataset

import (
	"vgrid/internal/grid"
)

// Value is a single cell value: string, int64, float64, bool, time.Time or nil.
type Value = any

// Source is a table of rows addressed by index and field name.
type Source interface {
	Columns() []grid.Column
	Len() int
	Value(row int, field string) Value
}

// Table is an in-memory Source.
type Table struct {
	columns []grid.Column
	fields  map[string]int
	rows    [][]Value
}

// NewTable builds a Table whose rows hold one value per column, in column
// order. Short rows read as nil in the missing cells. A repeated field
// resolves to its first column.
func NewTable(columns []grid.Column, rows [][]Value) *Table {
	t := &Table{
		columns: columns,
		fields:  make(map[string]int, len(columns)),
		rows:    rows,
	}
	for i, c := range columns {
		field := c.Field
		if field == "" {
			field = c.ID
		}
		if _, dup := t.fields[field]; !dup {
			t.fields[field] = i
		}
	}
	return t
}

// Columns implements Source.
func (t *Table) Columns() []grid.Column {
	return append([]grid.Column(nil), t.columns...)
}

// Len implements Source.
func (t *Table) Len() int {
	return len(t.rows)
}

// Value implements Source.
func (t *Table) Value(row int, field string) Value {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	i, ok := t.fields[field]
	if !ok || i >= len(t.rows[row]) {
		return nil
	}
	return t.rows[row][i]
}
