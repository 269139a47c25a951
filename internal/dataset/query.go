package dataset

import (
	"fmt"
	"slices"

	"github.com/mattn/go-runewidth"

	"vgrid/internal/db"
	"vgrid/internal/grid"
)

const (
	minQueryColumnWidth = 10
	maxQueryColumnWidth = 40
	widthSampleRows     = 200
)

// FromQueryResult turns a table load into a Source. Primary key columns are
// pinned left. Widths fit the header and a sample of values. Repeated result
// names, such as two unnamed expressions, get suffixed ids while the header
// keeps the name PostgreSQL returned.
func FromQueryResult(qr *db.QueryResult, primaryKeys []string) *Table {
	ids := uniqueIDs(qr.Columns)
	columns := make([]grid.Column, len(qr.Columns))
	for i, name := range qr.Columns {
		typ := ""
		if i < len(qr.ColumnTypes) {
			typ = qr.ColumnTypes[i]
		}
		kind, align := kindOf(typ)

		w := runewidth.StringWidth(name)
		for r := 0; r < len(qr.Rows) && r < widthSampleRows; r++ {
			if i < len(qr.Rows[r]) && qr.Rows[r][i] != nil {
				w = max(w, runewidth.StringWidth(fmt.Sprint(qr.Rows[r][i])))
			}
		}
		w = min(max(w, minQueryColumnWidth), maxQueryColumnWidth)

		col := grid.Column{
			ID:     ids[i],
			Field:  ids[i],
			Header: name,
			Width:  float64(w + 1),
			Align:  align,
			Kind:   kind,
		}
		if ids[i] == name && slices.Contains(primaryKeys, name) {
			col.Pinned = grid.PinLeft
		}
		columns[i] = col
	}
	return NewTable(columns, qr.Rows)
}

// uniqueIDs returns names with later duplicates renamed to name_2, name_3
// and so on, skipping any suffix that is itself a result name.
func uniqueIDs(names []string) []string {
	used := make(map[string]struct{}, len(names))
	for _, n := range names {
		used[n] = struct{}{}
	}
	seen := make(map[string]struct{}, len(names))
	ids := make([]string, len(names))
	for i, n := range names {
		id := n
		if id == "" {
			id = fmt.Sprintf("column_%d", i+1)
		}
		if _, dup := seen[id]; dup {
			for k := 2; ; k++ {
				c := fmt.Sprintf("%s_%d", id, k)
				_, taken := used[c]
				_, claimed := seen[c]
				if !taken && !claimed {
					id = c
					break
				}
			}
		}
		seen[id] = struct{}{}
		ids[i] = id
	}
	return ids
}

func kindOf(pgType string) (grid.Kind, grid.Align) {
	switch pgType {
	case "int2", "int4", "int8":
		return grid.KindInteger, grid.AlignRight
	case "float4", "float8", "numeric":
		return grid.KindDecimal, grid.AlignRight
	case "bool":
		return grid.KindBool, grid.AlignCenter
	case "date", "timestamp", "timestamptz":
		return grid.KindDate, grid.AlignLeft
	default:
		return grid.KindText, grid.AlignLeft
	}
}
