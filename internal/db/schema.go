package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const schemaTimeout = 10 * time.Second

// QuoteIdent quotes a possibly schema-qualified identifier.
func QuoteIdent(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// ListTables returns all public base tables sorted by name.
func (d *DB) ListTables(ctx context.Context) ([]string, error) {
	return d.textColumn(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
}

// GetPrimaryKeys returns the primary key column names of a public table in
// key order. The grid pins them to the left edge.
func (d *DB) GetPrimaryKeys(ctx context.Context, table string) ([]string, error) {
	return d.textColumn(ctx, `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		  AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_name = $1
		  AND tc.table_schema = 'public'
		ORDER BY kcu.ordinal_position
	`, table)
}

// textColumn runs a catalog query whose rows are a single text column.
func (d *DB) textColumn(ctx context.Context, sql string, args ...any) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, schemaTimeout)
	defer cancel()

	rows, err := d.Conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
