package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const queryTimeout = 30 * time.Second

// QueryResult holds the rows of a table load. NULL cells are nil.
type QueryResult struct {
	Columns     []string
	ColumnTypes []string
	Rows        [][]any
	RowCount    int
	ExecTime    time.Duration
}

// LoadTable reads up to limit rows of a public table. A limit <= 0 reads
// every row.
func (d *DB) LoadTable(ctx context.Context, table string, limit int) (*QueryResult, error) {
	sql := fmt.Sprintf(`SELECT * FROM %s`, QuoteIdent(table))
	if limit > 0 {
		sql += fmt.Sprintf(` LIMIT %d`, limit)
	}
	return d.query(ctx, sql)
}

// ReadQuery runs a caller supplied statement inside a read-only
// transaction, so it can select rows but never change them.
func (d *DB) ReadQuery(ctx context.Context, sql string) (*QueryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := d.Conn.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read-only transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	start := time.Now()
	rows, err := tx.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows, start)
}

// CountRows returns the number of rows in a public table.
func (d *DB) CountRows(ctx context.Context, table string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int64
	err := d.Conn.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, QuoteIdent(table))).Scan(&n)
	return n, err
}

func (d *DB) query(ctx context.Context, sql string, args ...any) (*QueryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := d.Conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows, start)
}

func collect(rows pgx.Rows, start time.Time) (*QueryResult, error) {
	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	columnTypes := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
		columnTypes[i] = oidToTypeName(f.DataTypeOID)
	}

	var resultRows [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = normalize(v)
		}
		resultRows = append(resultRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &QueryResult{
		Columns:     columns,
		ColumnTypes: columnTypes,
		Rows:        resultRows,
		RowCount:    len(resultRows),
		ExecTime:    time.Since(start),
	}, nil
}

// normalize narrows driver values to the cell value set: string, int64,
// float64, bool, time.Time or nil.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, int64, float64, bool, time.Time:
		return x
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		if f, err := x.Float64Value(); err == nil && f.Valid {
			return f.Float64
		}
		if x.NaN || x.Int == nil {
			return "NaN"
		}
		return fmt.Sprintf("%se%d", x.Int.String(), x.Exp)
	case [16]byte:
		return fmt.Sprintf("%x-%x-%x-%x-%x", x[0:4], x[4:6], x[6:8], x[8:10], x[10:16])
	case []byte:
		return fmt.Sprintf("\\x%x", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// oidToTypeName maps common PostgreSQL OIDs to human-readable type names.
func oidToTypeName(oid uint32) string {
	switch oid {
	case 16:
		return "bool"
	case 20:
		return "int8"
	case 21:
		return "int2"
	case 23:
		return "int4"
	case 25:
		return "text"
	case 700:
		return "float4"
	case 701:
		return "float8"
	case 1042:
		return "bpchar"
	case 1043:
		return "varchar"
	case 1082:
		return "date"
	case 1114:
		return "timestamp"
	case 1184:
		return "timestamptz"
	case 1700:
		return "numeric"
	case 2950:
		return "uuid"
	case 3802:
		return "jsonb"
	case 114:
		return "json"
	default:
		return fmt.Sprintf("oid:%d", oid)
	}
}
