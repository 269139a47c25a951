package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"users"`, QuoteIdent("users"))
	assert.Equal(t, `"public"."users"`, QuoteIdent("public.users"))
	assert.Equal(t, `"we""ird"`, QuoteIdent(`we"ird`))
}

func TestBuildURI(t *testing.T) {
	assert.Equal(t, "postgres://bob:s%40cret@db:6543/app?sslmode=prefer",
		BuildURI("db", "6543", "bob", "s@cret", "app"))
	assert.Equal(t, "postgres://bob@localhost:5432/app?sslmode=prefer",
		BuildURI("", "", "bob", "", "app"))
}

func TestNormalize(t *testing.T) {
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "int32", in: int32(7), want: int64(7)},
		{name: "int16", in: int16(-3), want: int64(-3)},
		{name: "float32", in: float32(1.5), want: 1.5},
		{name: "string", in: "x", want: "x"},
		{name: "time", in: ts, want: ts},
		{name: "uuid", in: [16]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 1, 2, 3, 4, 5, 6, 7, 8},
			want: "12345678-9abc-def0-0102-030405060708"},
		{name: "bytea", in: []byte{0xde, 0xad}, want: `\xdead`},
		{name: "invalid numeric", in: pgtype.Numeric{}, want: nil},
		{name: "other", in: map[string]any{"a": 1}, want: "map[a:1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(tt.in))
		})
	}
}

func TestOidToTypeName(t *testing.T) {
	assert.Equal(t, "int4", oidToTypeName(23))
	assert.Equal(t, "timestamptz", oidToTypeName(1184))
	assert.Equal(t, "oid:9999", oidToTypeName(9999))
}

func TestIsConnectedWithoutConn(t *testing.T) {
	d := &DB{host: "localhost", port: "5432", user: "bob", database: "app"}
	assert.False(t, d.IsConnected(context.Background()))
	assert.Equal(t, "postgres://bob@localhost:5432/app", d.ConnInfo())
}
