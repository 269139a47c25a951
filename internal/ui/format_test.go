package ui

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"vgrid/internal/dataset"
	"vgrid/internal/grid"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value dataset.Value
		kind  grid.Kind
		want  string
	}{
		{name: "nil", value: nil, kind: grid.KindText, want: NullDisplay},
		{name: "integer grouping", value: int64(1234567), kind: grid.KindInteger, want: "1,234,567"},
		{name: "integer from float", value: float64(42), kind: grid.KindInteger, want: "42"},
		{name: "currency", value: int64(75000), kind: grid.KindCurrency, want: "$75,000.00"},
		{name: "negative currency", value: -12.5, kind: grid.KindCurrency, want: "-$12.50"},
		{name: "decimal", value: 1234.5678, kind: grid.KindDecimal, want: "1,234.57"},
		{name: "date only", value: time.Date(2021, time.June, 6, 0, 0, 0, 0, time.UTC), kind: grid.KindDate, want: "2021-06-06"},
		{name: "timestamp", value: time.Date(2021, time.June, 6, 13, 4, 5, 0, time.UTC), kind: grid.KindDate, want: "2021-06-06 13:04:05"},
		{name: "multiline text", value: "a\nb\tc", kind: grid.KindText, want: "a↵b c"},
		{name: "bool", value: true, kind: grid.KindBool, want: "true"},
		{name: "kind mismatch falls back", value: "n/a", kind: grid.KindInteger, want: "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value, tt.kind))
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		align grid.Align
		want  string
	}{
		{name: "pad left aligned", in: "ab", width: 4, align: grid.AlignLeft, want: "ab  "},
		{name: "pad right aligned", in: "ab", width: 4, align: grid.AlignRight, want: "  ab"},
		{name: "center", in: "ab", width: 5, align: grid.AlignCenter, want: " ab  "},
		{name: "truncate", in: "abcdef", width: 4, align: grid.AlignLeft, want: "abc…"},
		{name: "wide runes", in: "日本語", width: 4, align: grid.AlignLeft, want: "日… "},
		{name: "zero width", in: "abc", width: 0, align: grid.AlignLeft, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fit(tt.in, tt.width, tt.align)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.width, runewidth.StringWidth(got))
		})
	}
}

func TestCellBox(t *testing.T) {
	got := plain(cellBox("hello", 4, grid.AlignLeft, CellNormal))
	assert.Equal(t, "he…│", got)
	assert.Empty(t, cellBox("x", 0, grid.AlignLeft, CellNormal))
	assert.Equal(t, "│", plain(cellBox("x", 1, grid.AlignLeft, CellNormal)))
}
