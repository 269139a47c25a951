package virtual

import (
	"fmt"
	"math"
	"sort"
)

// ColumnLayout is a prefix-sum table over the widths of the scrollable
// columns. Build it once per column set and reuse it for every scroll event.
type ColumnLayout struct {
	widths  []float64
	offsets []float64 // offsets[i] is the left edge of column i; offsets[n] is the total
}

// NewColumnLayout copies widths and accumulates their offsets. A negative or
// non-finite width is rejected with ErrInvalidGeometry.
func NewColumnLayout(widths []float64) (*ColumnLayout, error) {
	l := &ColumnLayout{
		widths:  make([]float64, len(widths)),
		offsets: make([]float64, len(widths)+1),
	}
	for i, w := range widths {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("column %d width %v: %w", i, w, ErrInvalidGeometry)
		}
		l.widths[i] = w
		l.offsets[i+1] = l.offsets[i] + w
	}
	return l, nil
}

// Len returns the number of columns.
func (l *ColumnLayout) Len() int {
	if l == nil {
		return 0
	}
	return len(l.widths)
}

// Width returns the width of column i.
func (l *ColumnLayout) Width(i int) float64 {
	return l.widths[i]
}

// Offset returns the left edge of column i. Offset(Len()) is the total width.
func (l *ColumnLayout) Offset(i int) float64 {
	return l.offsets[i]
}

// TotalWidth returns the summed width of all columns.
func (l *ColumnLayout) TotalWidth() float64 {
	if l == nil {
		return 0
	}
	return l.offsets[len(l.widths)]
}

// IndexAt returns the column whose extent [left, right) contains x, or Len()
// when x lies at or past the trailing edge of the last column.
func (l *ColumnLayout) IndexAt(x float64) int {
	return l.firstEndingAfter(0, x)
}

// firstEndingAfter returns the first column index >= from whose trailing edge
// is strictly greater than x, or Len() if there is none.
func (l *ColumnLayout) firstEndingAfter(from int, x float64) int {
	n := l.Len()
	return from + sort.Search(n-from, func(i int) bool {
		return l.offsets[from+i+1] > x
	})
}
