package virtual

import (
	"fmt"
	"math"
)

const (
	// DefaultOverscanRows is the number of extra rows materialized on each
	// side of the visible rows.
	DefaultOverscanRows = 5
	// DefaultOverscanColumns is the number of extra columns materialized on
	// each side of the visible columns.
	DefaultOverscanColumns = 2
)

// Params are the scalar inputs of a window computation.
type Params struct {
	TotalRows       int
	RowHeight       float64
	ContainerWidth  float64
	ContainerHeight float64
	ScrollTop       float64
	ScrollLeft      float64
	OverscanRows    int
	OverscanColumns int
}

// DefaultParams returns Params with the default overscan counts.
func DefaultParams() Params {
	return Params{
		OverscanRows:    DefaultOverscanRows,
		OverscanColumns: DefaultOverscanColumns,
	}
}

// Validate reports whether p describes a well-formed surface. Scroll offsets
// are not validated; Compute clamps them.
func (p Params) Validate() error {
	if p.TotalRows < 0 {
		return fmt.Errorf("total rows %d: %w", p.TotalRows, ErrInvalidGeometry)
	}
	if !(p.RowHeight > 0) || math.IsInf(p.RowHeight, 0) {
		return fmt.Errorf("row height %v: %w", p.RowHeight, ErrInvalidGeometry)
	}
	if !finiteNonNegative(p.ContainerWidth) || !finiteNonNegative(p.ContainerHeight) {
		return fmt.Errorf("container %vx%v: %w", p.ContainerWidth, p.ContainerHeight, ErrInvalidGeometry)
	}
	if p.OverscanRows < 0 || p.OverscanColumns < 0 {
		return fmt.Errorf("overscan %d/%d: %w", p.OverscanRows, p.OverscanColumns, ErrInvalidGeometry)
	}
	return nil
}

// Range is a half-open index range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether i lies in the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Indices lists every index in the range.
func (r Range) Indices() []int {
	out := make([]int, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		out = append(out, i)
	}
	return out
}

// Window is the result of a computation: the rows and columns to
// materialize, the translation of the materialized block, and the size of
// the whole virtual surface. End indices are exclusive.
type Window struct {
	StartRow    int     `json:"startRowIndex"    yaml:"start_row_index"`
	EndRow      int     `json:"endRowIndex"      yaml:"end_row_index"`
	StartColumn int     `json:"startColumnIndex" yaml:"start_column_index"`
	EndColumn   int     `json:"endColumnIndex"   yaml:"end_column_index"`
	OffsetY     float64 `json:"offsetY"          yaml:"offset_y"`
	OffsetX     float64 `json:"offsetX"          yaml:"offset_x"`
	TotalHeight float64 `json:"totalHeight"      yaml:"total_height"`
	TotalWidth  float64 `json:"totalWidth"       yaml:"total_width"`
}

// Rows returns the row range of the window.
func (w Window) Rows() Range {
	return Range{Start: w.StartRow, End: w.EndRow}
}

// Columns returns the scrollable column range of the window.
func (w Window) Columns() Range {
	return Range{Start: w.StartColumn, End: w.EndColumn}
}

// Compute returns the window for p over the scrollable columns in cols. A nil
// layout is treated as having no columns.
func Compute(p Params, cols *ColumnLayout) (Window, error) {
	if err := p.Validate(); err != nil {
		return Window{}, err
	}
	rows := ComputeRows(p.TotalRows, p.RowHeight, p.ContainerHeight, p.ScrollTop, p.OverscanRows)
	columns := ComputeColumns(cols, p.ContainerWidth, p.ScrollLeft, p.OverscanColumns)

	w := Window{
		StartRow:    rows.Start,
		EndRow:      rows.End,
		StartColumn: columns.Start,
		EndColumn:   columns.End,
		OffsetY:     float64(rows.Start) * p.RowHeight,
		TotalHeight: float64(p.TotalRows) * p.RowHeight,
		TotalWidth:  cols.TotalWidth(),
	}
	if cols.Len() > 0 {
		w.OffsetX = cols.Offset(columns.Start)
	}
	return w, nil
}

// ComputeRows returns the overscanned row range. rowHeight must be positive;
// Compute validates it before calling.
func ComputeRows(totalRows int, rowHeight, containerHeight, scrollTop float64, overscan int) Range {
	if totalRows <= 0 || containerHeight <= 0 {
		return Range{}
	}
	scrollTop = clampScroll(scrollTop)

	first := totalRows
	if pos := math.Floor(scrollTop / rowHeight); pos < float64(totalRows) {
		first = int(pos)
	}
	visible := math.Ceil(containerHeight / rowHeight)
	last := totalRows
	if float64(first)+visible < float64(totalRows) {
		last = first + int(visible)
	}

	return Range{
		Start: first - min(overscan, first),
		End:   last + min(overscan, totalRows-last),
	}
}

// ComputeColumns returns the overscanned column range over cols.
func ComputeColumns(cols *ColumnLayout, containerWidth, scrollLeft float64, overscan int) Range {
	n := cols.Len()
	if n == 0 || containerWidth <= 0 {
		return Range{}
	}
	scrollLeft = clampScroll(scrollLeft)

	start := cols.firstEndingAfter(0, scrollLeft)
	end := n
	if start < n {
		if i := cols.firstEndingAfter(start, scrollLeft+containerWidth); i < n {
			end = i + 1
		}
	}

	return Range{
		Start: start - min(overscan, start),
		End:   end + min(overscan, n-end),
	}
}

func clampScroll(v float64) float64 {
	if v > 0 {
		return v
	}
	// negative, zero and NaN
	return 0
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
