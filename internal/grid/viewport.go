package grid

import (
	"math"

	"github.com/rs/zerolog"

	"vgrid/internal/virtual"
)

// ViewportOptions configure the geometry a Viewport feeds to the engine.
type ViewportOptions struct {
	RowHeight       float64
	HeaderHeight    float64
	OverscanRows    int
	OverscanColumns int
}

// DefaultViewportOptions mirror a browser grid: 40px rows under a 44px header.
func DefaultViewportOptions() ViewportOptions {
	return ViewportOptions{
		RowHeight:       40,
		HeaderHeight:    44,
		OverscanRows:    virtual.DefaultOverscanRows,
		OverscanColumns: virtual.DefaultOverscanColumns,
	}
}

// Viewport owns the scroll position and container size of one grid and
// recomputes the window synchronously after every event.
type Viewport struct {
	cols     *Columns
	opts     ViewportOptions
	rowCount int
	log      zerolog.Logger

	width      float64
	height     float64
	scrollTop  float64
	scrollLeft float64

	window virtual.Window
	err    error
}

// NewViewport creates a viewport over cols with rowCount rows.
func NewViewport(cols *Columns, rowCount int, opts ViewportOptions, log zerolog.Logger) *Viewport {
	v := &Viewport{
		cols:     cols,
		opts:     opts,
		rowCount: max(0, rowCount),
		log:      log.With().Str("component", "viewport").Logger(),
	}
	v.recompute()
	return v
}

// Columns returns the column model the viewport windows over.
func (v *Viewport) Columns() *Columns {
	return v.cols
}

// Options returns the viewport geometry.
func (v *Viewport) Options() ViewportOptions {
	return v.opts
}

// RowCount returns the number of rows.
func (v *Viewport) RowCount() int {
	return v.rowCount
}

// Resize sets the outer size of the grid, header and pinned columns included.
func (v *Viewport) Resize(width, height float64) {
	v.width = math.Max(0, width)
	v.height = math.Max(0, height)
	v.clampScroll()
	v.recompute()
}

// ScrollTo moves the viewport, clamped to the scrollable extent.
func (v *Viewport) ScrollTo(top, left float64) {
	v.scrollTop = top
	v.scrollLeft = left
	v.clampScroll()
	v.recompute()
}

// ScrollBy moves the viewport by a delta.
func (v *Viewport) ScrollBy(dy, dx float64) {
	v.ScrollTo(v.scrollTop+dy, v.scrollLeft+dx)
}

// SetRowCount changes the number of rows.
func (v *Viewport) SetRowCount(n int) {
	v.rowCount = max(0, n)
	v.clampScroll()
	v.recompute()
}

// ColumnsChanged must be called after the column model was mutated.
func (v *Viewport) ColumnsChanged() {
	v.clampScroll()
	v.recompute()
}

// ScrollTop returns the vertical scroll offset.
func (v *Viewport) ScrollTop() float64 {
	return v.scrollTop
}

// ScrollLeft returns the horizontal scroll offset of the scrollable columns.
func (v *Viewport) ScrollLeft() float64 {
	return v.scrollLeft
}

// ContainerHeight is the height available to rows, below the header.
func (v *Viewport) ContainerHeight() float64 {
	return math.Max(0, v.height-v.opts.HeaderHeight)
}

// ContainerWidth is the width available to scrollable columns, between the
// pinned groups.
func (v *Viewport) ContainerWidth() float64 {
	return math.Max(0, v.width-v.cols.LeftWidth()-v.cols.RightWidth())
}

// MaxScrollTop returns the largest valid vertical scroll offset.
func (v *Viewport) MaxScrollTop() float64 {
	return math.Max(0, float64(v.rowCount)*v.opts.RowHeight-v.ContainerHeight())
}

// MaxScrollLeft returns the largest valid horizontal scroll offset.
func (v *Viewport) MaxScrollLeft() float64 {
	layout, _ := v.cols.Layout()
	return math.Max(0, layout.TotalWidth()-v.ContainerWidth())
}

// Window returns the window for the current state.
func (v *Viewport) Window() virtual.Window {
	return v.window
}

// Err returns the error of the last computation, if any.
func (v *Viewport) Err() error {
	return v.err
}

// VisibleRows returns the rows intersecting the viewport, without overscan.
func (v *Viewport) VisibleRows() virtual.Range {
	if !(v.opts.RowHeight > 0) {
		return virtual.Range{}
	}
	return virtual.ComputeRows(v.rowCount, v.opts.RowHeight, v.ContainerHeight(), v.scrollTop, 0)
}

// VisibleColumns returns the scrollable columns intersecting the viewport,
// without overscan.
func (v *Viewport) VisibleColumns() virtual.Range {
	layout, _ := v.cols.Layout()
	return virtual.ComputeColumns(layout, v.ContainerWidth(), v.scrollLeft, 0)
}

// EnsureVisible scrolls the least distance that brings row, and the
// scrollable column at index col, fully into view. A negative col leaves the
// horizontal position alone.
func (v *Viewport) EnsureVisible(row, col int) {
	top, left := v.scrollTop, v.scrollLeft

	if row >= 0 && row < v.rowCount {
		rowTop := float64(row) * v.opts.RowHeight
		rowBottom := rowTop + v.opts.RowHeight
		switch {
		case rowTop < top:
			top = rowTop
		case rowBottom > top+v.ContainerHeight():
			top = rowBottom - v.ContainerHeight()
		}
	}

	layout, _ := v.cols.Layout()
	if col >= 0 && col < layout.Len() {
		colLeft := layout.Offset(col)
		colRight := colLeft + layout.Width(col)
		switch {
		case colLeft < left:
			left = colLeft
		case colRight > left+v.ContainerWidth():
			// Keep the left edge visible when the column is wider than the viewport.
			left = math.Min(colLeft, colRight-v.ContainerWidth())
		}
	}

	if top != v.scrollTop || left != v.scrollLeft {
		v.ScrollTo(top, left)
	}
}

func (v *Viewport) clampScroll() {
	v.scrollTop = clamp(v.scrollTop, 0, v.MaxScrollTop())
	v.scrollLeft = clamp(v.scrollLeft, 0, v.MaxScrollLeft())
}

func (v *Viewport) recompute() {
	layout, err := v.cols.Layout()
	if err == nil {
		v.window, err = virtual.Compute(virtual.Params{
			TotalRows:       v.rowCount,
			RowHeight:       v.opts.RowHeight,
			ContainerWidth:  v.ContainerWidth(),
			ContainerHeight: v.ContainerHeight(),
			ScrollTop:       v.scrollTop,
			ScrollLeft:      v.scrollLeft,
			OverscanRows:    v.opts.OverscanRows,
			OverscanColumns: v.opts.OverscanColumns,
		}, layout)
	}
	if err != nil {
		if v.err == nil {
			v.log.Error().Err(err).Msg("window computation failed")
		}
		v.window = virtual.Window{}
	}
	v.err = err

	v.log.Trace().
		Int("startRow", v.window.StartRow).
		Int("endRow", v.window.EndRow).
		Int("startColumn", v.window.StartColumn).
		Int("endColumn", v.window.EndColumn).
		Uint64("revision", v.cols.Revision()).
		Msg("window")
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
