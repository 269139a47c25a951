package grid

import (
	"fmt"
	"math"

	"vgrid/internal/virtual"
)

// Placed is a visible column with its resolved width and offset. For left
// pinned and scrollable columns Offset is measured from the left edge of the
// group; for right pinned columns it is measured from the right edge.
type Placed struct {
	Column
	Index  int // position in the full column list
	Width  float64
	Offset float64
}

// Partition splits the visible columns by pinning, keeping relative order.
type Partition struct {
	Left       []Placed
	Scrollable []Placed
	Right      []Placed
}

// Columns is the column model. It owns the ordered column list and caches the
// partition and the scrollable layout until the next mutation.
type Columns struct {
	all          []Column
	defaultWidth float64
	revision     uint64

	cachedAt  uint64
	partition Partition
	layout    *virtual.ColumnLayout
	layoutErr error
	leftW     float64
	rightW    float64
}

// NewColumns validates cols and builds a model. A non-positive defaultWidth
// falls back to DefaultColumnWidth.
func NewColumns(cols []Column, defaultWidth float64) (*Columns, error) {
	if !(defaultWidth > 0) || math.IsInf(defaultWidth, 0) {
		defaultWidth = DefaultColumnWidth
	}
	c := &Columns{defaultWidth: defaultWidth}
	if err := c.Set(cols); err != nil {
		return nil, err
	}
	return c, nil
}

// Set replaces the column list.
func (c *Columns) Set(cols []Column) error {
	seen := make(map[string]struct{}, len(cols))
	for i, col := range cols {
		if col.ID == "" {
			return fmt.Errorf("column %d: empty id", i)
		}
		if _, dup := seen[col.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateColumn, col.ID)
		}
		seen[col.ID] = struct{}{}
		for _, w := range []float64{col.Width, col.MinWidth, col.MaxWidth} {
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return fmt.Errorf("%w: column %s has width %v", ErrInvalidWidth, col.ID, w)
			}
		}
	}
	c.all = append([]Column(nil), cols...)
	for i := range c.all {
		if c.all[i].Field == "" {
			c.all[i].Field = c.all[i].ID
		}
		if c.all[i].Header == "" {
			c.all[i].Header = c.all[i].ID
		}
	}
	c.touch()
	return nil
}

// All returns a copy of every column, hidden ones included.
func (c *Columns) All() []Column {
	return append([]Column(nil), c.all...)
}

// Len returns the number of columns, hidden ones included.
func (c *Columns) Len() int {
	return len(c.all)
}

// Revision increases on every mutation.
func (c *Columns) Revision() uint64 {
	return c.revision
}

// DefaultWidth returns the width used for columns without one.
func (c *Columns) DefaultWidth() float64 {
	return c.defaultWidth
}

// Index returns the position of the column with the given id, or -1.
func (c *Columns) Index(id string) int {
	for i, col := range c.all {
		if col.ID == id {
			return i
		}
	}
	return -1
}

// Width returns the effective width of the column with the given id.
func (c *Columns) Width(id string) (float64, error) {
	i := c.Index(id)
	if i < 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	return c.all[i].effectiveWidth(c.defaultWidth), nil
}

// Resize sets a column's width, clamped to its bounds.
func (c *Columns) Resize(id string, width float64) error {
	i := c.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	if !(width > 0) || math.IsInf(width, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, width)
	}
	c.all[i].Width = width
	c.all[i].Width = c.all[i].effectiveWidth(c.defaultWidth)
	c.touch()
	return nil
}

// Move relocates the column at from to position to.
func (c *Columns) Move(from, to int) error {
	n := len(c.all)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d -> %d: index out of range [0,%d)", from, to, n)
	}
	if from == to {
		return nil
	}
	col := c.all[from]
	c.all = append(c.all[:from], c.all[from+1:]...)
	c.all = append(c.all[:to], append([]Column{col}, c.all[to:]...)...)
	c.touch()
	return nil
}

// SetHidden shows or hides a column.
func (c *Columns) SetHidden(id string, hidden bool) error {
	i := c.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	if c.all[i].Hidden != hidden {
		c.all[i].Hidden = hidden
		c.touch()
	}
	return nil
}

// SetPinned pins a column to an edge or unpins it.
func (c *Columns) SetPinned(id string, pin Pin) error {
	i := c.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	if c.all[i].Pinned != pin {
		c.all[i].Pinned = pin
		c.touch()
	}
	return nil
}

// Partition returns the visible columns split by pinning.
func (c *Columns) Partition() Partition {
	c.refresh()
	return c.partition
}

// Layout returns the prefix-sum layout of the scrollable columns.
func (c *Columns) Layout() (*virtual.ColumnLayout, error) {
	c.refresh()
	return c.layout, c.layoutErr
}

// LeftWidth returns the total width of the left pinned columns.
func (c *Columns) LeftWidth() float64 {
	c.refresh()
	return c.leftW
}

// RightWidth returns the total width of the right pinned columns.
func (c *Columns) RightWidth() float64 {
	c.refresh()
	return c.rightW
}

func (c *Columns) touch() {
	c.revision++
}

func (c *Columns) refresh() {
	if c.cachedAt == c.revision && c.layout != nil {
		return
	}

	var p Partition
	for i, col := range c.all {
		if col.Hidden {
			continue
		}
		placed := Placed{Column: col, Index: i, Width: col.effectiveWidth(c.defaultWidth)}
		switch col.Pinned {
		case PinLeft:
			p.Left = append(p.Left, placed)
		case PinRight:
			p.Right = append(p.Right, placed)
		default:
			p.Scrollable = append(p.Scrollable, placed)
		}
	}

	c.leftW = 0
	for i := range p.Left {
		p.Left[i].Offset = c.leftW
		c.leftW += p.Left[i].Width
	}
	c.rightW = 0
	for i := len(p.Right) - 1; i >= 0; i-- {
		p.Right[i].Offset = c.rightW
		c.rightW += p.Right[i].Width
	}

	widths := make([]float64, len(p.Scrollable))
	for i, placed := range p.Scrollable {
		widths[i] = placed.Width
	}
	layout, err := virtual.NewColumnLayout(widths)
	if err != nil {
		layout, _ = virtual.NewColumnLayout(nil)
	}
	for i := range p.Scrollable {
		p.Scrollable[i].Offset = layout.Offset(min(i, layout.Len()))
	}

	c.partition = p
	c.layout = layout
	c.layoutErr = err
	c.cachedAt = c.revision
}
