package grid

import (
	"fmt"
	"strings"
)

// DefaultColumnWidth is used for columns that do not declare a width.
const DefaultColumnWidth = 150

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for column model operations.
const (
	ErrUnknownColumn   = constError("unknown column")
	ErrDuplicateColumn = constError("duplicate column id")
	ErrInvalidWidth    = constError("invalid column width")
)

// Pin says which edge, if any, a column is fixed to.
type Pin int

const (
	PinNone Pin = iota
	PinLeft
	PinRight
)

// String returns the config spelling of p.
func (p Pin) String() string {
	switch p {
	case PinLeft:
		return "left"
	case PinRight:
		return "right"
	default:
		return ""
	}
}

// Next cycles none -> left -> right -> none.
func (p Pin) Next() Pin {
	switch p {
	case PinNone:
		return PinLeft
	case PinLeft:
		return PinRight
	default:
		return PinNone
	}
}

// ParsePin parses "left", "right", or "" / "none".
func ParsePin(s string) (Pin, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "false":
		return PinNone, nil
	case "left":
		return PinLeft, nil
	case "right":
		return PinRight, nil
	default:
		return PinNone, fmt.Errorf("invalid pin %q", s)
	}
}

// Align is the horizontal alignment of cell content.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Kind hints how values of a column are formatted.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindDecimal
	KindCurrency
	KindBool
	KindDate
	KindStatus
)

// Column describes one column of the grid. Width, MinWidth and MaxWidth are
// in the host's unit; zero means unset.
type Column struct {
	ID       string
	Field    string
	Header   string
	Width    float64
	MinWidth float64
	MaxWidth float64
	Pinned   Pin
	Hidden   bool
	Align    Align
	Kind     Kind
}

// effectiveWidth resolves the default and clamps to the column's bounds.
func (c Column) effectiveWidth(defaultWidth float64) float64 {
	w := c.Width
	if w <= 0 {
		w = defaultWidth
	}
	if c.MinWidth > 0 && w < c.MinWidth {
		w = c.MinWidth
	}
	if c.MaxWidth > 0 && w > c.MaxWidth {
		w = c.MaxWidth
	}
	return w
}
