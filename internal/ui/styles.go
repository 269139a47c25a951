package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorAccent  = lipgloss.Color("#4ecca3")
	ColorPinned  = lipgloss.Color("#f0a500")
	ColorDim     = lipgloss.Color("#555555")
	ColorSuccess = lipgloss.Color("#4ecca3")
	ColorError   = lipgloss.Color("#e94560")
	ColorWarn    = lipgloss.Color("#f0a500")
)

// Border styles
var (
	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent)

	UnfocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim)
)

// Text styles
var (
	AccentText  = lipgloss.NewStyle().Foreground(ColorAccent)
	DimText     = lipgloss.NewStyle().Foreground(ColorDim)
	ErrorText   = lipgloss.NewStyle().Foreground(ColorError)
	SuccessText = lipgloss.NewStyle().Foreground(ColorSuccess)
	PinnedText  = lipgloss.NewStyle().Foreground(ColorPinned)
	NullText    = lipgloss.NewStyle().Foreground(ColorDim).Italic(true)
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	PinnedHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorPinned).
				Bold(true)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorDim)
)

// Table cell styles
var (
	CellNormal   = lipgloss.NewStyle()
	CellSelected = lipgloss.NewStyle().Reverse(true)
	DividerStyle = lipgloss.NewStyle().Foreground(ColorDim)
)

// Status cell colors, keyed by the rendered value.
var statusStyles = map[string]lipgloss.Style{
	"Active":   lipgloss.NewStyle().Foreground(ColorSuccess),
	"Inactive": lipgloss.NewStyle().Foreground(ColorError),
	"On Leave": lipgloss.NewStyle().Foreground(ColorWarn),
}

// Status bar
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#cccccc")).
			Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorError).
				Padding(0, 1)

	StatusSuccessStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorSuccess).
				Padding(0, 1)
)

// List styles, shared by the columns pane and the pickers.
var (
	ListItem       = lipgloss.NewStyle().PaddingLeft(1)
	ListActiveItem = lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(ColorAccent).
			Bold(true)
	ListCursorItem = lipgloss.NewStyle().
			PaddingLeft(1).
			Reverse(true)
	ListHiddenItem = lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(ColorDim).
			Strikethrough(true)
)

// Filter styles
var (
	FilterInput = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
	FilterLabel = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// TopBarStyle renders the title line above the panes.
var TopBarStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("#333333")).
	Foreground(lipgloss.Color("#cccccc")).
	Padding(0, 1)
