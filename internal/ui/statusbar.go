package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// MessageType represents the type of status message.
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgSuccess
	MsgError
)

// messageTTL is how long info and success messages stay on screen.
const messageTTL = 3 * time.Second

// Pane identifies a focusable pane.
type Pane int

const (
	PaneGrid Pane = iota
	PaneColumns
)

// StatusBarModel is the context-aware status bar at the bottom.
type StatusBarModel struct {
	message     string
	messageType MessageType
	messageTime time.Time
	activePane  Pane
	previewing  bool
	stats       GridStats
	loadTime    time.Duration
	width       int
}

// NewStatusBarModel creates a new status bar.
func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{}
}

// SetWidth sets the status bar width.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a status message.
func (m *StatusBarModel) SetMessage(msg string, t MessageType) {
	m.message = msg
	m.messageType = t
	m.messageTime = time.Now()
}

// Message returns the current status message.
func (m StatusBarModel) Message() string {
	return m.message
}

// SetActivePane sets which pane is focused.
func (m *StatusBarModel) SetActivePane(p Pane) {
	m.activePane = p
}

// SetPreviewing sets whether the grid shows a cell preview.
func (m *StatusBarModel) SetPreviewing(p bool) {
	m.previewing = p
}

// SetStats updates the window statistics.
func (m *StatusBarModel) SetStats(s GridStats) {
	m.stats = s
}

// SetLoadTime records how long the data took to load.
func (m *StatusBarModel) SetLoadTime(d time.Duration) {
	m.loadTime = d
}

// ClearExpiredMessage clears info and success messages older than
// messageTTL. Errors stay until replaced.
func (m *StatusBarModel) ClearExpiredMessage(now time.Time) {
	if m.message != "" && m.messageType != MsgError && now.Sub(m.messageTime) > messageTTL {
		m.message = ""
	}
}

// View renders the status bar.
func (m StatusBarModel) View() string {
	hints := m.contextHints()
	right := m.windowInfo()

	if m.message != "" {
		var msgStyle lipgloss.Style
		switch m.messageType {
		case MsgError:
			msgStyle = StatusErrorStyle
		case MsgSuccess:
			msgStyle = StatusSuccessStyle
		default:
			msgStyle = StatusBarStyle
		}
		hints = msgStyle.Render(m.message)
	}

	w := max(20, m.width)
	if avail := w - 2 - lipgloss.Width(right) - 1; lipgloss.Width(hints) > avail {
		hints = ansi.Truncate(hints, max(0, avail), "…")
	}
	gap := w - lipgloss.Width(hints) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	line := hints + strings.Repeat(" ", gap) + right
	return StatusBarStyle.Width(w).MaxHeight(1).Render(line)
}

func (m StatusBarModel) windowInfo() string {
	s := m.stats
	if s.TotalRows == 0 {
		return "0 rows"
	}
	parts := []string{
		fmt.Sprintf("row %s/%s", printer.Sprintf("%d", s.CursorRow+1), printer.Sprintf("%d", s.TotalRows)),
		fmt.Sprintf("view r[%d,%d) c[%d,%d)", s.VisibleRows.Start, s.VisibleRows.End, s.VisibleColumns.Start, s.VisibleColumns.End),
		fmt.Sprintf("window r[%d,%d) c[%d,%d)", s.Window.StartRow, s.Window.EndRow, s.Window.StartColumn, s.Window.EndColumn),
		fmt.Sprintf("%d cells", s.Cells),
	}
	if m.loadTime > 0 {
		parts = append(parts, m.loadTime.Round(time.Millisecond).String())
	}
	return strings.Join(parts, " | ")
}

func (m StatusBarModel) contextHints() string {
	if m.previewing {
		return "j/k Scroll | Esc Close"
	}

	switch m.activePane {
	case PaneColumns:
		return "Space Show/hide | p Pin | K/J Move | +/- Width | Tab Switch pane"
	default:
		return "Arrows Navigate | g/G Top/bottom | 0/$ First/last col | v Preview | Tab Switch pane"
	}
}
