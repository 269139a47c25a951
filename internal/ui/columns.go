package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"vgrid/internal/grid"
)

// resizeStep is the width change of one +/- press, in cells.
const resizeStep = 2

// ColumnsChangedMsg is sent after the columns pane mutated the column model.
type ColumnsChangedMsg struct{}

// ColumnErrorMsg reports a rejected column operation.
type ColumnErrorMsg struct {
	Err error
}

// ColumnsModel lists every column, hidden ones included, and edits the
// column model in place.
type ColumnsModel struct {
	cols    *grid.Columns
	keys    ColumnsKeyMap
	cursor  int
	offset  int
	focused bool
	width   int
	height  int
}

// NewColumnsModel creates a pane over cols.
func NewColumnsModel(cols *grid.Columns) ColumnsModel {
	return ColumnsModel{
		cols: cols,
		keys: DefaultColumnsKeyMap(),
	}
}

// SetFocused sets the focus state.
func (m *ColumnsModel) SetFocused(f bool) {
	m.focused = f
}

// Focused returns the focus state.
func (m ColumnsModel) Focused() bool {
	return m.focused
}

// SetSize sets the pane dimensions.
func (m *ColumnsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampCursor()
}

// Cursor returns the index of the highlighted column.
func (m ColumnsModel) Cursor() int {
	return m.cursor
}

// Reset moves the cursor back to the first column.
func (m *ColumnsModel) Reset() {
	m.cursor = 0
	m.offset = 0
}

// Init satisfies the tea.Model interface.
func (m ColumnsModel) Init() tea.Cmd {
	return nil
}

// Update handles key events.
func (m ColumnsModel) Update(msg tea.Msg) (ColumnsModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.cols.Len() == 0 {
		return m, nil
	}

	all := m.cols.All()
	col := all[m.cursor]

	var err error
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor--
		m.clampCursor()
		return m, nil
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor++
		m.clampCursor()
		return m, nil
	case key.Matches(keyMsg, m.keys.Toggle):
		err = m.cols.SetHidden(col.ID, !col.Hidden)
	case key.Matches(keyMsg, m.keys.Pin):
		err = m.cols.SetPinned(col.ID, col.Pinned.Next())
	case key.Matches(keyMsg, m.keys.MoveUp):
		if m.cursor == 0 {
			return m, nil
		}
		err = m.cols.Move(m.cursor, m.cursor-1)
		if err == nil {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.MoveDown):
		if m.cursor >= len(all)-1 {
			return m, nil
		}
		err = m.cols.Move(m.cursor, m.cursor+1)
		if err == nil {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Wider), key.Matches(keyMsg, m.keys.Narrower):
		w, werr := m.cols.Width(col.ID)
		if werr != nil {
			err = werr
			break
		}
		if key.Matches(keyMsg, m.keys.Wider) {
			w += resizeStep
		} else {
			w = max(resizeStep, w-resizeStep)
		}
		err = m.cols.Resize(col.ID, w)
	default:
		return m, nil
	}

	m.clampCursor()
	if err != nil {
		return m, func() tea.Msg { return ColumnErrorMsg{Err: err} }
	}
	return m, func() tea.Msg { return ColumnsChangedMsg{} }
}

func (m *ColumnsModel) clampCursor() {
	n := m.cols.Len()
	m.cursor = max(0, min(m.cursor, n-1))

	visible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m ColumnsModel) listHeight() int {
	// border (2) + title (1)
	return max(1, m.height-3)
}

// View renders the pane.
func (m ColumnsModel) View() string {
	borderStyle := UnfocusedBorder
	if m.focused {
		borderStyle = FocusedBorder
	}

	innerW := max(5, m.width-2)
	innerH := max(1, m.height-2)

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Columns"))

	all := m.cols.All()
	if len(all) == 0 {
		b.WriteString("\n")
		b.WriteString(DimText.Render("  No columns"))
	}

	end := min(len(all), m.offset+m.listHeight())
	for i := m.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderItem(all[i], i, innerW))
	}

	content := lipgloss.NewStyle().Width(innerW).Height(innerH).Render(b.String())
	return borderStyle.Width(innerW).Height(innerH).Render(content)
}

func (m ColumnsModel) renderItem(col grid.Column, i, w int) string {
	mark := "●"
	if col.Hidden {
		mark = "○"
	}
	pin := ""
	switch col.Pinned {
	case grid.PinLeft:
		pin = "«"
	case grid.PinRight:
		pin = "»"
	}
	width, _ := m.cols.Width(col.ID)
	suffix := fmt.Sprintf(" %s%3.0f", pin, width)

	// ListItem pads one cell on the left.
	nameW := max(1, w-1-2-runewidth.StringWidth(suffix))
	label := mark + " " + runewidth.FillRight(runewidth.Truncate(col.Header, nameW, "…"), nameW) + suffix

	switch {
	case i == m.cursor && m.focused:
		return ListCursorItem.Width(w).Render(label)
	case col.Hidden:
		return ListHiddenItem.Width(w).Render(label)
	case col.Pinned != grid.PinNone:
		return ListActiveItem.Foreground(ColorPinned).Width(w).Render(label)
	default:
		return ListItem.Width(w).Render(label)
	}
}
