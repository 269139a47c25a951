package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"vgrid/internal/dataset"
	"vgrid/internal/grid"
	"vgrid/internal/virtual"
)

// wheelRows is how many rows one mouse wheel notch scrolls.
const wheelRows = 3

// GridStats summarizes what the grid currently materializes.
type GridStats struct {
	Window       virtual.Window
	TotalRows    int
	TotalColumns int
	CursorRow    int
	CursorColumn string
	ScrollTop    float64
	ScrollLeft   float64
	// VisibleRows and VisibleColumns are the strictly visible ranges, without
	// overscan.
	VisibleRows    virtual.Range
	VisibleColumns virtual.Range
	// Cells is the number of cells rendered per frame, pinned columns included.
	Cells int
}

// GridModel renders the window of a dataset.Source computed by a
// grid.Viewport. Only rows and columns inside the window are materialized.
type GridModel struct {
	src  dataset.Source
	cols *grid.Columns
	vp   *grid.Viewport
	keys GridKeyMap
	log  zerolog.Logger

	cursorRow int
	cursorID  string
	focused   bool
	width     int
	height    int

	previewing bool
	preview    viewport.Model
}

// NewGridModel builds a grid over src. Column widths without a value fall
// back to defaultWidth.
func NewGridModel(src dataset.Source, defaultWidth float64, opts grid.ViewportOptions, log zerolog.Logger) (GridModel, error) {
	cols, err := grid.NewColumns(src.Columns(), defaultWidth)
	if err != nil {
		return GridModel{}, fmt.Errorf("failed to build columns: %w", err)
	}
	m := GridModel{
		src:  src,
		cols: cols,
		vp:   grid.NewViewport(cols, src.Len(), opts, log),
		keys: DefaultGridKeyMap(),
		log:  log.With().Str("component", "grid").Logger(),
	}
	m.resetCursor()
	return m, nil
}

// SetSource swaps the data, keeping the column model instance so that
// panes sharing it stay in sync.
func (m *GridModel) SetSource(src dataset.Source) error {
	if err := m.cols.Set(src.Columns()); err != nil {
		return fmt.Errorf("failed to set columns: %w", err)
	}
	m.src = src
	m.previewing = false
	m.vp.SetRowCount(src.Len())
	m.vp.ScrollTo(0, 0)
	m.vp.ColumnsChanged()
	m.resetCursor()
	m.log.Debug().Int("rows", src.Len()).Int("columns", m.cols.Len()).Msg("source changed")
	return nil
}

// Columns returns the column model.
func (m GridModel) Columns() *grid.Columns {
	return m.cols
}

// Viewport returns the viewport controller.
func (m GridModel) Viewport() *grid.Viewport {
	return m.vp
}

// SetFocused sets focus state.
func (m *GridModel) SetFocused(f bool) {
	m.focused = f
}

// Focused returns focus state.
func (m GridModel) Focused() bool {
	return m.focused
}

// IsPreviewing returns whether the cell preview is open.
func (m GridModel) IsPreviewing() bool {
	return m.previewing
}

// SetSize sets the outer pane size, border included.
func (m *GridModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	innerW, innerH := m.innerSize()
	m.vp.Resize(float64(innerW), float64(innerH))
	m.preview.Width = innerW
	m.preview.Height = max(1, innerH-2)
	m.ensureCursorVisible()
}

// ColumnsChanged must be called after the column model was mutated.
func (m *GridModel) ColumnsChanged() {
	m.vp.ColumnsChanged()
	if m.cols.Index(m.cursorID) < 0 || m.displayIndex(m.cursorID) < 0 {
		m.resetCursorColumn()
	}
	m.ensureCursorVisible()
}

// Cursor returns the cursor row and column id.
func (m GridModel) Cursor() (int, string) {
	return m.cursorRow, m.cursorID
}

// Stats returns the current window statistics.
func (m GridModel) Stats() GridStats {
	win := m.vp.Window()
	part := m.cols.Partition()
	return GridStats{
		Window:         win,
		TotalRows:      m.vp.RowCount(),
		TotalColumns:   len(part.Left) + len(part.Scrollable) + len(part.Right),
		CursorRow:      m.cursorRow,
		CursorColumn:   m.cursorID,
		ScrollTop:      m.vp.ScrollTop(),
		ScrollLeft:     m.vp.ScrollLeft(),
		VisibleRows:    m.vp.VisibleRows(),
		VisibleColumns: m.vp.VisibleColumns(),
		Cells:          win.Rows().Len() * (win.Columns().Len() + len(part.Left) + len(part.Right)),
	}
}

// Init satisfies tea.Model.
func (m GridModel) Init() tea.Cmd {
	return nil
}

// Update handles key and mouse events.
func (m GridModel) Update(msg tea.Msg) (GridModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.previewing {
			if key.Matches(msg, m.keys.Close) {
				m.previewing = false
				return m, nil
			}
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		m.updateNav(msg)
	case tea.MouseMsg:
		if m.previewing || msg.Action != tea.MouseActionPress {
			return m, nil
		}
		rh := m.vp.Options().RowHeight
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.vp.ScrollBy(-wheelRows*rh, 0)
		case tea.MouseButtonWheelDown:
			m.vp.ScrollBy(wheelRows*rh, 0)
		case tea.MouseButtonWheelLeft:
			m.vp.ScrollBy(0, -math.Floor(m.vp.ContainerWidth()/4))
		case tea.MouseButtonWheelRight:
			m.vp.ScrollBy(0, math.Floor(m.vp.ContainerWidth()/4))
		case tea.MouseButtonLeft:
			m.clickCell(msg.X-1, msg.Y-1)
		}
	}
	return m, nil
}

func (m *GridModel) updateNav(msg tea.KeyMsg) {
	order := m.displayOrder()
	rows := m.vp.RowCount()
	col := m.displayIndex(m.cursorID)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursorRow--
	case key.Matches(msg, m.keys.Down):
		m.cursorRow++
	case key.Matches(msg, m.keys.PageUp):
		m.cursorRow -= m.pageRows()
	case key.Matches(msg, m.keys.PageDown):
		m.cursorRow += m.pageRows()
	case key.Matches(msg, m.keys.Home):
		m.cursorRow = 0
	case key.Matches(msg, m.keys.End):
		m.cursorRow = rows - 1
	case key.Matches(msg, m.keys.Left):
		col--
	case key.Matches(msg, m.keys.Right):
		col++
	case key.Matches(msg, m.keys.FirstColumn):
		col = 0
	case key.Matches(msg, m.keys.LastColumn):
		col = len(order) - 1
	case key.Matches(msg, m.keys.ScrollLeft):
		m.vp.ScrollBy(0, -math.Floor(m.vp.ContainerWidth()/2))
		return
	case key.Matches(msg, m.keys.ScrollRight):
		m.vp.ScrollBy(0, math.Floor(m.vp.ContainerWidth()/2))
		return
	case key.Matches(msg, m.keys.Preview):
		m.openPreview()
		return
	default:
		return
	}

	m.cursorRow = max(0, min(m.cursorRow, rows-1))
	if len(order) > 0 {
		m.cursorID = order[max(0, min(col, len(order)-1))].ID
	}
	m.ensureCursorVisible()
}

// clickCell moves the cursor to the cell under x, y, measured inside the
// border. Clicks on the header or below the last row are ignored.
func (m *GridModel) clickCell(x, y int) {
	opts := m.vp.Options()
	headerLines := max(0, int(opts.HeaderHeight))
	if x < 0 || y < headerLines || !(opts.RowHeight > 0) {
		return
	}
	row := int(math.Floor((m.vp.ScrollTop() + float64(y-headerLines)) / opts.RowHeight))
	if !m.vp.VisibleRows().Contains(row) {
		return
	}
	id, ok := m.columnAt(float64(x))
	if !ok {
		return
	}
	m.cursorRow = row
	m.cursorID = id
	m.ensureCursorVisible()
}

// columnAt returns the visible column drawn at x.
func (m GridModel) columnAt(x float64) (string, bool) {
	part := m.cols.Partition()
	leftW := m.cols.LeftWidth()
	containerW := m.vp.ContainerWidth()

	switch {
	case x < leftW:
		for _, p := range part.Left {
			if x < p.Offset+p.Width {
				return p.ID, true
			}
		}
	case x < leftW+containerW:
		layout, err := m.cols.Layout()
		if err != nil {
			return "", false
		}
		if i := layout.IndexAt(m.vp.ScrollLeft() + x - leftW); i < len(part.Scrollable) {
			return part.Scrollable[i].ID, true
		}
	default:
		// Right pinned offsets run from the right edge of the group.
		rx := x - leftW - containerW
		rightW := m.cols.RightWidth()
		for _, p := range part.Right {
			if rx < rightW-p.Offset {
				return p.ID, true
			}
		}
	}
	return "", false
}

func (m *GridModel) openPreview() {
	if m.vp.RowCount() == 0 || m.cursorID == "" {
		return
	}
	col := m.cols.All()[m.cols.Index(m.cursorID)]
	v := m.src.Value(m.cursorRow, col.Field)

	text := NullDisplay
	if s, ok := v.(string); ok {
		text = s
	} else if v != nil {
		text = FormatValue(v, col.Kind)
	}

	innerW, innerH := m.innerSize()
	m.preview = viewport.New(innerW, max(1, innerH-2))
	m.preview.SetContent(ansi.Wrap(text, innerW, ""))
	m.previewing = true
}

func (m GridModel) pageRows() int {
	rh := m.vp.Options().RowHeight
	if !(rh > 0) {
		return 1
	}
	return max(1, int(m.vp.ContainerHeight()/rh))
}

func (m GridModel) innerSize() (int, int) {
	return max(0, m.width-2), max(0, m.height-2)
}

// displayOrder lists the visible columns left to right as drawn.
func (m GridModel) displayOrder() []grid.Placed {
	part := m.cols.Partition()
	order := make([]grid.Placed, 0, len(part.Left)+len(part.Scrollable)+len(part.Right))
	order = append(order, part.Left...)
	order = append(order, part.Scrollable...)
	return append(order, part.Right...)
}

func (m GridModel) displayIndex(id string) int {
	for i, p := range m.displayOrder() {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *GridModel) resetCursor() {
	m.cursorRow = 0
	m.resetCursorColumn()
}

func (m *GridModel) resetCursorColumn() {
	m.cursorID = ""
	if order := m.displayOrder(); len(order) > 0 {
		m.cursorID = order[0].ID
	}
}

// ensureCursorVisible scrolls the cursor cell into view. Pinned columns are
// always visible, so only the row is considered for them.
func (m *GridModel) ensureCursorVisible() {
	col := -1
	for i, p := range m.cols.Partition().Scrollable {
		if p.ID == m.cursorID {
			col = i
			break
		}
	}
	m.vp.EnsureVisible(m.cursorRow, col)
}

// View renders the grid.
func (m GridModel) View() string {
	borderStyle := UnfocusedBorder
	if m.focused {
		borderStyle = FocusedBorder
	}

	innerW, innerH := m.innerSize()
	var content string
	switch {
	case m.previewing:
		content = m.renderPreview(innerW)
	case m.vp.Err() != nil:
		content = ErrorText.Render(m.vp.Err().Error())
	case len(m.displayOrder()) == 0:
		content = DimText.Render("No columns to display")
	default:
		content = m.renderTable(innerW, innerH)
	}

	return borderStyle.Width(innerW).Height(innerH).MaxHeight(innerH + 2).Render(content)
}

func (m GridModel) renderPreview(w int) string {
	var b strings.Builder
	title := HeaderStyle.Render(fmt.Sprintf("Preview: %s [row %d]", m.cursorID, m.cursorRow+1))
	hint := DimText.Render("j/k scroll | Esc close")
	b.WriteString(ansi.Truncate(title+"  "+hint, w, ""))
	b.WriteString("\n")
	b.WriteString(DimText.Render(strings.Repeat("─", w)))
	b.WriteString("\n")
	b.WriteString(m.preview.View())
	return b.String()
}

// renderTable materializes the window. The scrollable block is rendered from
// OffsetX, translated by OffsetX-scrollLeft and cut to the container; rows
// are rendered from OffsetY and cut the same way vertically.
func (m GridModel) renderTable(w, h int) string {
	win := m.vp.Window()
	part := m.cols.Partition()
	opts := m.vp.Options()

	headerLines := max(0, int(opts.HeaderHeight))
	rowLines := max(1, int(math.Round(opts.RowHeight)))
	containerW := int(m.vp.ContainerWidth())
	containerH := int(m.vp.ContainerHeight())

	var scrollable []grid.Placed
	if win.EndColumn <= len(part.Scrollable) {
		scrollable = part.Scrollable[win.StartColumn:win.EndColumn]
	}
	skipX := int(math.Floor(m.vp.ScrollLeft() - win.OffsetX))

	lines := make([]string, 0, h)
	if headerLines > 0 {
		lines = append(lines, m.line(part, scrollable, skipX, containerW, w, m.headerCell))
	}
	if headerLines > 1 {
		lines = append(lines, m.line(part, scrollable, skipX, containerW, w, ruleCell))
	}
	for len(lines) < headerLines {
		lines = append(lines, "")
	}

	body := make([]string, 0, win.Rows().Len()*rowLines)
	for _, r := range win.Rows().Indices() {
		body = append(body, m.line(part, scrollable, skipX, containerW, w, func(p grid.Placed) string {
			return m.bodyCell(r, p)
		}))
		for i := 1; i < rowLines; i++ {
			body = append(body, m.line(part, scrollable, skipX, containerW, w, blankCell))
		}
	}

	skipY := max(0, int(math.Floor(m.vp.ScrollTop()-win.OffsetY)))
	if skipY > len(body) {
		skipY = len(body)
	}
	body = body[skipY:]
	if len(body) > containerH {
		body = body[:containerH]
	}

	return strings.Join(append(lines, body...), "\n")
}

// line joins the pinned groups and the clipped scrollable block.
func (m GridModel) line(part grid.Partition, scrollable []grid.Placed, skipX, containerW, maxW int, cell func(grid.Placed) string) string {
	var b strings.Builder
	for _, p := range part.Left {
		b.WriteString(cell(p))
	}

	var s strings.Builder
	for _, p := range scrollable {
		s.WriteString(cell(p))
	}
	mid := ansi.Cut(s.String(), skipX, skipX+containerW)
	if pad := containerW - ansi.StringWidth(mid); pad > 0 {
		mid += strings.Repeat(" ", pad)
	}
	b.WriteString(mid)

	for _, p := range part.Right {
		b.WriteString(cell(p))
	}
	return ansi.Truncate(b.String(), maxW, "")
}

func (m GridModel) headerCell(p grid.Placed) string {
	style := HeaderStyle
	if p.Pinned != grid.PinNone {
		style = PinnedHeaderStyle
	}
	return cellBox(p.Header, cellWidth(p), p.Align, style)
}

func (m GridModel) bodyCell(row int, p grid.Placed) string {
	v := m.src.Value(row, p.Field)
	text := FormatValue(v, p.Kind)
	style := valueStyle(v, text, p.Kind)
	if m.focused && row == m.cursorRow && p.ID == m.cursorID {
		style = CellSelected
	}
	return cellBox(text, cellWidth(p), p.Align, style)
}

func ruleCell(p grid.Placed) string {
	w := cellWidth(p)
	if w <= 0 {
		return ""
	}
	return DividerStyle.Render(strings.Repeat("─", w-1) + "┼")
}

func blankCell(p grid.Placed) string {
	return cellBox("", cellWidth(p), grid.AlignLeft, CellNormal)
}

func cellWidth(p grid.Placed) int {
	return int(math.Round(p.Width))
}
