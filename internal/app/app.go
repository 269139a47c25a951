package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"vgrid/internal/config"
	"vgrid/internal/dataset"
	"vgrid/internal/grid"
	"vgrid/internal/ui"
)

const (
	columnsPaneWidth = 30
	topBarHeight     = 1
	loadTimeout      = 2 * time.Minute
)

// tickMsg is sent to clear expired status messages.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// LoadResult is the outcome of a background load.
type LoadResult struct {
	Source dataset.Source
	Title  string
	// Query is the SQL the rows came from, if any. It replaces the title in
	// the top bar.
	Query string
}

// LoadFunc fetches a source off the UI goroutine.
type LoadFunc func(ctx context.Context) (LoadResult, error)

// loadedMsg carries a finished load back to the app.
type loadedMsg struct {
	result  LoadResult
	err     error
	elapsed time.Duration
}

// Options configure the root model.
type Options struct {
	Title string
	// Source is shown until Load, if set, completes. Nil means an empty grid.
	Source dataset.Source
	Load   LoadFunc
	Grid   config.GridConfig
	Logger zerolog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	activePane ui.Pane
	grid       ui.GridModel
	columns    ui.ColumnsModel
	statusbar  ui.StatusBarModel
	title      string
	query      string
	load       LoadFunc
	loading    bool
	log        zerolog.Logger
	width      int
	height     int
	columnsW   int
}

// NewModel creates the root app model.
func NewModel(opts Options) (Model, error) {
	src := opts.Source
	if src == nil {
		src = dataset.NewTable(nil, nil)
	}

	g, err := ui.NewGridModel(src, opts.Grid.DefaultColumnWidth, grid.ViewportOptions{
		RowHeight:       opts.Grid.RowHeight,
		HeaderHeight:    opts.Grid.HeaderHeight,
		OverscanRows:    opts.Grid.OverscanRows,
		OverscanColumns: opts.Grid.OverscanColumns,
	}, opts.Logger)
	if err != nil {
		return Model{}, err
	}
	g.SetFocused(true)

	m := Model{
		activePane: ui.PaneGrid,
		grid:       g,
		columns:    ui.NewColumnsModel(g.Columns()),
		statusbar:  ui.NewStatusBarModel(),
		title:      opts.Title,
		load:       opts.Load,
		log:        opts.Logger.With().Str("component", "app").Logger(),
	}
	m.statusbar.SetActivePane(ui.PaneGrid)
	m.syncStatus()
	return m, nil
}

// Init starts the app.
func (m Model) Init() tea.Cmd {
	if m.load != nil {
		return tea.Batch(tickCmd(), m.startLoad())
	}
	return tickCmd()
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()

	case tickMsg:
		m.statusbar.ClearExpiredMessage(time.Time(msg))
		return m, tickCmd()

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("load failed")
			m.statusbar.SetMessage("Load failed: "+msg.err.Error(), ui.MsgError)
			return m, nil
		}
		if err := m.grid.SetSource(msg.result.Source); err != nil {
			m.log.Error().Err(err).Msg("invalid source")
			m.statusbar.SetMessage(err.Error(), ui.MsgError)
			return m, nil
		}
		m.columns.Reset()
		if msg.result.Title != "" {
			m.title = msg.result.Title
		}
		m.query = msg.result.Query
		m.statusbar.SetLoadTime(msg.elapsed)
		m.statusbar.SetMessage(fmt.Sprintf("Loaded %d rows", msg.result.Source.Len()), ui.MsgSuccess)
		m.log.Info().
			Int("rows", msg.result.Source.Len()).
			Dur("elapsed", msg.elapsed).
			Msg("source loaded")

	case ui.ColumnsChangedMsg:
		m.grid.ColumnsChanged()

	case ui.ColumnErrorMsg:
		m.statusbar.SetMessage(msg.Err.Error(), ui.MsgError)

	case tea.KeyMsg:
		previewing := m.activePane == ui.PaneGrid && m.grid.IsPreviewing()

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !previewing {
				return m, tea.Quit
			}
		case "tab", "shift+tab":
			if !previewing {
				m.cycleFocus()
				return m, nil
			}
		case "ctrl+r":
			if m.load != nil && !m.loading {
				return m, m.startLoad()
			}
			return m, nil
		}

		switch m.activePane {
		case ui.PaneGrid:
			m.grid, cmd = m.grid.Update(msg)
		case ui.PaneColumns:
			m.columns, cmd = m.columns.Update(msg)
		}

	case tea.MouseMsg:
		// The grid pane sits right of the columns pane, under the top bar.
		msg.X -= m.columnsW
		msg.Y -= topBarHeight
		m.grid, cmd = m.grid.Update(msg)
	}

	m.syncStatus()
	return m, cmd
}

func (m *Model) startLoad() tea.Cmd {
	m.loading = true
	m.statusbar.SetMessage("Loading...", ui.MsgInfo)
	load := m.load
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		start := time.Now()
		res, err := load(ctx)
		if err == nil && res.Source == nil {
			err = errors.New("load returned no data")
		}
		return loadedMsg{result: res, err: err, elapsed: time.Since(start)}
	}
}

func (m *Model) syncStatus() {
	m.statusbar.SetStats(m.grid.Stats())
	m.statusbar.SetPreviewing(m.activePane == ui.PaneGrid && m.grid.IsPreviewing())
}

// View renders the full layout.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := m.title
	if m.query != "" {
		title = ui.HighlightSQL(m.query)
	}
	topBar := ui.TopBarStyle.Width(m.width).MaxHeight(1).Render(title)

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, m.columns.View(), m.grid.View())
	return lipgloss.JoinVertical(lipgloss.Left, topBar, mainArea, m.statusbar.View())
}

func (m *Model) cycleFocus() {
	if m.activePane == ui.PaneGrid {
		m.activePane = ui.PaneColumns
	} else {
		m.activePane = ui.PaneGrid
	}
	m.grid.SetFocused(m.activePane == ui.PaneGrid)
	m.columns.SetFocused(m.activePane == ui.PaneColumns)
	m.statusbar.SetActivePane(m.activePane)
}

func (m *Model) recalcLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.columnsW = min(columnsPaneWidth, m.width/3)
	availH := max(3, m.height-2) // top bar + status bar

	m.columns.SetSize(m.columnsW, availH)
	m.grid.SetSize(m.width-m.columnsW, availH)
	m.statusbar.SetWidth(m.width)
}
