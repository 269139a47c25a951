package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgrid/internal/config"
	"vgrid/internal/dataset"
	"vgrid/internal/ui"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Grid = config.Default().Grid
	opts.Logger = zerolog.Nop()
	m, err := NewModel(opts)
	require.NoError(t, err)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

// press sends a key and feeds any resulting message back, the way the
// runtime would for a synchronous command.
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	out, ok := next.(Model)
	require.True(t, ok)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			out = update(t, out, msg)
		}
	}
	return out
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m, err := NewModel(Options{Grid: config.Default().Grid, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Equal(t, "Loading...", m.View())
}

func TestModel_RendersDemo(t *testing.T) {
	m := newTestModel(t, Options{Title: "demo", Source: dataset.NewEmployees(50000, 1)})
	view := ansi.Strip(m.View())

	assert.Contains(t, view, "demo")
	assert.Contains(t, view, "Columns")
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "row 1/50,000")

	stats := m.grid.Stats()
	assert.Equal(t, 0, stats.Window.StartRow)
	// 30 lines - top bar - status bar - border - two header lines = 24 rows.
	assert.Equal(t, 24+5, stats.Window.EndRow)
}

func TestModel_FocusCycle(t *testing.T) {
	m := newTestModel(t, Options{Source: dataset.NewEmployees(10, 1)})
	require.Equal(t, ui.PaneGrid, m.activePane)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ui.PaneColumns, m.activePane)
	assert.True(t, m.columns.Focused())
	assert.False(t, m.grid.Focused())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, ui.PaneGrid, m.activePane)
	assert.True(t, m.grid.Focused())
}

func TestModel_ColumnChangesReachGrid(t *testing.T) {
	m := newTestModel(t, Options{Source: dataset.NewEmployees(10, 1)})
	before := len(m.grid.Columns().Partition().Left)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, key(" "))

	assert.True(t, m.grid.Columns().All()[0].Hidden)
	assert.Len(t, m.grid.Columns().Partition().Left, before-1)
	_, col := m.grid.Cursor()
	assert.NotEqual(t, "id", col)
}

func TestModel_NavigationUpdatesStatus(t *testing.T) {
	m := newTestModel(t, Options{Source: dataset.NewEmployees(50000, 1)})
	m = update(t, m, key("G"))

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "row 50,000/50,000")
	assert.Equal(t, 50000, m.grid.Stats().Window.EndRow)
}

func TestModel_ClickSelectsGridCell(t *testing.T) {
	m := newTestModel(t, Options{Source: dataset.NewEmployees(100, 1)})

	// The grid pane starts after the 30 cell columns pane and the top bar;
	// inside its border the id column spans [0,8) and name [8,25).
	m = update(t, m, tea.MouseMsg{X: 30 + 1 + 10, Y: 1 + 1 + 2 + 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	row, col := m.grid.Cursor()
	assert.Equal(t, 4, row)
	assert.Equal(t, "name", col)
}

func TestModel_Load(t *testing.T) {
	load := func(ctx context.Context) (LoadResult, error) {
		return LoadResult{
			Source: dataset.NewEmployees(42, 7),
			Title:  "employees",
			Query:  "SELECT * FROM employees",
		}, nil
	}
	m := newTestModel(t, Options{Title: "connecting", Load: load})

	cmd := m.startLoad()
	assert.True(t, m.loading)
	m = update(t, m, cmd())

	assert.False(t, m.loading)
	assert.Equal(t, 42, m.grid.Viewport().RowCount())
	assert.Equal(t, "employees", m.title)
	assert.Equal(t, "Loaded 42 rows", m.statusbar.Message())
	assert.Contains(t, ansi.Strip(m.View()), "SELECT * FROM employees")
}

func TestModel_LoadError(t *testing.T) {
	load := func(ctx context.Context) (LoadResult, error) {
		return LoadResult{}, errors.New("connection refused")
	}
	m := newTestModel(t, Options{Load: load})
	m = update(t, m, m.startLoad()())

	assert.Equal(t, "Load failed: connection refused", m.statusbar.Message())
	assert.Zero(t, m.grid.Viewport().RowCount())
}

func TestModel_LoadWithoutSource(t *testing.T) {
	load := func(ctx context.Context) (LoadResult, error) {
		return LoadResult{}, nil
	}
	m := newTestModel(t, Options{Load: load})
	m = update(t, m, m.startLoad()())
	assert.Contains(t, m.statusbar.Message(), "no data")
}

func TestModel_TickExpiresMessages(t *testing.T) {
	m := newTestModel(t, Options{Source: dataset.NewEmployees(1, 1)})
	m.statusbar.SetMessage("done", ui.MsgSuccess)

	m = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, "done", m.statusbar.Message())

	m = update(t, m, tickMsg(time.Now().Add(time.Minute)))
	assert.Empty(t, m.statusbar.Message())
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, Options{Source: dataset.NewEmployees(1, 1)})

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = update(t, m, key("v"))
	require.True(t, m.grid.IsPreviewing())
	m = update(t, m, key("q"))
	assert.False(t, m.grid.IsPreviewing(), "q closes the preview instead of quitting")
}
