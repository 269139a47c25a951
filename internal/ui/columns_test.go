package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgrid/internal/grid"
)

func newTestColumnsPane(t *testing.T) (ColumnsModel, *grid.Columns) {
	t.Helper()
	cols, err := grid.NewColumns(testColumns(), 16)
	require.NoError(t, err)
	m := NewColumnsModel(cols)
	m.SetFocused(true)
	m.SetSize(30, 12)
	return m, cols
}

func ids(cols *grid.Columns) []string {
	var out []string
	for _, c := range cols.All() {
		out = append(out, c.ID)
	}
	return out
}

func requireChanged(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.IsType(t, ColumnsChangedMsg{}, cmd())
}

func TestColumnsModel_ToggleHidden(t *testing.T) {
	m, cols := newTestColumnsPane(t)
	rev := cols.Revision()

	m, cmd := m.Update(runes(" "))
	requireChanged(t, cmd)
	assert.True(t, cols.All()[0].Hidden)
	assert.Greater(t, cols.Revision(), rev)

	m, cmd = m.Update(runes(" "))
	requireChanged(t, cmd)
	assert.False(t, cols.All()[0].Hidden)
}

func TestColumnsModel_CyclePin(t *testing.T) {
	m, cols := newTestColumnsPane(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.Cursor())

	want := []grid.Pin{grid.PinLeft, grid.PinRight, grid.PinNone}
	for _, pin := range want {
		var cmd tea.Cmd
		m, cmd = m.Update(runes("p"))
		requireChanged(t, cmd)
		assert.Equal(t, pin, cols.All()[1].Pinned)
	}
}

func TestColumnsModel_Move(t *testing.T) {
	m, cols := newTestColumnsPane(t)

	m, cmd := m.Update(runes("K"))
	assert.Nil(t, cmd, "first column cannot move up")

	m, cmd = m.Update(runes("J"))
	requireChanged(t, cmd)
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, ids(cols))
	assert.Equal(t, 1, m.Cursor())

	m, _ = m.Update(runes("K"))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(cols))
	assert.Equal(t, 0, m.Cursor())

	for range 4 {
		m, _ = m.Update(runes("j"))
	}
	_, cmd = m.Update(runes("J"))
	assert.Nil(t, cmd, "last column cannot move down")
}

func TestColumnsModel_Resize(t *testing.T) {
	m, cols := newTestColumnsPane(t)

	m, cmd := m.Update(runes("+"))
	requireChanged(t, cmd)
	w, err := cols.Width("a")
	require.NoError(t, err)
	assert.Equal(t, 8.0, w)

	for range 10 {
		m, _ = m.Update(runes("-"))
	}
	w, err = cols.Width("a")
	require.NoError(t, err)
	assert.Equal(t, float64(resizeStep), w)
}

func TestColumnsModel_ResizeRespectsBounds(t *testing.T) {
	cols, err := grid.NewColumns([]grid.Column{{ID: "x", Width: 10, MaxWidth: 11}}, 16)
	require.NoError(t, err)
	m := NewColumnsModel(cols)
	m.SetFocused(true)

	m, _ = m.Update(runes("+"))
	w, _ := cols.Width("x")
	assert.Equal(t, 11.0, w)
}

func TestColumnsModel_Unfocused(t *testing.T) {
	m, cols := newTestColumnsPane(t)
	m.SetFocused(false)

	_, cmd := m.Update(runes(" "))
	assert.Nil(t, cmd)
	assert.False(t, cols.All()[0].Hidden)
}

func TestColumnsModel_View(t *testing.T) {
	m, cols := newTestColumnsPane(t)
	require.NoError(t, cols.SetHidden("c", true))

	view := plain(m.View())
	assert.Contains(t, view, "Columns")
	assert.Contains(t, view, "● Alpha")
	assert.Contains(t, view, "○ Charlie")
	assert.Contains(t, view, "«")
	assert.Contains(t, view, "»")
}
