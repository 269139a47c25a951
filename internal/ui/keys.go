package ui

import "github.com/charmbracelet/bubbles/key"

// GridKeyMap holds the grid navigation bindings.
type GridKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	FirstColumn key.Binding
	LastColumn  key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Preview     key.Binding
	Close       key.Binding
}

// DefaultGridKeyMap returns the default grid bindings.
func DefaultGridKeyMap() GridKeyMap {
	return GridKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
		FirstColumn: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "first column")),
		LastColumn:  key.NewBinding(key.WithKeys("$"), key.WithHelp("$", "last column")),
		ScrollLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "scroll half left")),
		ScrollRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "scroll half right")),
		Preview:     key.NewBinding(key.WithKeys("v", "enter"), key.WithHelp("v", "preview cell")),
		Close:       key.NewBinding(key.WithKeys("esc", "v", "q"), key.WithHelp("esc", "close")),
	}
}

// ColumnsKeyMap holds the column pane bindings.
type ColumnsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Pin      key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Wider    key.Binding
	Narrower key.Binding
}

// DefaultColumnsKeyMap returns the default column pane bindings.
func DefaultColumnsKeyMap() ColumnsKeyMap {
	return ColumnsKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "show/hide")),
		Pin:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle pin")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Wider:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "wider")),
		Narrower: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrower")),
	}
}
