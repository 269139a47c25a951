package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PickerItem is one choice in a PickerModel.
type PickerItem struct {
	Title  string
	Detail string
}

// PickerModel is a standalone program that lets the user choose one item
// from a filterable list.
type PickerModel struct {
	title   string
	items   []PickerItem
	filter  textinput.Model
	matches []int
	cursor  int
	chosen  int
	done    bool
	width   int
	height  int
}

// NewPickerModel creates a picker over items.
func NewPickerModel(title string, items []PickerItem) PickerModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.PromptStyle = FilterLabel
	ti.TextStyle = FilterInput
	ti.Focus()

	m := PickerModel{
		title:  title,
		items:  items,
		filter: ti,
		chosen: -1,
	}
	m.applyFilter()
	return m
}

// Choice returns the index of the chosen item, if any.
func (m PickerModel) Choice() (int, bool) {
	return m.chosen, m.done && m.chosen >= 0
}

// Init satisfies tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key events.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.chosen = -1
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.done = true
			m.chosen = m.matches[m.cursor]
			return m, tea.Quit
		}
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *PickerModel) applyFilter() {
	query := m.filter.Value()
	m.matches = make([]int, 0, len(m.items))
	for i, it := range m.items {
		if query == "" || FuzzyMatch(it.Title, query) {
			m.matches = append(m.matches, i)
		}
	}
	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
}

// View renders the picker.
func (m PickerModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString("  " + m.filter.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(DimText.Render("    No matches"))
		b.WriteString("\n")
	}

	// title (3) + filter (2) + footer (2)
	visible := len(m.matches)
	if m.height > 0 {
		visible = min(visible, max(1, m.height-7))
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < start+visible && i < len(m.matches); i++ {
		it := m.items[m.matches[i]]
		display := it.Title
		if it.Detail != "" {
			display += DimText.Render("  " + it.Detail)
		}
		if i == m.cursor {
			b.WriteString(AccentText.Bold(true).Render("  ▸ " + display))
		} else {
			b.WriteString("    " + display)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DimText.Render(fmt.Sprintf("  %d/%d | Enter select | Esc cancel", len(m.matches), len(m.items))))
	b.WriteString("\n")
	return b.String()
}

// FuzzyMatch reports whether target matches query, first as a
// case-insensitive regular expression and otherwise as an in-order
// subsequence.
func FuzzyMatch(target, query string) bool {
	re, err := regexp.Compile("(?i)" + query)
	if err == nil {
		return re.MatchString(target)
	}
	target = strings.ToLower(target)
	query = strings.ToLower(query)
	qi := 0
	for i := 0; i < len(target) && qi < len(query); i++ {
		if target[i] == query[qi] {
			qi++
		}
	}
	return qi == len(query)
}
