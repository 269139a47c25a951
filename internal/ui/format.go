package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"vgrid/internal/dataset"
	"vgrid/internal/grid"
)

// NullDisplay is shown for nil cell values.
const NullDisplay = "NULL"

var printer = message.NewPrinter(language.English)

// FormatValue renders a cell value as single-line text for a column kind.
func FormatValue(v dataset.Value, kind grid.Kind) string {
	if v == nil {
		return NullDisplay
	}

	switch kind {
	case grid.KindInteger:
		if n, ok := asInt(v); ok {
			return printer.Sprintf("%d", n)
		}
	case grid.KindDecimal:
		if f, ok := asFloat(v); ok {
			return groupedFloat(f, 2)
		}
	case grid.KindCurrency:
		if f, ok := asFloat(v); ok {
			if f < 0 {
				return "-$" + groupedFloat(-f, 2)
			}
			return "$" + groupedFloat(f, 2)
		}
	case grid.KindDate:
		if t, ok := v.(time.Time); ok {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
				return t.Format(time.DateOnly)
			}
			return t.Format(time.DateTime)
		}
	}

	switch x := v.(type) {
	case string:
		return sanitizeCell(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return sanitizeCell(fmt.Sprint(x))
	}
}

// groupedFloat formats f with thousand separators in the integer part.
func groupedFloat(f float64, precision int) string {
	s := strconv.FormatFloat(math.Abs(f), 'f', precision, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return strconv.FormatFloat(f, 'f', precision, 64)
	}
	out := printer.Sprintf("%d", n)
	if frac != "" {
		out += "." + frac
	}
	if f < 0 {
		out = "-" + out
	}
	return out
}

func asInt(v dataset.Value) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

func asFloat(v dataset.Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "↵")
	s = strings.ReplaceAll(s, "\n", "↵")
	s = strings.ReplaceAll(s, "\r", "↵")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}

// fit truncates or pads s to exactly width display cells.
func fit(s string, width int, align grid.Align) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	switch align {
	case grid.AlignRight:
		return runewidth.FillLeft(s, width)
	case grid.AlignCenter:
		gap := width - runewidth.StringWidth(s)
		left := gap / 2
		return strings.Repeat(" ", left) + runewidth.FillRight(s, width-left)
	default:
		return runewidth.FillRight(s, width)
	}
}

// cellBox renders text into a box of width cells: content followed by a
// one-cell divider.
func cellBox(text string, width int, align grid.Align, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	return style.Render(fit(text, width-1, align)) + DividerStyle.Render("│")
}

// valueStyle picks the style for a formatted, unselected cell.
func valueStyle(v dataset.Value, text string, kind grid.Kind) lipgloss.Style {
	if v == nil {
		return NullText
	}
	if kind == grid.KindStatus {
		if s, ok := statusStyles[text]; ok {
			return s
		}
	}
	return CellNormal
}
