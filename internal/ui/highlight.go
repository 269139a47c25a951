package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// SQL token styles used when a grid is fed by an ad-hoc query.
var (
	KeywordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#c678dd"))
	FunctionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#61afef"))
	StringStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#98c379"))
	NumberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d19a66"))
	CommentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5c6370")).Italic(true)
)

var sqlKeywords = wordSet(
	"SELECT", "FROM", "WHERE", "JOIN", "INNER", "LEFT", "RIGHT", "OUTER", "FULL",
	"CROSS", "ON", "USING", "AND", "OR", "NOT", "IN", "IS", "NULL", "BETWEEN",
	"LIKE", "ILIKE", "AS", "DISTINCT", "ORDER", "BY", "GROUP", "HAVING",
	"LIMIT", "OFFSET", "UNION", "ALL", "INTERSECT", "EXCEPT", "CASE", "WHEN",
	"THEN", "ELSE", "END", "WITH", "RECURSIVE", "ASC", "DESC", "TRUE", "FALSE",
	"EXISTS", "LATERAL", "WINDOW", "OVER", "PARTITION", "VALUES", "TABLE",
)

var sqlFunctions = wordSet(
	"COUNT", "SUM", "AVG", "MIN", "MAX", "COALESCE", "NULLIF", "CAST",
	"LOWER", "UPPER", "TRIM", "LENGTH", "SUBSTRING", "CONCAT", "NOW",
	"DATE_TRUNC", "EXTRACT", "TO_CHAR", "ROW_NUMBER", "RANK", "DENSE_RANK",
	"LAG", "LEAD", "STRING_AGG", "ARRAY_AGG", "JSONB_AGG",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// HighlightSQL colors keywords, functions, literals and comments of a
// single-line rendition of sql. Newlines are folded to spaces.
func HighlightSQL(sql string) string {
	sql = strings.Join(strings.Fields(sql), " ")
	if sql == "" {
		return ""
	}

	var b strings.Builder
	rs := []rune(sql)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == '-' && i+1 < len(rs) && rs[i+1] == '-':
			b.WriteString(CommentStyle.Render(string(rs[i:])))
			return b.String()
		case r == '\'':
			j := i + 1
			for j < len(rs) {
				if rs[j] == '\'' {
					if j+1 < len(rs) && rs[j+1] == '\'' {
						j += 2
						continue
					}
					break
				}
				j++
			}
			j = min(j+1, len(rs))
			b.WriteString(StringStyle.Render(string(rs[i:j])))
			i = j
		case unicode.IsDigit(r):
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			b.WriteString(NumberStyle.Render(string(rs[i:j])))
			i = j
		case r == '_' || unicode.IsLetter(r):
			j := i
			for j < len(rs) && (rs[j] == '_' || unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j])) {
				j++
			}
			word := string(rs[i:j])
			upper := strings.ToUpper(word)
			if _, ok := sqlKeywords[upper]; ok {
				b.WriteString(KeywordStyle.Render(word))
			} else if _, ok := sqlFunctions[upper]; ok {
				b.WriteString(FunctionStyle.Render(word))
			} else {
				b.WriteString(word)
			}
			i = j
		default:
			b.WriteRune(r)
			i++
		}
	}
	return b.String()
}
