package cli

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI 256 colors for broad terminal compatibility.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleNote    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleCode    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	stylePipe    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	stylePath    = lipgloss.NewStyle().Bold(true)

	styleHeader    = lipgloss.NewStyle().Bold(true)
	styleDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	// SQL highlighting
	styleKeyword = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	styleLiteral = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// render applies style only when colors are enabled.
func render(style lipgloss.Style, s string) string {
	if !EnableColors() {
		return s
	}
	return style.Render(s)
}

// Error returns text styled as an error label.
func Error(s string) string { return render(styleError, s) }

// Warning returns text styled as a warning label.
func Warning(s string) string { return render(styleWarning, s) }

// Note returns text styled as a note label.
func Note(s string) string { return render(styleNote, s) }

// Help returns text styled as a help label.
func Help(s string) string { return render(styleHelp, s) }

// Success returns text styled as a success message.
func Success(s string) string { return render(styleSuccess, s) }

// Code returns text styled as an error code.
func Code(s string) string { return render(styleCode, s) }

// FilePath returns text styled as a file path.
func FilePath(s string) string { return render(stylePath, s) }

// Header returns text styled as a table header.
func Header(s string) string { return render(styleHeader, s) }

// Dim returns muted text.
func Dim(s string) string { return render(styleDim, s) }

// Highlight returns highlighted text.
func Highlight(s string) string { return render(styleHighlight, s) }

// Pipe returns the gutter character used in diagnostics.
func Pipe() string { return render(stylePipe, "|") }

// Arrow returns the location arrow used in diagnostics.
func Arrow() string { return render(stylePipe, "-->") }

// sqlKeywords are highlighted by HighlightSQL. Multi-word keywords come first
// so the alternation prefers them.
var sqlKeywords = []string{
	"CHARACTER SET", "PRIMARY KEY", "FOREIGN KEY", "NOT NULL", "IF EXISTS",
	"CREATE", "ALTER", "DROP", "SHOW", "DATABASE", "TABLES", "TABLE",
	"COLLATE", "UNIQUE", "CHECK", "DEFAULT", "REFERENCES",
}

// sqlToken matches a keyword (case-insensitive, whole word) or a quoted literal.
// [1] keyword, [2] literal
var sqlToken = regexp.MustCompile(`(?i)\b(` + strings.Join(sqlKeywords, "|") + `)\b|('[^']*')`)

// MarkSQL rewrites keywords and quoted literals of stmt through the given
// functions, leaving identifiers untouched.
func MarkSQL(stmt string, keyword, literal func(string) string) string {
	return sqlToken.ReplaceAllStringFunc(stmt, func(tok string) string {
		if strings.HasPrefix(tok, "'") {
			return literal(tok)
		}
		return keyword(tok)
	})
}

// HighlightSQL colors keywords and string literals of a statement.
// Text is returned unchanged when colors are disabled.
func HighlightSQL(stmt string) string {
	if !EnableColors() {
		return stmt
	}
	return MarkSQL(stmt,
		func(s string) string { return styleKeyword.Render(s) },
		func(s string) string { return styleLiteral.Render(s) },
	)
}
