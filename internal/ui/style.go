package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// RowState selects how a todo row is drawn.
type RowState int

const (
	RowNormal RowState = iota
	RowDone
	RowLinked
	RowOld
	RowUpcoming
)

var rowStyles = map[RowState]lipgloss.Style{
	RowDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true),
	RowLinked:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	RowOld:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	RowUpcoming: lipgloss.NewStyle().Faint(true),
}

var headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// StyleRow renders text in the style for state. Without a colour terminal
// the text is returned unchanged.
func StyleRow(state RowState, text string) string {
	style, ok := rowStyles[state]
	if !ok || !ColorEnabled() {
		return text
	}
	return style.Render(text)
}

// StyleHeader renders a table header cell.
func StyleHeader(text string) string {
	if !ColorEnabled() {
		return text
	}
	return headerStyle.Render(text)
}

// ColorEnabled reports whether stdout is a terminal that accepts colour.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
