package main

import "github.com/charmbracelet/lipgloss"

// Styles degrade to plain text when stdout is not a terminal.
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func render(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

func heading(text string) string { return render(headingStyle, text) }
func warn(text string) string    { return render(warnStyle, text) }
func ok(text string) string      { return render(okStyle, text) }
