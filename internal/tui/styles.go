package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	footerStyle  = lipgloss.NewStyle().Faint(true)
	changeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	bodyStyle    = lipgloss.NewStyle()
	interiorStyle = lipgloss.NewStyle()

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	marqueeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	wireStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
)

func pinBorderStyle(hex string) lipgloss.Style {
	if hex == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
