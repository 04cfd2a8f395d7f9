package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B6EA5"))

	labelStyle = lipgloss.NewStyle().Bold(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D8D2CA"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A837B"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B3261E"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)
