package tui

import "github.com/charmbracelet/lipgloss"

// Styles.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	liveTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
	mockTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			Width(22)
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
	paneTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))

	askStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	bidStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// trendStyle picks the color for a metric trend. Chinese market convention:
// red is up, green is down.
func trendStyle(direction string) lipgloss.Style {
	if direction == "down" {
		return downStyle
	}
	return upStyle
}
