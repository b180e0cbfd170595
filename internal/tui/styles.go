package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	panelBg   = lipgloss.Color("#0F141A")
	borderCol = lipgloss.Color("#243141")
	outlineFg = lipgloss.Color("#9CA3AF")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)

	buttonStyle       = lipgloss.NewStyle().Foreground(baseFg).Background(borderCol).Padding(0, 1)
	buttonActiveStyle = buttonStyle.Background(accentFg).Bold(true)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderCol).
			Background(panelBg).
			Foreground(baseFg).
			Padding(0, 1)
	popupTitleStyle = lipgloss.NewStyle().Bold(true)
	outlineStyle    = lipgloss.NewStyle().Foreground(outlineFg)
)
