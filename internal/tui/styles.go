package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the same palette the rest of the app family uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	valueStyle     = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	focusStyle     = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
	zuluStyle      = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(colorWarning)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPeach).Padding(0, 2)
	sectionStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)
	footerStyle    = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 2)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorBase).Padding(0, 2)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorBase).Padding(0, 2)
)
