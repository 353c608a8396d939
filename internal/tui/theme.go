package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the gallery uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
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
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	textStyle    = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorSubtext0)
	dimStyle     = lipgloss.NewStyle().Foreground(colorOverlay0)
	urlStyle     = lipgloss.NewStyle().Foreground(colorInfo).Underline(true)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	loadedStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	pendingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPeach)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarning)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)
	focusedPaneStyle = paneStyle.BorderForeground(colorFocus)
	modalStyle       = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorAccent).
				Background(colorBase).
				Padding(1, 2)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Padding(0, 1)
)
