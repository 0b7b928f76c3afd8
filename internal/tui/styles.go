package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Title styling for run headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	// Unit header styling in the progress trace
	UnitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	// State transition styling
	StateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Failure styling
	FailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Warning styling for non-fatal oddities (missing rules file, skipped copies)
	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))

	// Subtle text styling for diagnostics
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)
