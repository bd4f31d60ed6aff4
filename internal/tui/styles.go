package tui

import "charm.land/lipgloss/v2"

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("#808080")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.BorderForeground(accent)

	statusStyles = map[statusKind]lipgloss.Style{
		statusIdle:      lipgloss.NewStyle(),
		statusRecording: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F")),
		statusBusy:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")),
		statusDone:      lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787")),
		statusError:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000")),
	}

	deviceStyle = lipgloss.NewStyle().Foreground(accent)
	helpStyle   = lipgloss.NewStyle().Foreground(muted)
)
