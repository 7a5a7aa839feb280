// Package tui provides the Bubble Tea timer interface.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tuisplit/tuisplit/internal/split"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))

	rowNameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0"))
	currentRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	neutralStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))

	goldStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5C542")).Bold(true)
	aheadGainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950")).Bold(true)
	aheadLoseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8DDB9A"))
	behindGainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0A8A8"))
	behindLoseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5484D")).Bold(true)

	timerStyle       = lipgloss.NewStyle().Bold(true)
	infoLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	infoValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pausedBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// classStyle maps a classification tag to its presentation style.
// The mapping is the only place the tag vocabulary meets styling.
func classStyle(c split.Classification) lipgloss.Style {
	switch c {
	case split.Gold:
		return goldStyle
	case split.AheadGaining:
		return aheadGainStyle
	case split.AheadLosing:
		return aheadLoseStyle
	case split.BehindGaining:
		return behindGainStyle
	case split.BehindLosing:
		return behindLoseStyle
	default:
		return neutralStyle
	}
}
