// Package style provides consistent terminal styling using Lipgloss.
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ksoares/evreg/internal/registry"
)

var (
	// Success style for positive outcomes
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")). // Green
		Bold(true)

	// Warning style for cautionary messages
	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")). // Yellow
		Bold(true)

	// Error style for failures
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")). // Red
		Bold(true)

	// Info style for informational messages
	Info = lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")) // Blue

	// Dim style for secondary information
	Dim = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")) // Gray

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().
		Bold(true)

	// Upcoming style for events that have not started yet
	Upcoming = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")) // Blue

	// Ongoing style for events happening right now
	Ongoing = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")). // Green
		Bold(true)

	// Past style for events whose window has ended
	Past = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")) // Gray

	// SuccessPrefix is the checkmark prefix for success messages
	SuccessPrefix = Success.Render("✓")

	// WarningPrefix is the warning prefix
	WarningPrefix = Warning.Render("⚠")

	// ErrorPrefix is the error prefix
	ErrorPrefix = Error.Render("✗")

	// ArrowPrefix for action indicators
	ArrowPrefix = Info.Render("→")
)

// StatusBadge renders an event status in its color.
func StatusBadge(s registry.Status) string {
	switch s {
	case registry.StatusOngoing:
		return Ongoing.Render(s.String())
	case registry.StatusPast:
		return Past.Render(s.String())
	default:
		return Upcoming.Render(s.String())
	}
}
