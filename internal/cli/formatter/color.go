// Package formatter renders engine output for the terminal.
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/viva/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusIndicator returns a colored indicator for a run status, such as
// "● COMPLETED".
func StatusIndicator(status domain.RunStatus) string {
	switch status {
	case domain.RunCompleted:
		return StyleGreen.Render("● COMPLETED")
	case domain.RunRunning:
		return StyleYellow.Render("● RUNNING")
	case domain.RunFailed:
		return StyleRed.Render("● FAILED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// FitnessStyle colors a 0-100 fitness total: green from 90, yellow from
// 70, red below.
func FitnessStyle(total float64) lipgloss.Style {
	switch {
	case total >= 90:
		return StyleGreen
	case total >= 70:
		return StyleYellow
	default:
		return StyleRed
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}
