package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hyowon/smartsched/pkg/sim"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// AchievementIndicator returns a colored status string such as "● MET".
func AchievementIndicator(a sim.Achievement) string {
	switch a {
	case sim.AchievementMet:
		return StyleGreen.Render("● MET")
	case sim.AchievementNotMet:
		return StyleRed.Render("● NOT MET")
	default:
		return StyleDim.Render("● N/A")
	}
}

// CompletionIndicator returns a colored overall run status string.
func CompletionIndicator(c sim.Completion) string {
	switch c {
	case sim.CompletionFull:
		return StyleGreen.Render("● FULL")
	case sim.CompletionPartial:
		return StyleYellow.Render("● PARTIAL")
	default:
		return StyleDim.Render("● N/A")
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}
