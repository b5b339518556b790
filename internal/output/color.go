package output

import (
	"github.com/charmbracelet/lipgloss"

	"nj/internal/due"
)

// Terminal palette.
var (
	ColorGreen   = lipgloss.Color("2")
	ColorYellow  = lipgloss.Color("3")
	ColorRed     = lipgloss.Color("1")
	ColorBlue    = lipgloss.Color("4")
	ColorMagenta = lipgloss.Color("5")
	ColorCyan    = lipgloss.Color("6")
	ColorWhite   = lipgloss.Color("7")

	ColorLightRed     = lipgloss.Color("9")
	ColorLightGreen   = lipgloss.Color("10")
	ColorLightMagenta = lipgloss.Color("13")
)

// Predefined lipgloss styles.
var (
	StyleID       = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleTitle    = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleComments = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleDate     = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleText     = lipgloss.NewStyle().Foreground(ColorGreen)

	StyleUnscheduled = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePastDue     = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	StyleDueToday    = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	StyleDue         = lipgloss.NewStyle().Foreground(ColorCyan)
)

// labelColors maps Trello label color names to terminal colors.
var labelColors = map[string]lipgloss.Color{
	"green":  ColorGreen,
	"yellow": ColorYellow,
	"orange": ColorLightRed,
	"red":    ColorRed,
	"purple": ColorMagenta,
	"blue":   ColorBlue,
	"sky":    ColorCyan,
	"lime":   ColorLightGreen,
	"pink":   ColorLightMagenta,
	"black":  ColorWhite,
}

// render applies style to s when color is enabled.
func (f *Formatter) render(style lipgloss.Style, s string) string {
	if !f.Color {
		return s
	}
	return style.Render(s)
}

// LabelColor returns the terminal color for a Trello label color name.
// Unknown and empty names are white.
func LabelColor(name string) lipgloss.Color {
	if c, ok := labelColors[name]; ok {
		return c
	}
	return ColorWhite
}

// DueStyle returns the style for a due-date bucket.
func DueStyle(kind due.Kind) lipgloss.Style {
	switch kind {
	case due.Unscheduled:
		return StyleUnscheduled
	case due.PastDue:
		return StylePastDue
	case due.Today:
		return StyleDueToday
	default:
		return StyleDue
	}
}
