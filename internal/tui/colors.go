package tui

import (
	"fmt"

	"github.com/balkashynov/studysmart/internal/models"
)

// Color constants for the StudySmart TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Titles, values, user input
	ColorSecondaryText = "#B1B8C7" // Labels, hints
	ColorDisabledText  = "#6D7383" // Empty states, idle clock
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Help bar

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Active borders, selection
	ColorAccentBright = "#A78BFA" // Running clock, headers

	// State Colors
	ColorError   = "#EF4444" // Validation errors, failed writes
	ColorSuccess = "#22C55E" // Saved messages, completed tasks
	ColorWarning = "#F59E0B" // Stopped clock, due soon
)

// priorityColor maps a task priority to its label colour
func priorityColor(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return ColorError
	case models.PriorityMedium:
		return ColorWarning
	default:
		return ColorSecondaryText
	}
}

// argbHex drops the alpha channel of a stored ARGB colour
func argbHex(argb int) string {
	return fmt.Sprintf("#%06X", argb&0xFFFFFF)
}

// subjectColor is the first stop of a subject's card gradient
func subjectColor(s models.Subject) string {
	if len(s.Colors) == 0 {
		return ColorAccentBright
	}
	return argbHex(s.Colors[0])
}
