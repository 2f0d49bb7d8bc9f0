package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studysmart/internal/timer"
)

// clockDigits is the 5 row block art of every clock glyph
var clockDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// bigClockLines renders the hh:mm:ss of snap as block art, one string per row
func bigClockLines(snap timer.Snapshot) []string {
	var rows [5]strings.Builder
	for i, char := range snap.Clock() {
		art, ok := clockDigits[char]
		if !ok {
			continue
		}
		for row := range rows {
			if i > 0 {
				rows[row].WriteString(" ")
			}
			rows[row].WriteString(art[row])
		}
	}

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return lines
}

// renderBigClock colours the clock by timer state
func renderBigClock(snap timer.Snapshot) string {
	color := ColorAccentBright
	switch snap.State {
	case timer.Stopped:
		color = ColorWarning
	case timer.Idle:
		color = ColorDisabledText
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)

	return style.Render(strings.Join(bigClockLines(snap), "\n"))
}
