package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// shimmerInterval is how often the running-session header is redrawn
const shimmerInterval = 100 * time.Millisecond

// shimmer sweeps a light highlight across the header of a running session
type shimmer struct {
	center     float64
	widthRatio float64
	cycle      time.Duration
	pause      time.Duration
	pausedAt   time.Time
	trueColor  bool
}

func newShimmer() shimmer {
	return shimmer{
		widthRatio: 0.25,
		cycle:      1800 * time.Millisecond,
		pause:      500 * time.Millisecond,
		trueColor:  os.Getenv("COLORTERM") == "truecolor",
	}
}

// shimmerTickMsg advances the sweep
type shimmerTickMsg struct{}

func shimmerTick() tea.Cmd {
	return tea.Tick(shimmerInterval, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// advance moves the highlight one step for text of n glyphs
func (s shimmer) advance(n int, now time.Time) shimmer {
	if n == 0 {
		return s
	}
	if !s.pausedAt.IsZero() {
		if now.Sub(s.pausedAt) >= s.pause {
			s.pausedAt = time.Time{}
			s.center = -float64(n) * s.widthRatio
		}
		return s
	}

	steps := float64(s.cycle) / float64(shimmerInterval)
	distance := float64(n) * (1 + 2*s.widthRatio)
	s.center += distance / steps

	if end := float64(n) * (1 + s.widthRatio); s.center >= end {
		s.center = end
		s.pausedAt = now
	}
	return s
}

// render draws text with the highlight at its current position
func (s shimmer) render(text string) string {
	glyphs := []rune(text)
	if len(glyphs) == 0 {
		return ""
	}

	sigma := math.Max(1, s.widthRatio*float64(len(glyphs))/2)
	var b strings.Builder
	for i, g := range glyphs {
		dx := float64(i) - s.center
		weight := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(s.color(weight))).
			Bold(true).
			Render(string(g)))
	}
	return b.String()
}

// color blends the secondary text colour towards a light violet
func (s shimmer) color(weight float64) string {
	if !s.trueColor {
		if weight > 0.5 {
			return "147"
		}
		return "250"
	}
	blend := func(from, to int) int {
		return int(float64(from)*(1-weight) + float64(to)*weight)
	}
	return fmt.Sprintf("#%02X%02X%02X", blend(0xB1, 0xEA), blend(0xB8, 0xE6), blend(0xC7, 0xFF))
}
