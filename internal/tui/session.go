package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studysmart/internal/screen"
	"github.com/balkashynov/studysmart/internal/timer"
)

// sessionModel renders the study timer and the session history
type sessionModel struct {
	agg   *screen.Session
	b     *binding[screen.SessionState]
	state screen.SessionState

	cursor  int
	confirm bool

	shimmer    shimmer
	shimmering bool
}

// newSessionModel opens the session screen. It is created on every entry so
// the selected subject is re-read from the running timer.
func newSessionModel(ctx context.Context, deps screen.Deps) (*sessionModel, tea.Cmd) {
	agg := screen.NewSession(deps)
	b := bind[screen.SessionState](agg)
	agg.OnEvent(ctx, screen.SyncTimerSubject{})

	m := &sessionModel{
		agg:     agg,
		b:       b,
		state:   agg.Current(),
		shimmer: newShimmer(),
	}
	return m, tea.Batch(b.waitState(), b.waitEffect(), m.animate())
}

func (m *sessionModel) close() {
	m.b.close()
	m.agg.Close()
}

func (m *sessionModel) setState(st screen.SessionState) tea.Cmd {
	m.state = st
	if n := len(st.Sessions); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m.animate()
}

// animate starts the header shimmer when the timer starts running
func (m *sessionModel) animate() tea.Cmd {
	if m.shimmering || m.state.Timer.State != timer.Started {
		return nil
	}
	m.shimmering = true
	return shimmerTick()
}

func (m *sessionModel) onShimmerTick(now time.Time) tea.Cmd {
	if m.state.Timer.State != timer.Started {
		m.shimmering = false
		return nil
	}
	m.shimmer = m.shimmer.advance(len([]rune(m.headerText())), now)
	return shimmerTick()
}

// cycleSubject moves the selected subject by step through the subject list
func (m *sessionModel) cycleSubject(ctx context.Context, step int) {
	subjects := m.state.Subjects
	if len(subjects) == 0 {
		return
	}
	next := 0
	if step < 0 {
		next = len(subjects) - 1
	}
	for i, s := range subjects {
		if s.ID == m.state.SubjectID {
			next = (i + step + len(subjects)) % len(subjects)
			break
		}
	}
	m.agg.OnEvent(ctx, screen.RelatedSubjectChanged{Subject: subjects[next]})
}

func (m *sessionModel) update(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	if m.confirm {
		switch msg.String() {
		case "y", "Y", "enter":
			m.agg.OnEvent(ctx, screen.DeleteSession{})
			m.confirm = false
		case "n", "N", "esc":
			m.confirm = false
		}
		return nil
	}

	switch msg.String() {
	case "left", "h":
		m.cycleSubject(ctx, -1)
	case "right", "l":
		m.cycleSubject(ctx, 1)
	case " ", "s":
		m.agg.OnEvent(ctx, screen.ToggleTimer{})
	case "c":
		m.agg.OnEvent(ctx, screen.CancelTimer{})
	case "f":
		m.agg.OnEvent(ctx, screen.FinishSession{})
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Sessions)-1 {
			m.cursor++
		}
	case "d":
		if m.cursor < len(m.state.Sessions) {
			m.agg.OnEvent(ctx, screen.DeleteSessionRequested{Session: m.state.Sessions[m.cursor]})
			m.confirm = true
		}
	}
	return nil
}

func (m *sessionModel) headerText() string {
	switch m.state.Timer.State {
	case timer.Started:
		return "⏱  STUDYING  ⏱"
	case timer.Stopped:
		return "⏸  PAUSED  ⏸"
	default:
		return "READY TO STUDY"
	}
}

func (m *sessionModel) view(width, height int) string {
	timerPanel := m.renderTimerPanel(width)
	history := m.renderHistory(width, height-lipgloss.Height(timerPanel)-1)
	sections := []string{timerPanel, history}
	if m.confirm {
		sections = append(sections, warningStyle.Render("Delete this study session? y/n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *sessionModel) renderTimerPanel(width int) string {
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	header := headerStyle.Render(m.headerText())
	if m.state.Timer.State == timer.Started {
		header = m.shimmer.render(m.headerText())
	}

	subject := emptyStyle.Render("no subject selected")
	if m.state.RelatedToSubject != "" {
		color := ColorAccentBright
		for _, s := range m.state.Subjects {
			if s.ID == m.state.SubjectID {
				color = subjectColor(s)
			}
		}
		subject = lipgloss.NewStyle().
			Foreground(lipgloss.Color(color)).
			Bold(true).
			Render(m.state.RelatedToSubject)
	}
	picker := labelStyle.Render("◀  ") + subject + labelStyle.Render("  ▶")

	components := []string{
		center.Render(header),
		center.Render(renderBigClock(m.state.Timer)),
		center.Render(picker),
	}
	return strings.Join(components, "\n\n")
}

func (m *sessionModel) renderHistory(width, height int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("📖 Study Sessions History"))
	b.WriteString("\n")
	if len(m.state.Sessions) == 0 {
		b.WriteString(emptyStyle.Render("You don't have any study sessions yet."))
		return b.String()
	}

	// keep the cursor row in view
	rows := max(height-1, 1)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.state.Sessions))

	for i := start; i < end; i++ {
		s := m.state.Sessions[i]
		line := fmt.Sprintf("%-12s %s  %s",
			truncate(s.RelatedToSubject, 12),
			s.StartedAt().Format("02 Jan 2006 15:04"),
			sessionHours(s))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▶ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
