// Package tui is the terminal front end. Each screen model renders the state
// of one screen aggregator and turns key presses into its events.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studysmart/internal/screen"
)

// Screen selects what the app shows
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenSession
)

const (
	shortMessage = 2 * time.Second
	longMessage  = 4 * time.Second
)

// Options configure the app
type Options struct {
	Deps   screen.Deps
	Start  Screen
	Titles *TitleNotifier // optional
}

// status is the transient message line
type status struct {
	text string
	long bool
	seq  int
}

type clearStatusMsg struct {
	seq int
}

// Model is the root bubbletea model switching between the dashboard and the
// study session screens
type Model struct {
	ctx    context.Context
	deps   screen.Deps
	titles *TitleNotifier

	current   Screen
	dashboard *dashboardModel
	session   *sessionModel

	width   int
	height  int
	status  status
	startup []tea.Cmd
}

// New builds the app and opens its first screen
func New(ctx context.Context, opts Options) Model {
	m := Model{
		ctx:    ctx,
		deps:   opts.Deps,
		titles: opts.Titles,
	}
	dashboard, cmd := newDashboardModel(opts.Deps)
	m.dashboard = dashboard
	m.startup = append(m.startup, cmd, tea.SetWindowTitle(appTitle))
	if opts.Titles != nil {
		m.startup = append(m.startup, m.waitTitle())
	}
	if opts.Start == ScreenSession {
		m.startup = append(m.startup, m.enterSession())
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startup...)
}

func (m *Model) waitTitle() tea.Cmd {
	return m.titles.titles.wait(func(title string) tea.Msg {
		return titleMsg(title)
	})
}

// enterSession opens a fresh session screen
func (m *Model) enterSession() tea.Cmd {
	if m.session != nil {
		m.session.close()
	}
	session, cmd := newSessionModel(m.ctx, m.deps)
	m.session = session
	m.current = ScreenSession
	return cmd
}

// leaveSession returns to the dashboard. The timer keeps running.
func (m *Model) leaveSession() {
	if m.session != nil {
		m.session.close()
		m.session = nil
	}
	m.current = ScreenDashboard
}

// Close detaches every screen from its streams
func (m Model) Close() {
	if m.session != nil {
		m.session.close()
	}
	m.dashboard.close()
}

// Current returns the screen on display
func (m Model) Current() Screen {
	return m.current
}

func (m *Model) showStatus(msg screen.ShowMessage) tea.Cmd {
	m.status = status{text: msg.Text, long: msg.Long, seq: m.status.seq + 1}
	d := shortMessage
	if msg.Long {
		d = longMessage
	}
	seq := m.status.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m Model) capturingInput() bool {
	return m.current == ScreenDashboard && m.dashboard.dialog
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.capturingInput() {
				return m, tea.Quit
			}
		case "tab":
			if m.capturingInput() {
				break
			}
			if m.current == ScreenDashboard {
				return m, m.enterSession()
			}
			m.leaveSession()
			return m, nil
		case "esc":
			if m.current == ScreenSession && !m.session.confirm {
				m.leaveSession()
				return m, nil
			}
		}
		if m.current == ScreenSession {
			return m, m.session.update(m.ctx, msg)
		}
		return m, m.dashboard.update(m.ctx, msg)

	case stateMsg[screen.DashboardState]:
		if msg.from != m.dashboard.b {
			return m, nil
		}
		m.dashboard.setState(msg.state)
		return m, msg.from.waitState()

	case stateMsg[screen.SessionState]:
		if m.session == nil || msg.from != m.session.b {
			return m, nil
		}
		return m, tea.Batch(m.session.setState(msg.state), msg.from.waitState())

	case effectMsg:
		var next tea.Cmd
		switch from := msg.from.(type) {
		case *binding[screen.DashboardState]:
			if from != m.dashboard.b {
				return m, nil
			}
			next = from.waitEffect()
		case *binding[screen.SessionState]:
			if m.session == nil || from != m.session.b {
				return m, nil
			}
			next = from.waitEffect()
		}
		switch e := msg.effect.(type) {
		case screen.ShowMessage:
			return m, tea.Batch(next, m.showStatus(e))
		case screen.NavigateBack:
			if m.current == ScreenSession {
				m.leaveSession()
			}
		}
		return m, next

	case shimmerTickMsg:
		if m.session == nil {
			return m, nil
		}
		return m, m.session.onShimmerTick(time.Now())

	case clearStatusMsg:
		if msg.seq == m.status.seq {
			m.status = status{seq: m.status.seq}
		}
		return m, nil

	case titleMsg:
		return m, tea.Batch(tea.SetWindowTitle(string(msg)), m.waitTitle())
	}

	if m.capturingInput() {
		// cursor blink and other input messages
		var cmd tea.Cmd
		d := m.dashboard
		d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	statusLine := m.renderStatus()
	contentHeight := m.height - lipgloss.Height(helpBar) - lipgloss.Height(statusLine) - 1

	var content string
	if m.current == ScreenSession && m.session != nil {
		content = m.session.view(m.width, contentHeight)
	} else {
		content = m.dashboard.view(m.width)
	}
	content = lipgloss.NewStyle().
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusLine, helpBar)
}

func (m Model) renderStatus() string {
	if m.status.text == "" {
		return ""
	}
	color := ColorSuccess
	if m.status.long {
		color = ColorError
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Width(m.width).
		Render(m.status.text)
}

// renderHelpBar renders the help bar at the bottom
func (m Model) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	var helpText string
	switch {
	case m.capturingInput():
		helpText = "tab next field · ctrl+n colour · enter save · esc cancel"
	case m.current == ScreenSession:
		helpText = "←/→ subject · space start/stop · f finish & save · c cancel · d delete · tab/esc dashboard · q quit"
	default:
		helpText = "a add subject · ↑/↓ nav · space done · d delete session · tab study timer · q quit"
	}
	return helpStyle.Render(helpText)
}

// Run shows the app until the user quits or ctx is done
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	return err
}
