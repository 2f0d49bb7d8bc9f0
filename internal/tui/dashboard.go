package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studysmart/internal/models"
	"github.com/balkashynov/studysmart/internal/screen"
)

const (
	inputName = iota
	inputGoal
)

// dashboardModel renders the overview and the add subject dialog
type dashboardModel struct {
	agg   *screen.Dashboard
	b     *binding[screen.DashboardState]
	state screen.DashboardState

	// Cursor over upcoming tasks followed by recent sessions
	cursor  int
	confirm bool

	dialog  bool
	inputs  []textinput.Model
	focus   int
	palette int
}

func newDashboardModel(deps screen.Deps) (*dashboardModel, tea.Cmd) {
	agg := screen.NewDashboard(deps)
	b := bind[screen.DashboardState](agg)

	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 30
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}
	inputs[inputName].Placeholder = "Subject name (2-12 chars)"
	inputs[inputName].CharLimit = models.SubjectNameMax
	inputs[inputGoal].Placeholder = "Goal study hours (1-500)"
	inputs[inputGoal].CharLimit = 6

	m := &dashboardModel{
		agg:    agg,
		b:      b,
		state:  agg.Current(),
		inputs: inputs,
	}
	return m, tea.Batch(b.waitState(), b.waitEffect())
}

func (m *dashboardModel) close() {
	m.b.close()
	m.agg.Close()
}

func (m *dashboardModel) items() int {
	return len(m.state.UpcomingTasks) + len(m.state.RecentSessions)
}

// selectedTask returns the task under the cursor, if the cursor is on one
func (m *dashboardModel) selectedTask() (models.Task, bool) {
	if m.cursor < len(m.state.UpcomingTasks) {
		return m.state.UpcomingTasks[m.cursor], true
	}
	return models.Task{}, false
}

func (m *dashboardModel) selectedSession() (models.Session, bool) {
	i := m.cursor - len(m.state.UpcomingTasks)
	if i >= 0 && i < len(m.state.RecentSessions) {
		return m.state.RecentSessions[i], true
	}
	return models.Session{}, false
}

func (m *dashboardModel) setState(st screen.DashboardState) {
	m.state = st
	if n := m.items(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *dashboardModel) openDialog(ctx context.Context) tea.Cmd {
	m.dialog = true
	m.focus = inputName
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.palette = 0
	m.agg.OnEvent(ctx, screen.SubjectNameChanged{})
	m.agg.OnEvent(ctx, screen.GoalHoursChanged{})
	m.agg.OnEvent(ctx, screen.SubjectColorsChanged{Colors: models.RandomPaletteColors()})
	return m.inputs[inputName].Focus()
}

func (m *dashboardModel) update(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	if m.dialog {
		return m.updateDialog(ctx, msg)
	}
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
	case "a":
		return m.openDialog(ctx)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.items()-1 {
			m.cursor++
		}
	case " ", "x":
		if task, ok := m.selectedTask(); ok {
			m.agg.OnEvent(ctx, screen.TaskCompletionToggled{Task: task})
		}
	case "d":
		if session, ok := m.selectedSession(); ok {
			m.agg.OnEvent(ctx, screen.DeleteSessionRequested{Session: session})
			m.confirm = true
		}
	}
	return nil
}

func (m *dashboardModel) updateDialog(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.dialog = false
		return nil
	case "tab", "shift+tab", "up", "down":
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus
		return m.inputs[m.focus].Focus()
	case "ctrl+n":
		m.palette = (m.palette + 1) % len(models.SubjectCardColors)
		m.agg.OnEvent(ctx, screen.SubjectColorsChanged{Colors: models.PaletteColors(m.palette)})
		return nil
	case "enter":
		if !m.agg.Current().Form.SaveEnabled {
			return nil
		}
		m.agg.OnEvent(ctx, screen.SaveSubject{})
		// the form is reset once the subject is saved
		if m.agg.Current().Form.Name == "" {
			m.dialog = false
		}
		return nil
	}

	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if value := m.inputs[m.focus].Value(); value != before {
		if m.focus == inputName {
			m.agg.OnEvent(ctx, screen.SubjectNameChanged{Name: value})
		} else {
			m.agg.OnEvent(ctx, screen.GoalHoursChanged{Hours: value})
		}
	}
	return cmd
}

func (m *dashboardModel) view(width int) string {
	if m.dialog {
		return m.renderDialog(width)
	}

	sections := []string{
		m.renderStats(width),
		m.renderSubjects(width),
		m.renderTasks(width),
		m.renderSessions(width),
	}
	if m.confirm {
		sections = append(sections, warningStyle.Render("Delete this study session? y/n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentBright))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText))
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Italic(true)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Background(lipgloss.Color(ColorAccentMain))
)

func (m *dashboardModel) renderStats(width int) string {
	stat := func(label string, value string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 2).
			Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Subject Count", fmt.Sprintf("%d", m.state.TotalSubjectCount)),
		" ",
		stat("Studied Hours", fmt.Sprintf("%.2f", m.state.TotalStudiedHours)),
		" ",
		stat("Goal Study Hours", fmt.Sprintf("%.1f", m.state.TotalGoalHours)),
	)
}

func (m *dashboardModel) renderSubjects(width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("📚 Subjects"))
	b.WriteString("\n")
	if len(m.state.Subjects) == 0 {
		b.WriteString(emptyStyle.Render("You don't have any subjects. Press a to add one."))
		return b.String()
	}

	cards := make([]string, 0, len(m.state.Subjects))
	for _, s := range m.state.Subjects {
		cards = append(cards, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(subjectColor(s))).
			Foreground(lipgloss.Color(subjectColor(s))).
			Bold(true).
			Padding(0, 1).
			Render(s.Name))
	}
	b.WriteString(lipgloss.NewStyle().MaxWidth(width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, cards...)))
	return b.String()
}

func (m *dashboardModel) renderTasks(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("📝 Upcoming Tasks"))
	b.WriteString("\n")
	if len(m.state.UpcomingTasks) == 0 {
		b.WriteString(emptyStyle.Render("You don't have any upcoming tasks."))
		return b.String()
	}
	for i, t := range m.state.UpcomingTasks {
		line := fmt.Sprintf("%s %-30s %-12s %s  %s",
			checkbox(t.IsCompleted),
			truncate(t.Title, 30),
			truncate(t.RelatedToSubject, 12),
			lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColor(t.Priority))).Render(fmt.Sprintf("%-6s", t.Priority)),
			t.Due().Format("02 Jan 2006"))
		b.WriteString(m.row(i, line, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *dashboardModel) renderSessions(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("⏱  Recent Study Sessions"))
	b.WriteString("\n")
	if len(m.state.RecentSessions) == 0 {
		b.WriteString(emptyStyle.Render("You don't have any recent study sessions."))
		return b.String()
	}
	offset := len(m.state.UpcomingTasks)
	for i, s := range m.state.RecentSessions {
		line := fmt.Sprintf("%-12s %s  %s",
			truncate(s.RelatedToSubject, 12),
			s.StartedAt().Format("02 Jan 2006"),
			sessionHours(s))
		b.WriteString(m.row(offset+i, line, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *dashboardModel) row(i int, line string, width int) string {
	if i == m.cursor {
		return selectedStyle.Render("▶ " + line)
	}
	return "  " + line
}

func (m *dashboardModel) renderDialog(width int) string {
	form := m.state.Form
	var b strings.Builder
	b.WriteString(headerStyle.Render("Add / Update Subject"))
	b.WriteString("\n\n")

	swatches := make([]string, 0, len(form.Colors))
	for _, c := range form.Colors {
		swatches = append(swatches, lipgloss.NewStyle().Foreground(lipgloss.Color(argbHex(c))).Render("██"))
	}
	b.WriteString(labelStyle.Render("Colour  ") + strings.Join(swatches, ""))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		err   string
	}{
		{"Subject Name", form.NameError},
		{"Goal Study Hours", form.GoalError},
	}
	for i, f := range fields {
		b.WriteString(labelStyle.Render(f.label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		// hide errors until the field has been touched
		if f.err != "" && m.inputs[i].Value() != "" {
			b.WriteString(errorStyle.Render(f.err))
		}
		b.WriteString("\n")
	}

	save := labelStyle.Render("[ Save ]")
	if form.SaveEnabled {
		save = valueStyle.Foreground(lipgloss.Color(ColorSuccess)).Render("[ Save ]")
	}
	b.WriteString(save)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Width(min(width-2, 50)).
		Render(b.String())
}

func checkbox(done bool) string {
	if done {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render("✓")
	}
	return "○"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func sessionHours(s models.Session) string {
	return fmt.Sprintf("%.2f hr", models.Hours(s.Duration))
}
