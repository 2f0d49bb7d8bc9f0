package screen

import (
	"context"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
)

// DashboardState is everything the dashboard renders
type DashboardState struct {
	TotalSubjectCount int
	TotalStudiedHours float64
	TotalGoalHours    float64
	Subjects          []models.Subject
	UpcomingTasks     []models.Task
	RecentSessions    []models.Session

	// Add subject dialog
	Form SubjectForm
	// Session picked for deletion, waiting for confirmation
	PendingDelete *models.Session
}

// DashboardEvent is a UI event handled by the dashboard
type DashboardEvent interface {
	dashboardEvent()
}

type (
	SubjectNameChanged     struct{ Name string }
	GoalHoursChanged       struct{ Hours string }
	SubjectColorsChanged   struct{ Colors models.ColorList }
	SaveSubject            struct{}
	TaskCompletionToggled  struct{ Task models.Task }
	DeleteSessionRequested struct{ Session models.Session }
	DeleteSession          struct{}
)

func (SubjectNameChanged) dashboardEvent()     {}
func (GoalHoursChanged) dashboardEvent()       {}
func (SubjectColorsChanged) dashboardEvent()   {}
func (SaveSubject) dashboardEvent()            {}
func (TaskCompletionToggled) dashboardEvent()  {}
func (DeleteSessionRequested) dashboardEvent() {}
func (DeleteSession) dashboardEvent()          {}

// Dashboard aggregates the overview screen
type Dashboard struct {
	*aggregator[DashboardState]
	deps Deps
}

// NewDashboard wires the dashboard to its repositories and starts it
func NewDashboard(deps Deps) *Dashboard {
	d := &Dashboard{
		aggregator: newAggregator(deps.logger("dashboard"), DashboardState{Form: NewSubjectForm()}),
		deps:       deps,
	}
	r := deps.Repos

	c := d.combined
	flow.Input(c, r.Subjects.TotalSubjectCount(), func(s DashboardState, n int) DashboardState {
		s.TotalSubjectCount = n
		return s
	})
	flow.Input(c, r.Subjects.TotalGoalHours(), func(s DashboardState, h float64) DashboardState {
		s.TotalGoalHours = h
		return s
	})
	flow.Input(c, r.Subjects.AllSubjects(), func(s DashboardState, subjects []models.Subject) DashboardState {
		s.Subjects = subjects
		return s
	})
	flow.Input(c, r.Sessions.TotalSessionsDuration(), func(s DashboardState, secs int64) DashboardState {
		s.TotalStudiedHours = models.Hours(secs)
		return s
	})
	flow.Input(c, r.Tasks.AllUpcomingTasks(), func(s DashboardState, tasks []models.Task) DashboardState {
		s.UpcomingTasks = tasks
		return s
	})
	flow.Input(c, r.Sessions.RecentFiveSessions(), func(s DashboardState, sessions []models.Session) DashboardState {
		s.RecentSessions = sessions
		return s
	})
	c.Start()

	return d
}

// OnEvent handles one UI event. Writes run before it returns.
func (d *Dashboard) OnEvent(ctx context.Context, ev DashboardEvent) {
	switch ev := ev.(type) {
	case SubjectNameChanged:
		d.update(func(s DashboardState) DashboardState {
			s.Form.Name = ev.Name
			s.Form = s.Form.validated()
			return s
		})
	case GoalHoursChanged:
		d.update(func(s DashboardState) DashboardState {
			s.Form.GoalHours = ev.Hours
			s.Form = s.Form.validated()
			return s
		})
	case SubjectColorsChanged:
		d.update(func(s DashboardState) DashboardState {
			s.Form.Colors = ev.Colors
			return s
		})
	case SaveSubject:
		d.saveSubject(ctx)
	case TaskCompletionToggled:
		d.toggleTask(ctx, ev.Task)
	case DeleteSessionRequested:
		session := ev.Session
		d.update(func(s DashboardState) DashboardState {
			s.PendingDelete = &session
			return s
		})
	case DeleteSession:
		d.deleteSession(ctx)
	}
}

func (d *Dashboard) saveSubject(ctx context.Context) {
	form := d.Current().Form
	if !form.SaveEnabled {
		return
	}

	if _, err := d.deps.Repos.Subjects.UpsertSubject(ctx, form.subject(0)); err != nil {
		d.fail("Unable to add subject.", err)
		return
	}
	d.update(func(s DashboardState) DashboardState {
		s.Form = NewSubjectForm()
		return s
	})
	d.show("Subject added successfully.")
}

func (d *Dashboard) toggleTask(ctx context.Context, task models.Task) {
	task.IsCompleted = !task.IsCompleted
	if _, err := d.deps.Repos.Tasks.UpsertTask(ctx, &task); err != nil {
		d.fail("Failed to complete task.", err)
		return
	}
	if task.IsCompleted {
		d.show("Saved in completed tasks successfully.")
	} else {
		d.show("Saved in upcoming tasks successfully.")
	}
}

func (d *Dashboard) deleteSession(ctx context.Context) {
	d.deletePending(ctx, d.deps.Repos.Sessions, d.Current().PendingDelete, func(s DashboardState) DashboardState {
		s.PendingDelete = nil
		return s
	})
}
