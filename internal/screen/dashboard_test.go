package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
	"github.com/balkashynov/studysmart/internal/repository"
	"github.com/balkashynov/studysmart/internal/repository/mocks"
)

// dashboardMocks backs every dashboard input with a stream the test controls
type dashboardMocks struct {
	subjects *mocks.SubjectRepository
	tasks    *mocks.TaskRepository
	sessions *mocks.SessionRepository

	count    *flow.Bus[int]
	goal     *flow.Bus[float64]
	all      *flow.Bus[[]models.Subject]
	duration *flow.Bus[int64]
	upcoming *flow.Bus[[]models.Task]
	recent   *flow.Bus[[]models.Session]
}

func newDashboardMocks() *dashboardMocks {
	m := &dashboardMocks{
		subjects: &mocks.SubjectRepository{},
		tasks:    &mocks.TaskRepository{},
		sessions: &mocks.SessionRepository{},
		count:    flow.NewBus[int](),
		goal:     flow.NewBus[float64](),
		all:      flow.NewBus[[]models.Subject](),
		duration: flow.NewBus[int64](),
		upcoming: flow.NewBus[[]models.Task](),
		recent:   flow.NewBus[[]models.Session](),
	}
	m.subjects.On("TotalSubjectCount").Return(flow.Stream[int](m.count))
	m.subjects.On("TotalGoalHours").Return(flow.Stream[float64](m.goal))
	m.subjects.On("AllSubjects").Return(flow.Stream[[]models.Subject](m.all))
	m.sessions.On("TotalSessionsDuration").Return(flow.Stream[int64](m.duration))
	m.tasks.On("AllUpcomingTasks").Return(flow.Stream[[]models.Task](m.upcoming))
	m.sessions.On("RecentFiveSessions").Return(flow.Stream[[]models.Session](m.recent))
	return m
}

func (m *dashboardMocks) deps() Deps {
	return Deps{Repos: repository.Repositories{Subjects: m.subjects, Tasks: m.tasks, Sessions: m.sessions}}
}

func (m *dashboardMocks) publishAll() {
	m.count.Publish(0)
	m.goal.Publish(0)
	m.all.Publish(nil)
	m.duration.Publish(0)
	m.upcoming.Publish(nil)
	m.recent.Publish(nil)
}

func TestDashboard_WaitsForEveryInput(t *testing.T) {
	m := newDashboardMocks()
	d := NewDashboard(m.deps())
	defer d.Close()

	var states []DashboardState
	defer d.State().Subscribe(func(s DashboardState) { states = append(states, s) })()

	m.count.Publish(3)
	m.goal.Publish(42)
	m.all.Publish([]models.Subject{{ID: 1, Name: "Math"}})
	m.duration.Publish(7200)
	m.upcoming.Publish(nil)
	d.OnEvent(context.Background(), SubjectNameChanged{Name: "Art"})
	assert.Empty(t, states, "one input still missing")

	m.recent.Publish([]models.Session{{ID: 9}})
	require.Len(t, states, 1)
	got := states[0]
	assert.Equal(t, 3, got.TotalSubjectCount)
	assert.Equal(t, 42.0, got.TotalGoalHours)
	assert.Equal(t, 2.0, got.TotalStudiedHours)
	assert.Equal(t, "Art", got.Form.Name, "seeded local state is applied")
	assert.Len(t, got.RecentSessions, 1)

	m.count.Publish(4)
	require.Len(t, states, 2)
	assert.Equal(t, 4, states[1].TotalSubjectCount)
	assert.Equal(t, 2.0, states[1].TotalStudiedHours, "latest value of other inputs is kept")
}

func TestDashboard_SaveSubjectFailureKeepsForm(t *testing.T) {
	ctx := context.Background()
	m := newDashboardMocks()
	m.subjects.On("UpsertSubject", mock.Anything, mock.Anything).Return(uint(0), errors.New("database is locked"))
	d := NewDashboard(m.deps())
	defer d.Close()
	m.publishAll()
	events := watch(t, d.Events())

	d.OnEvent(ctx, SubjectNameChanged{Name: "Chemistry"})
	d.OnEvent(ctx, GoalHoursChanged{Hours: "20"})
	before := d.Current().Form
	require.True(t, before.SaveEnabled)

	d.OnEvent(ctx, SaveSubject{})

	assert.Equal(t, before, d.Current().Form)
	require.Len(t, events.list(), 1)
	msg := events.list()[0].(ShowMessage)
	assert.True(t, msg.Long)
	assert.Contains(t, msg.Text, "Unable to add subject.")
	assert.Contains(t, msg.Text, "database is locked")
	m.subjects.AssertExpectations(t)
}

func TestDashboard_InvalidSubjectIsNotSaved(t *testing.T) {
	ctx := context.Background()
	m := newDashboardMocks()
	d := NewDashboard(m.deps())
	defer d.Close()
	m.publishAll()
	events := watch(t, d.Events())

	d.OnEvent(ctx, SubjectNameChanged{Name: "A"})
	d.OnEvent(ctx, GoalHoursChanged{Hours: "600"})
	form := d.Current().Form
	assert.False(t, form.SaveEnabled)
	assert.NotEmpty(t, form.NameError)
	assert.NotEmpty(t, form.GoalError)

	d.OnEvent(ctx, SaveSubject{})
	assert.Empty(t, events.list())
	m.subjects.AssertNotCalled(t, "UpsertSubject", mock.Anything, mock.Anything)
}

func TestDashboard_AddSubjectAndTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d := NewDashboard(f.deps)
	defer d.Close()
	events := watch(t, d.Events())

	colors := models.PaletteColors(3)
	d.OnEvent(ctx, SubjectNameChanged{Name: "Physics"})
	d.OnEvent(ctx, GoalHoursChanged{Hours: "12.5"})
	d.OnEvent(ctx, SubjectColorsChanged{Colors: colors})
	d.OnEvent(ctx, SaveSubject{})

	assert.Equal(t, []string{"Subject added successfully."}, events.messages())
	st := value(t, d.State())
	require.Len(t, st.Subjects, 1)
	assert.Equal(t, "Physics", st.Subjects[0].Name)
	assert.Equal(t, colors, st.Subjects[0].Colors)
	assert.Equal(t, 1, st.TotalSubjectCount)
	assert.Equal(t, 12.5, st.TotalGoalHours)
	assert.Empty(t, st.Form.Name, "dialog is reset after a save")

	_, err := f.repos.Sessions.InsertSession(ctx, &models.Session{SubjectID: st.Subjects[0].ID, Date: 1, Duration: 5400})
	require.NoError(t, err)
	assert.Equal(t, 1.5, value(t, d.State()).TotalStudiedHours)
}

func TestDashboard_ToggleTaskAndDeleteSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	subject := f.subject(t, "Math", 10)
	task := models.Task{Title: "Worksheet", SubjectID: subject.ID, DueDate: 10}
	_, err := f.repos.Tasks.UpsertTask(ctx, &task)
	require.NoError(t, err)
	session := models.Session{SubjectID: subject.ID, Date: 5, Duration: 60}
	_, err = f.repos.Sessions.InsertSession(ctx, &session)
	require.NoError(t, err)

	d := NewDashboard(f.deps)
	defer d.Close()
	events := watch(t, d.Events())

	require.Len(t, d.Current().UpcomingTasks, 1)
	d.OnEvent(ctx, TaskCompletionToggled{Task: task})
	assert.Empty(t, d.Current().UpcomingTasks)

	// nothing picked yet
	d.OnEvent(ctx, DeleteSession{})
	d.OnEvent(ctx, DeleteSessionRequested{Session: session})
	require.NotNil(t, d.Current().PendingDelete)
	d.OnEvent(ctx, DeleteSession{})

	assert.Empty(t, d.Current().RecentSessions)
	assert.Nil(t, d.Current().PendingDelete)
	assert.Equal(t, []string{
		"Saved in completed tasks successfully.",
		"Study Session Deleted Successfully.",
	}, events.messages())
}
