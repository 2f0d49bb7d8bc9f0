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

func TestTask_CreateForPreselectedSubject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	math := f.subject(t, "Math", 10)

	e := NewTask(ctx, f.deps, TaskArgs{SubjectID: math.ID})
	defer e.Close()
	events := watch(t, e.Events())

	st := value(t, e.State())
	assert.Equal(t, math.ID, st.SubjectID)
	assert.Equal(t, "Math", st.RelatedToSubject)
	assert.Equal(t, models.PriorityMedium, st.Priority)
	assert.False(t, st.SaveEnabled)

	e.OnEvent(ctx, TitleChanged{Title: "Past paper"})
	e.OnEvent(ctx, DescriptionChanged{Description: "2019 paper 2"})
	e.OnEvent(ctx, PriorityChanged{Priority: models.PriorityHigh})
	e.OnEvent(ctx, SaveTask{})

	assert.Equal(t, []Effect{ShowMessage{Text: "Task added successfully."}, NavigateBack{}}, events.list())
	tasks := value(t, f.repos.Tasks.AllUpcomingTasks())
	require.Len(t, tasks, 1)
	assert.Equal(t, "Past paper", tasks[0].Title)
	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, fixedNow.UnixMilli(), tasks[0].DueDate, "due date defaults to now")
	assert.Equal(t, "Math", tasks[0].RelatedToSubject)
}

func TestTask_SaveRequiresSubjectAndValidTitle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := NewTask(ctx, f.deps, TaskArgs{})
	defer e.Close()
	events := watch(t, e.Events())

	e.OnEvent(ctx, TitleChanged{Title: "abc"})
	assert.NotEmpty(t, e.Current().TitleError)
	e.OnEvent(ctx, SaveTask{})
	assert.Empty(t, events.list(), "disabled save is ignored")

	e.OnEvent(ctx, TitleChanged{Title: "abcd"})
	e.OnEvent(ctx, SaveTask{})
	assert.Equal(t, []string{"Please select related to Subject."}, events.messages())
	assert.Empty(t, value(t, f.repos.Tasks.AllTasks()))
}

func TestTask_EditExisting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	math := f.subject(t, "Math", 10)
	bio := f.subject(t, "Bio", 10)
	task := models.Task{Title: "Flashcards", DueDate: 99, Priority: models.PriorityLow, SubjectID: math.ID, RelatedToSubject: "Math"}
	_, err := f.repos.Tasks.UpsertTask(ctx, &task)
	require.NoError(t, err)

	e := NewTask(ctx, f.deps, TaskArgs{TaskID: task.ID})
	defer e.Close()

	st := value(t, e.State())
	assert.Equal(t, task.ID, st.TaskID)
	assert.Equal(t, models.PriorityLow, st.Priority)
	assert.Len(t, st.Subjects, 2)

	e.OnEvent(ctx, RelatedSubjectChanged{Subject: bio})
	e.OnEvent(ctx, DueDateChanged{Millis: 500})
	e.OnEvent(ctx, CompletionToggled{})
	e.OnEvent(ctx, SaveTask{})

	all := value(t, f.repos.Tasks.AllTasks())
	require.Len(t, all, 1, "updated in place")
	assert.Equal(t, bio.ID, all[0].SubjectID)
	assert.Equal(t, int64(500), all[0].DueDate)
	assert.True(t, all[0].IsCompleted)
	assert.Equal(t, models.PriorityLow, all[0].Priority)
}

func TestTask_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	math := f.subject(t, "Math", 10)
	task := models.Task{Title: "Flashcards", SubjectID: math.ID}
	_, err := f.repos.Tasks.UpsertTask(ctx, &task)
	require.NoError(t, err)

	fresh := NewTask(ctx, f.deps, TaskArgs{})
	defer fresh.Close()
	freshEvents := watch(t, fresh.Events())
	fresh.OnEvent(ctx, DeleteTask{})
	assert.Equal(t, []string{"No task to be deleted."}, freshEvents.messages())

	e := NewTask(ctx, f.deps, TaskArgs{TaskID: task.ID})
	defer e.Close()
	events := watch(t, e.Events())
	e.OnEvent(ctx, DeleteTask{})

	assert.Equal(t, []Effect{ShowMessage{Text: "Task deleted successfully."}, NavigateBack{}}, events.list())
	assert.Empty(t, value(t, f.repos.Tasks.AllTasks()))
}

func TestTask_DeletedSubjectIsUnselected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	math := f.subject(t, "Math", 10)

	e := NewTask(ctx, f.deps, TaskArgs{SubjectID: math.ID})
	defer e.Close()
	events := watch(t, e.Events())
	e.OnEvent(ctx, TitleChanged{Title: "Past paper"})

	require.NoError(t, f.repos.Subjects.DeleteSubject(ctx, math.ID))
	st := e.Current()
	assert.Zero(t, st.SubjectID)
	assert.Empty(t, st.RelatedToSubject)

	e.OnEvent(ctx, SaveTask{})
	assert.Equal(t, []string{"Please select related to Subject."}, events.messages())
	assert.Empty(t, value(t, f.repos.Tasks.AllTasks()))
}

func TestTask_SaveFailure(t *testing.T) {
	ctx := context.Background()
	subjects := &mocks.SubjectRepository{}
	tasks := &mocks.TaskRepository{}
	subjects.On("GetSubjectByID", mock.Anything, uint(5)).Return(&models.Subject{ID: 5, Name: "Art"}, nil)
	subjects.On("AllSubjects").Return(flow.Stream[[]models.Subject](flow.NewState([]models.Subject{{ID: 5, Name: "Art"}})))
	tasks.On("UpsertTask", mock.Anything, mock.Anything).Return(uint(0), errors.New("disk I/O error"))

	e := NewTask(ctx, Deps{Repos: repository.Repositories{Subjects: subjects, Tasks: tasks}}, TaskArgs{SubjectID: 5})
	defer e.Close()
	events := watch(t, e.Events())

	e.OnEvent(ctx, TitleChanged{Title: "Sketchbook"})
	before := e.Current()
	e.OnEvent(ctx, SaveTask{})

	assert.Equal(t, before, e.Current())
	effects := events.list()
	require.Len(t, effects, 1)
	msg := effects[0].(ShowMessage)
	assert.Equal(t, "Failed to add Task. disk I/O error", msg.Text)
	assert.True(t, msg.Long)
}
