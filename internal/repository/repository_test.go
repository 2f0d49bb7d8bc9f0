package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/studysmart/internal/db"
	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
)

func newTestRepos(t *testing.T) Repositories {
	t.Helper()
	store, err := db.Open(db.MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func first[T any](t *testing.T, src flow.Stream[T]) T {
	t.Helper()
	v, ok := flow.First(src)
	require.True(t, ok, "stream did not replay a value")
	return v
}

func addSubject(t *testing.T, r Repositories, name string) uint {
	t.Helper()
	id, err := r.Subjects.UpsertSubject(context.Background(), &models.Subject{
		Name: name, GoalHours: 5, Colors: models.PaletteColors(2),
	})
	require.NoError(t, err)
	return id
}

func TestSortTasks_DueThenPriority(t *testing.T) {
	const d1, d2, d3 = 1000, 2000, 3000
	tasks := []models.Task{
		{Title: "second", DueDate: d2, Priority: models.PriorityLow},
		{Title: "first", DueDate: d1, Priority: models.PriorityHigh},
		{Title: "third", DueDate: d3, Priority: models.PriorityMedium},
		{Title: "tie-high", DueDate: d2, Priority: models.PriorityHigh},
		{Title: "tie-medium", DueDate: d2, Priority: models.PriorityMedium},
	}

	got := SortTasks(tasks)

	var titles []string
	for _, task := range got {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"first", "tie-high", "tie-medium", "second", "third"}, titles)
	assert.Equal(t, "second", tasks[0].Title, "input left untouched")
}

func TestTasks_UpcomingAndCompletedSplit(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	math := addSubject(t, r, "Math")
	bio := addSubject(t, r, "Bio")

	seed := []models.Task{
		{Title: "Homework", DueDate: 300, Priority: models.PriorityLow, SubjectID: math},
		{Title: "Revision", DueDate: 100, Priority: models.PriorityHigh, SubjectID: math},
		{Title: "Old quiz", DueDate: 50, IsCompleted: true, SubjectID: math},
		{Title: "Lab report", DueDate: 200, Priority: models.PriorityMedium, SubjectID: bio},
	}
	for i := range seed {
		_, err := r.Tasks.UpsertTask(ctx, &seed[i])
		require.NoError(t, err)
	}

	upcoming := first(t, r.Tasks.UpcomingTasksForSubject(math))
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Revision", upcoming[0].Title)
	assert.Equal(t, "Homework", upcoming[1].Title)

	done := first(t, r.Tasks.CompletedTasksForSubject(math))
	require.Len(t, done, 1)
	assert.Equal(t, "Old quiz", done[0].Title)

	all := first(t, r.Tasks.AllUpcomingTasks())
	require.Len(t, all, 3)
	assert.Equal(t, []int64{100, 200, 300}, []int64{all[0].DueDate, all[1].DueDate, all[2].DueDate})

	assert.Len(t, first(t, r.Tasks.AllTasks()), 4)
}

func TestTasks_CompletingMovesBetweenLists(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	id := addSubject(t, r, "Math")

	task := &models.Task{Title: "Essay", DueDate: 10, SubjectID: id}
	_, err := r.Tasks.UpsertTask(ctx, task)
	require.NoError(t, err)

	var upcoming [][]models.Task
	cancel := r.Tasks.UpcomingTasksForSubject(id).Subscribe(func(ts []models.Task) {
		upcoming = append(upcoming, ts)
	})
	defer cancel()

	task.IsCompleted = true
	_, err = r.Tasks.UpsertTask(ctx, task)
	require.NoError(t, err)

	require.Len(t, upcoming, 2)
	assert.Len(t, upcoming[0], 1)
	assert.Empty(t, upcoming[1])
	assert.Len(t, first(t, r.Tasks.CompletedTasksForSubject(id)), 1)
}

func TestGetByID_MissingIsNil(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)

	subject, err := r.Subjects.GetSubjectByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, subject)

	task, err := r.Tasks.GetTaskByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, task)

	session, err := r.Sessions.GetSessionByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessions_RecentWindows(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	math := addSubject(t, r, "Math")
	bio := addSubject(t, r, "Bio")

	for i := 1; i <= 14; i++ {
		subject := math
		if i%2 == 0 {
			subject = bio
		}
		_, err := r.Sessions.InsertSession(ctx, &models.Session{
			SubjectID: subject,
			Date:      int64(i),
			Duration:  models.MinSessionSeconds,
		})
		require.NoError(t, err)
	}

	five := first(t, r.Sessions.RecentFiveSessions())
	require.Len(t, five, 5)
	assert.Equal(t, int64(14), five[0].Date)
	assert.Equal(t, int64(10), five[4].Date)

	ten := first(t, r.Sessions.RecentTenSessionsForSubject(math))
	require.Len(t, ten, 7)
	assert.Equal(t, int64(13), ten[0].Date)
	assert.Equal(t, int64(1), ten[6].Date)

	assert.Len(t, first(t, r.Sessions.AllSessions()), 14)
	assert.Equal(t, int64(14*models.MinSessionSeconds), first(t, r.Sessions.TotalSessionsDuration()))
	assert.Equal(t, int64(7*models.MinSessionSeconds), first(t, r.Sessions.TotalSessionsDurationForSubject(bio)))
}

func TestDeleteSubject_Cascades(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	keep := addSubject(t, r, "Keep")
	drop := addSubject(t, r, "Drop")

	for _, id := range []uint{keep, drop, drop} {
		_, err := r.Tasks.UpsertTask(ctx, &models.Task{Title: "Task", SubjectID: id})
		require.NoError(t, err)
		_, err = r.Sessions.InsertSession(ctx, &models.Session{SubjectID: id, Date: 1, Duration: 40})
		require.NoError(t, err)
	}

	require.NoError(t, r.Subjects.DeleteSubject(ctx, drop))

	subjects := first(t, r.Subjects.AllSubjects())
	require.Len(t, subjects, 1)
	assert.Equal(t, keep, subjects[0].ID)
	assert.Empty(t, first(t, r.Tasks.UpcomingTasksForSubject(drop)))
	for _, s := range first(t, r.Sessions.AllSessions()) {
		assert.Equal(t, keep, s.SubjectID)
	}
	assert.Equal(t, 1, first(t, r.Subjects.TotalSubjectCount()))
	assert.Equal(t, 5.0, first(t, r.Subjects.TotalGoalHours()))
}
