package repository

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/balkashynov/studysmart/internal/db"
	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
)

// Tasks implements TaskRepository on top of the store
type Tasks struct {
	store *db.Store
}

// NewTasks creates a task repository
func NewTasks(store *db.Store) *Tasks {
	return &Tasks{store: store}
}

func (r *Tasks) UpsertTask(ctx context.Context, task *models.Task) (uint, error) {
	return r.store.UpsertTask(ctx, task)
}

func (r *Tasks) DeleteTask(ctx context.Context, id uint) error {
	return r.store.DeleteTask(ctx, id)
}

func (r *Tasks) GetTaskByID(ctx context.Context, id uint) (*models.Task, error) {
	task, err := r.store.GetTaskByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return task, err
}

func (r *Tasks) AllTasks() flow.Stream[[]models.Task] {
	return flow.Map(r.store.Tasks(), SortTasks)
}

func (r *Tasks) AllUpcomingTasks() flow.Stream[[]models.Task] {
	return flow.Map(r.store.Tasks(), upcoming)
}

func (r *Tasks) UpcomingTasksForSubject(subjectID uint) flow.Stream[[]models.Task] {
	return flow.Map(r.store.TasksForSubject(subjectID), upcoming)
}

func (r *Tasks) CompletedTasksForSubject(subjectID uint) flow.Stream[[]models.Task] {
	return flow.Map(r.store.TasksForSubject(subjectID), completed)
}

func upcoming(tasks []models.Task) []models.Task {
	return SortTasks(filterTasks(tasks, false))
}

func completed(tasks []models.Task) []models.Task {
	return SortTasks(filterTasks(tasks, true))
}

func filterTasks(tasks []models.Task, done bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsCompleted == done {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks orders tasks by due date, earliest first; tasks due at the same
// time are ordered High, Medium, Low. The input slice is not modified.
func SortTasks(tasks []models.Task) []models.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b models.Task) int {
		if c := cmp.Compare(a.DueDate, b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(b.Priority, a.Priority)
	})
	return sorted
}
