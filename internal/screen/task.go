package screen

import (
	"context"

	"go.uber.org/zap"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
)

// TaskState is everything the task editor renders
type TaskState struct {
	Subjects []models.Subject

	// 0 for a task that was never saved
	TaskID      uint
	Title       string
	Description string
	DueDate     int64 // epoch millis; 0 means today at save time
	Priority    models.Priority
	IsCompleted bool

	SubjectID        uint
	RelatedToSubject string

	TitleError  string
	SaveEnabled bool
}

// TaskArgs selects what the editor opens with. Both ids are optional.
type TaskArgs struct {
	TaskID    uint
	SubjectID uint
}

// TaskEvent is a UI event handled by the task editor
type TaskEvent interface {
	taskEvent()
}

type (
	TitleChanged       struct{ Title string }
	DescriptionChanged struct{ Description string }
	DueDateChanged     struct{ Millis int64 }
	PriorityChanged    struct{ Priority models.Priority }
	CompletionToggled  struct{}
	SaveTask           struct{}
	DeleteTask         struct{}
)

func (TitleChanged) taskEvent()          {}
func (DescriptionChanged) taskEvent()    {}
func (DueDateChanged) taskEvent()        {}
func (PriorityChanged) taskEvent()       {}
func (CompletionToggled) taskEvent()     {}
func (SaveTask) taskEvent()              {}
func (DeleteTask) taskEvent()            {}
func (RelatedSubjectChanged) taskEvent() {}

// Task aggregates the task editor
type Task struct {
	*aggregator[TaskState]
	deps Deps
}

// NewTask opens the editor. An existing task is loaded by args.TaskID; a
// subject given by args.SubjectID is preselected.
func NewTask(ctx context.Context, deps Deps, args TaskArgs) *Task {
	initial := TaskState{Priority: models.PriorityMedium}.validated()
	t := &Task{
		aggregator: newAggregator(deps.logger("task"), initial),
		deps:       deps,
	}
	t.loadTask(ctx, args.TaskID)
	t.loadSubject(ctx, args.SubjectID)

	c := t.combined
	flow.Input(c, deps.Repos.Subjects.AllSubjects(), func(st TaskState, subjects []models.Subject) TaskState {
		st.Subjects = subjects
		return st
	})
	c.Derive(dropMissingSubject)
	c.Start()

	return t
}

// dropMissingSubject unselects a subject that was deleted while the editor
// is open. The name of a subject that still exists is kept as it was saved.
func dropMissingSubject(st TaskState) TaskState {
	if st.SubjectID == 0 {
		return st
	}
	for _, subject := range st.Subjects {
		if subject.ID == st.SubjectID {
			return st
		}
	}
	st.SubjectID = 0
	st.RelatedToSubject = ""
	return st
}

func (st TaskState) validated() TaskState {
	st.TitleError = models.ValidateTaskTitle(st.Title)
	st.SaveEnabled = st.TitleError == ""
	return st
}

func (t *Task) loadTask(ctx context.Context, id uint) {
	if id == 0 {
		return
	}
	task, err := t.deps.Repos.Tasks.GetTaskByID(ctx, id)
	if err != nil {
		t.log.Error("failed to load task", zap.Uint("task", id), zap.Error(err))
		return
	}
	if task == nil {
		return
	}
	t.update(func(st TaskState) TaskState {
		st.TaskID = task.ID
		st.Title = task.Title
		st.Description = task.Description
		st.DueDate = task.DueDate
		st.Priority = models.PriorityFromInt(int(task.Priority))
		st.IsCompleted = task.IsCompleted
		st.SubjectID = task.SubjectID
		st.RelatedToSubject = task.RelatedToSubject
		return st.validated()
	})
}

func (t *Task) loadSubject(ctx context.Context, id uint) {
	if id == 0 {
		return
	}
	subject, err := t.deps.Repos.Subjects.GetSubjectByID(ctx, id)
	if err != nil {
		t.log.Error("failed to load subject", zap.Uint("subject", id), zap.Error(err))
		return
	}
	if subject == nil {
		return
	}
	t.update(func(st TaskState) TaskState {
		st.SubjectID = subject.ID
		st.RelatedToSubject = subject.Name
		return st
	})
}

// OnEvent handles one UI event
func (t *Task) OnEvent(ctx context.Context, ev TaskEvent) {
	switch ev := ev.(type) {
	case TitleChanged:
		t.update(func(st TaskState) TaskState {
			st.Title = ev.Title
			return st.validated()
		})
	case DescriptionChanged:
		t.update(func(st TaskState) TaskState {
			st.Description = ev.Description
			return st
		})
	case DueDateChanged:
		t.update(func(st TaskState) TaskState {
			st.DueDate = ev.Millis
			return st
		})
	case PriorityChanged:
		t.update(func(st TaskState) TaskState {
			st.Priority = ev.Priority
			return st
		})
	case CompletionToggled:
		t.update(func(st TaskState) TaskState {
			st.IsCompleted = !st.IsCompleted
			return st
		})
	case RelatedSubjectChanged:
		t.update(func(st TaskState) TaskState {
			st.SubjectID = ev.Subject.ID
			st.RelatedToSubject = ev.Subject.Name
			return st
		})
	case SaveTask:
		t.save(ctx)
	case DeleteTask:
		t.delete(ctx)
	}
}

func (t *Task) save(ctx context.Context) {
	st := t.Current()
	if !st.SaveEnabled {
		return
	}
	if st.SubjectID == 0 {
		t.warn("Please select related to Subject.")
		return
	}

	due := st.DueDate
	if due == 0 {
		due = t.deps.now().UnixMilli()
	}
	task := &models.Task{
		ID:               st.TaskID,
		Title:            trim(st.Title),
		Description:      st.Description,
		DueDate:          due,
		Priority:         st.Priority,
		IsCompleted:      st.IsCompleted,
		RelatedToSubject: st.RelatedToSubject,
		SubjectID:        st.SubjectID,
	}
	id, err := t.deps.Repos.Tasks.UpsertTask(ctx, task)
	if err != nil {
		t.fail("Failed to add Task.", err)
		return
	}
	t.update(func(st TaskState) TaskState {
		st.TaskID = id
		st.DueDate = due
		return st
	})
	t.show("Task added successfully.")
	t.navigateBack()
}

func (t *Task) delete(ctx context.Context) {
	id := t.Current().TaskID
	if id == 0 {
		t.warn("No task to be deleted.")
		return
	}
	if err := t.deps.Repos.Tasks.DeleteTask(ctx, id); err != nil {
		t.fail("Failed to delete task.", err)
		return
	}
	t.show("Task deleted successfully.")
	t.navigateBack()
}
