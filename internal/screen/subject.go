package screen

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
)

// SubjectState is everything the subject detail screen renders
type SubjectState struct {
	// 0 until the subject was loaded
	SubjectID uint
	Form      SubjectForm

	StudiedHours   float64
	Progress       float64
	RecentSessions []models.Session
	UpcomingTasks  []models.Task
	CompletedTasks []models.Task

	PendingDelete *models.Session
}

// SubjectEvent is a UI event handled by the subject screen
type SubjectEvent interface {
	subjectEvent()
}

type (
	UpdateSubject struct{}
	DeleteSubject struct{}
)

func (UpdateSubject) subjectEvent()          {}
func (DeleteSubject) subjectEvent()          {}
func (SubjectNameChanged) subjectEvent()     {}
func (GoalHoursChanged) subjectEvent()       {}
func (SubjectColorsChanged) subjectEvent()   {}
func (TaskCompletionToggled) subjectEvent()  {}
func (DeleteSessionRequested) subjectEvent() {}
func (DeleteSession) subjectEvent()          {}

// Subject aggregates the detail screen of one subject
type Subject struct {
	*aggregator[SubjectState]
	deps Deps
}

// NewSubject loads subject id and wires its task and session streams. A
// subject that does not exist leaves the screen empty with SubjectID 0.
func NewSubject(ctx context.Context, deps Deps, id uint) *Subject {
	s := &Subject{
		aggregator: newAggregator(deps.logger("subject"), SubjectState{Form: NewSubjectForm()}),
		deps:       deps,
	}
	s.load(ctx, id)

	r := deps.Repos
	c := s.combined
	flow.Input(c, r.Tasks.UpcomingTasksForSubject(id), func(st SubjectState, tasks []models.Task) SubjectState {
		st.UpcomingTasks = tasks
		return st
	})
	flow.Input(c, r.Tasks.CompletedTasksForSubject(id), func(st SubjectState, tasks []models.Task) SubjectState {
		st.CompletedTasks = tasks
		return st
	})
	flow.Input(c, r.Sessions.RecentTenSessionsForSubject(id), func(st SubjectState, sessions []models.Session) SubjectState {
		st.RecentSessions = sessions
		return st
	})
	flow.Input(c, r.Sessions.TotalSessionsDurationForSubject(id), func(st SubjectState, secs int64) SubjectState {
		st.StudiedHours = models.Hours(secs)
		return st
	})
	c.Derive(func(st SubjectState) SubjectState {
		st.Progress = Progress(st.StudiedHours, st.Form.GoalHours)
		return st
	})
	c.Start()

	return s
}

// Progress is studied over goal hours clamped to [0, 1]. A goal that is
// zero or not a number counts as one hour.
func Progress(studied float64, goal string) float64 {
	p := studied / models.ParseGoalHours(goal)
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (s *Subject) load(ctx context.Context, id uint) {
	subject, err := s.deps.Repos.Subjects.GetSubjectByID(ctx, id)
	if err != nil {
		s.log.Error("failed to load subject", zap.Uint("subject", id), zap.Error(err))
		return
	}
	if subject == nil {
		return
	}
	s.update(func(st SubjectState) SubjectState {
		st.SubjectID = subject.ID
		st.Form = SubjectFormFrom(*subject)
		return st
	})
}

// OnEvent handles one UI event
func (s *Subject) OnEvent(ctx context.Context, ev SubjectEvent) {
	switch ev := ev.(type) {
	case SubjectNameChanged:
		s.update(func(st SubjectState) SubjectState {
			st.Form.Name = ev.Name
			st.Form = st.Form.validated()
			return st
		})
	case GoalHoursChanged:
		s.update(func(st SubjectState) SubjectState {
			st.Form.GoalHours = ev.Hours
			st.Form = st.Form.validated()
			return st
		})
	case SubjectColorsChanged:
		s.update(func(st SubjectState) SubjectState {
			st.Form.Colors = ev.Colors
			return st
		})
	case UpdateSubject:
		s.updateSubject(ctx)
	case DeleteSubject:
		s.deleteSubject(ctx)
	case TaskCompletionToggled:
		s.toggleTask(ctx, ev.Task)
	case DeleteSessionRequested:
		session := ev.Session
		s.update(func(st SubjectState) SubjectState {
			st.PendingDelete = &session
			return st
		})
	case DeleteSession:
		s.deleteSession(ctx)
	}
}

func (s *Subject) updateSubject(ctx context.Context) {
	st := s.Current()
	if st.SubjectID == 0 || !st.Form.SaveEnabled {
		return
	}
	if _, err := s.deps.Repos.Subjects.UpsertSubject(ctx, st.Form.subject(st.SubjectID)); err != nil {
		s.fail("Failed to update subject.", err)
		return
	}
	s.show("Subject updated successfully.")
}

func (s *Subject) deleteSubject(ctx context.Context) {
	id := s.Current().SubjectID
	if id == 0 {
		s.show("No subject to be deleted.")
		return
	}
	if err := s.deps.Repos.Subjects.DeleteSubject(ctx, id); err != nil {
		s.fail("Failed to delete subject.", err)
		return
	}
	s.show("Subject deleted successfully.")
	s.navigateBack()
}

func (s *Subject) toggleTask(ctx context.Context, task models.Task) {
	task.IsCompleted = !task.IsCompleted
	if _, err := s.deps.Repos.Tasks.UpsertTask(ctx, &task); err != nil {
		s.fail("Failed to update task.", err)
		return
	}
	if task.IsCompleted {
		s.show("Saved in completed tasks.")
	} else {
		s.show("Saved in upcoming tasks.")
	}
}

func (s *Subject) deleteSession(ctx context.Context) {
	s.deletePending(ctx, s.deps.Repos.Sessions, s.Current().PendingDelete, func(st SubjectState) SubjectState {
		st.PendingDelete = nil
		return st
	})
}
