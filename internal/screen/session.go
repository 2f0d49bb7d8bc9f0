package screen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
	"github.com/balkashynov/studysmart/internal/timer"
)

// SessionState is everything the study session screen renders
type SessionState struct {
	Subjects []models.Subject
	Sessions []models.Session
	Timer    timer.Snapshot

	// Selected subject; 0 and "" when none
	SubjectID        uint
	RelatedToSubject string

	PendingDelete *models.Session
}

// SessionEvent is a UI event handled by the session screen
type SessionEvent interface {
	sessionEvent()
}

type (
	RelatedSubjectChanged struct{ Subject models.Subject }
	SaveSession           struct{ Duration int64 }
	// SyncTimerSubject re-reads the subject of the running timer, as on re-entry
	SyncTimerSubject struct{}
	ToggleTimer      struct{}
	CancelTimer      struct{}
	// FinishSession ends the running session and saves it
	FinishSession struct{}
)

func (RelatedSubjectChanged) sessionEvent()  {}
func (SaveSession) sessionEvent()            {}
func (SyncTimerSubject) sessionEvent()       {}
func (ToggleTimer) sessionEvent()            {}
func (CancelTimer) sessionEvent()            {}
func (FinishSession) sessionEvent()          {}
func (DeleteSessionRequested) sessionEvent() {}
func (DeleteSession) sessionEvent()          {}

// Session aggregates the study session screen and drives the timer
type Session struct {
	*aggregator[SessionState]
	deps Deps
}

// NewSession wires the session screen. The selected subject starts out as
// the one the timer engine remembers, so re-entering the screen while a
// session runs shows its subject again.
func NewSession(deps Deps) *Session {
	initial := SessionState{SubjectID: deps.Timer.SubjectID()}
	s := &Session{
		aggregator: newAggregator(deps.logger("session"), initial),
		deps:       deps,
	}
	r := deps.Repos

	c := s.combined
	flow.Input(c, r.Subjects.AllSubjects(), func(st SessionState, subjects []models.Subject) SessionState {
		st.Subjects = subjects
		return st
	})
	flow.Input(c, r.Sessions.AllSessions(), func(st SessionState, sessions []models.Session) SessionState {
		st.Sessions = sessions
		return st
	})
	flow.Input[SessionState, timer.Snapshot](c, deps.Timer, func(st SessionState, snap timer.Snapshot) SessionState {
		st.Timer = snap
		return st
	})
	c.Derive(resolveSubject)
	c.Start()

	return s
}

// resolveSubject looks the selected subject id up in the live subject list.
// A subject that no longer exists is unselected.
func resolveSubject(st SessionState) SessionState {
	if st.SubjectID == 0 {
		st.RelatedToSubject = ""
		return st
	}
	for _, subject := range st.Subjects {
		if subject.ID == st.SubjectID {
			st.RelatedToSubject = subject.Name
			return st
		}
	}
	st.SubjectID = 0
	st.RelatedToSubject = ""
	return st
}

// OnEvent handles one UI event
func (s *Session) OnEvent(ctx context.Context, ev SessionEvent) {
	switch ev := ev.(type) {
	case RelatedSubjectChanged:
		s.selectSubject(ev.Subject.ID)
	case SyncTimerSubject:
		s.selectSubject(s.deps.Timer.SubjectID())
	case DeleteSessionRequested:
		session := ev.Session
		s.update(func(st SessionState) SessionState {
			st.PendingDelete = &session
			return st
		})
	case DeleteSession:
		s.deleteSession(ctx)
	case SaveSession:
		s.saveSession(ctx, ev.Duration)
	case ToggleTimer:
		s.toggleTimer(ctx)
	case CancelTimer:
		s.dispatch(ctx, timer.ActionCancel)
	case FinishSession:
		s.finish(ctx)
	}
}

func (s *Session) selectSubject(id uint) {
	s.update(func(st SessionState) SessionState {
		st.SubjectID = id
		return st
	})
}

func (s *Session) toggleTimer(ctx context.Context) {
	if s.deps.Timer.Snapshot().State == timer.Started {
		s.dispatch(ctx, timer.ActionStop)
		return
	}

	st := s.Current()
	if st.SubjectID == 0 {
		s.warn("Select a Subject to start study session.")
		return
	}
	s.deps.Timer.SetSubjectID(st.SubjectID)
	s.dispatch(ctx, timer.ActionStart)
}

// finish reads the elapsed time, resets a long enough timer and saves it
func (s *Session) finish(ctx context.Context) {
	duration := s.deps.Timer.Snapshot().Duration
	if duration >= models.MinSessionSeconds {
		s.dispatch(ctx, timer.ActionCancel)
	}
	s.saveSession(ctx, duration)
}

func (s *Session) saveSession(ctx context.Context, duration int64) {
	if duration < models.MinSessionSeconds {
		s.warn("Study Session must be not less than 36 seconds.")
		return
	}

	st := s.Current()
	if st.SubjectID == 0 {
		s.warn("Please select related to Subject.")
		return
	}

	session := &models.Session{
		SubjectID:        st.SubjectID,
		RelatedToSubject: st.RelatedToSubject,
		Date:             s.deps.now().UnixMilli(),
		Duration:         duration,
	}
	if _, err := s.deps.Repos.Sessions.InsertSession(ctx, session); err != nil {
		s.fail("Failed to add Study Session.", err)
		return
	}
	s.show("Study Session Saved Successfully.")
}

func (s *Session) deleteSession(ctx context.Context) {
	s.deletePending(ctx, s.deps.Repos.Sessions, s.Current().PendingDelete, func(st SessionState) SessionState {
		st.PendingDelete = nil
		return st
	})
}

func (s *Session) dispatch(ctx context.Context, a timer.Action) {
	if err := s.deps.Timer.Dispatch(ctx, a); err != nil {
		s.log.Error("timer action failed", zap.String("action", string(a)), zap.Error(err))
		s.warn(fmt.Sprintf("Timer is unavailable. %v", err))
	}
}
