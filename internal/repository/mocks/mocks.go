package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
)

// SubjectRepository is a mock for repository.SubjectRepository.
type SubjectRepository struct {
	mock.Mock
}

func (m *SubjectRepository) UpsertSubject(ctx context.Context, subject *models.Subject) (uint, error) {
	args := m.Called(ctx, subject)
	return args.Get(0).(uint), args.Error(1)
}

func (m *SubjectRepository) GetSubjectByID(ctx context.Context, id uint) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if subject, ok := args.Get(0).(*models.Subject); ok {
		return subject, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SubjectRepository) DeleteSubject(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SubjectRepository) AllSubjects() flow.Stream[[]models.Subject] {
	args := m.Called()
	return args.Get(0).(flow.Stream[[]models.Subject])
}

func (m *SubjectRepository) TotalSubjectCount() flow.Stream[int] {
	args := m.Called()
	return args.Get(0).(flow.Stream[int])
}

func (m *SubjectRepository) TotalGoalHours() flow.Stream[float64] {
	args := m.Called()
	return args.Get(0).(flow.Stream[float64])
}

// TaskRepository is a mock for repository.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) UpsertTask(ctx context.Context, task *models.Task) (uint, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(uint), args.Error(1)
}

func (m *TaskRepository) DeleteTask(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TaskRepository) GetTaskByID(ctx context.Context, id uint) (*models.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*models.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) AllTasks() flow.Stream[[]models.Task] {
	args := m.Called()
	return args.Get(0).(flow.Stream[[]models.Task])
}

func (m *TaskRepository) AllUpcomingTasks() flow.Stream[[]models.Task] {
	args := m.Called()
	return args.Get(0).(flow.Stream[[]models.Task])
}

func (m *TaskRepository) UpcomingTasksForSubject(subjectID uint) flow.Stream[[]models.Task] {
	args := m.Called(subjectID)
	return args.Get(0).(flow.Stream[[]models.Task])
}

func (m *TaskRepository) CompletedTasksForSubject(subjectID uint) flow.Stream[[]models.Task] {
	args := m.Called(subjectID)
	return args.Get(0).(flow.Stream[[]models.Task])
}

// SessionRepository is a mock for repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) InsertSession(ctx context.Context, session *models.Session) (uint, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(uint), args.Error(1)
}

func (m *SessionRepository) DeleteSession(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionRepository) GetSessionByID(ctx context.Context, id uint) (*models.Session, error) {
	args := m.Called(ctx, id)
	if session, ok := args.Get(0).(*models.Session); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) AllSessions() flow.Stream[[]models.Session] {
	args := m.Called()
	return args.Get(0).(flow.Stream[[]models.Session])
}

func (m *SessionRepository) RecentFiveSessions() flow.Stream[[]models.Session] {
	args := m.Called()
	return args.Get(0).(flow.Stream[[]models.Session])
}

func (m *SessionRepository) RecentTenSessionsForSubject(subjectID uint) flow.Stream[[]models.Session] {
	args := m.Called(subjectID)
	return args.Get(0).(flow.Stream[[]models.Session])
}

func (m *SessionRepository) TotalSessionsDuration() flow.Stream[int64] {
	args := m.Called()
	return args.Get(0).(flow.Stream[int64])
}

func (m *SessionRepository) TotalSessionsDurationForSubject(subjectID uint) flow.Stream[int64] {
	args := m.Called(subjectID)
	return args.Get(0).(flow.Stream[int64])
}
