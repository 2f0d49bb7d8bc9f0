package repository

import (
	"context"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
)

// SubjectRepository manages subject persistence
type SubjectRepository interface {
	// UpsertSubject inserts a subject without id or updates it in place
	UpsertSubject(ctx context.Context, subject *models.Subject) (uint, error)
	// GetSubjectByID returns nil without error when the subject does not exist
	GetSubjectByID(ctx context.Context, id uint) (*models.Subject, error)
	// DeleteSubject removes the subject together with its sessions and tasks
	DeleteSubject(ctx context.Context, id uint) error
	AllSubjects() flow.Stream[[]models.Subject]
	TotalSubjectCount() flow.Stream[int]
	TotalGoalHours() flow.Stream[float64]
}

// TaskRepository manages task persistence
type TaskRepository interface {
	UpsertTask(ctx context.Context, task *models.Task) (uint, error)
	DeleteTask(ctx context.Context, id uint) error
	// GetTaskByID returns nil without error when the task does not exist
	GetTaskByID(ctx context.Context, id uint) (*models.Task, error)
	AllTasks() flow.Stream[[]models.Task]
	AllUpcomingTasks() flow.Stream[[]models.Task]
	UpcomingTasksForSubject(subjectID uint) flow.Stream[[]models.Task]
	CompletedTasksForSubject(subjectID uint) flow.Stream[[]models.Task]
}

// SessionRepository manages study session persistence
type SessionRepository interface {
	InsertSession(ctx context.Context, session *models.Session) (uint, error)
	DeleteSession(ctx context.Context, id uint) error
	GetSessionByID(ctx context.Context, id uint) (*models.Session, error)
	AllSessions() flow.Stream[[]models.Session]
	RecentFiveSessions() flow.Stream[[]models.Session]
	RecentTenSessionsForSubject(subjectID uint) flow.Stream[[]models.Session]
	// TotalSessionsDuration streams the summed duration in seconds
	TotalSessionsDuration() flow.Stream[int64]
	TotalSessionsDurationForSubject(subjectID uint) flow.Stream[int64]
}

// Repositories bundles the three repositories the screens are built from
type Repositories struct {
	Subjects SubjectRepository
	Tasks    TaskRepository
	Sessions SessionRepository
}
