package repository

import (
	"context"
	"errors"

	"github.com/balkashynov/studysmart/internal/db"
	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
)

// Subjects implements SubjectRepository on top of the store
type Subjects struct {
	store *db.Store
}

// NewSubjects creates a subject repository
func NewSubjects(store *db.Store) *Subjects {
	return &Subjects{store: store}
}

func (r *Subjects) UpsertSubject(ctx context.Context, subject *models.Subject) (uint, error) {
	return r.store.UpsertSubject(ctx, subject)
}

func (r *Subjects) GetSubjectByID(ctx context.Context, id uint) (*models.Subject, error) {
	subject, err := r.store.GetSubjectByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return subject, err
}

// DeleteSubject is the only way a subject leaves the store. Sessions, tasks
// and the subject go in one transaction.
func (r *Subjects) DeleteSubject(ctx context.Context, id uint) error {
	return r.store.DeleteSubjectCascade(ctx, id)
}

func (r *Subjects) AllSubjects() flow.Stream[[]models.Subject] {
	return r.store.Subjects()
}

func (r *Subjects) TotalSubjectCount() flow.Stream[int] {
	return r.store.SubjectCount()
}

func (r *Subjects) TotalGoalHours() flow.Stream[float64] {
	return r.store.TotalGoalHours()
}
