package repository

import (
	"context"
	"errors"

	"github.com/balkashynov/studysmart/internal/db"
	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
)

const (
	recentFive = 5
	recentTen  = 10
)

// Sessions implements SessionRepository on top of the store
type Sessions struct {
	store *db.Store
}

// NewSessions creates a session repository
func NewSessions(store *db.Store) *Sessions {
	return &Sessions{store: store}
}

func (r *Sessions) InsertSession(ctx context.Context, session *models.Session) (uint, error) {
	return r.store.UpsertSession(ctx, session)
}

func (r *Sessions) DeleteSession(ctx context.Context, id uint) error {
	return r.store.DeleteSession(ctx, id)
}

func (r *Sessions) GetSessionByID(ctx context.Context, id uint) (*models.Session, error) {
	session, err := r.store.GetSessionByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return session, err
}

func (r *Sessions) AllSessions() flow.Stream[[]models.Session] {
	return r.store.Sessions()
}

func (r *Sessions) RecentFiveSessions() flow.Stream[[]models.Session] {
	return r.store.RecentSessions(recentFive)
}

func (r *Sessions) RecentTenSessionsForSubject(subjectID uint) flow.Stream[[]models.Session] {
	return r.store.RecentSessionsForSubject(subjectID, recentTen)
}

func (r *Sessions) TotalSessionsDuration() flow.Stream[int64] {
	return r.store.TotalSessionDuration()
}

func (r *Sessions) TotalSessionsDurationForSubject(subjectID uint) flow.Stream[int64] {
	return r.store.TotalSessionDurationForSubject(subjectID)
}
