package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/studysmart/internal/models"
)

// newestFirst orders sessions by start timestamp, latest insert winning ties
var newestFirst = []clause.OrderByColumn{
	{Column: clause.Column{Name: "date"}, Desc: true},
	{Column: clause.Column{Name: "sessionId"}, Desc: true},
}

func orderNewestFirst(tx *gorm.DB) *gorm.DB {
	for _, col := range newestFirst {
		tx = tx.Order(col)
	}
	return tx
}

// UpsertSession inserts a session without an id or updates the one with its
// id. The session's subject must exist.
func (s *Store) UpsertSession(ctx context.Context, session *models.Session) (uint, error) {
	err := s.Transaction(ctx, []string{TableSubjects, TableSessions}, func(tx *gorm.DB) error {
		if err := requireSubject(tx, session.SubjectID); err != nil {
			return err
		}
		return tx.Save(session).Error
	})
	if err != nil {
		return 0, fmt.Errorf("upsert session: %w", err)
	}
	return session.ID, nil
}

// DeleteSession removes a session by id
func (s *Store) DeleteSession(ctx context.Context, id uint) error {
	err := s.Transaction(ctx, []string{TableSessions}, func(tx *gorm.DB) error {
		return tx.Delete(&models.Session{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete session #%d: %w", id, err)
	}
	return nil
}

// GetSessionByID retrieves a session by id
func (s *Store) GetSessionByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Take(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session #%d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session #%d: %w", id, err)
	}
	return &session, nil
}

// Sessions streams every session, newest first
func (s *Store) Sessions() *Query[[]models.Session] {
	return s.RecentSessions(0)
}

// RecentSessions streams the newest limit sessions; limit 0 means all
func (s *Store) RecentSessions(limit int) *Query[[]models.Session] {
	name := fmt.Sprintf("recent %d sessions", limit)
	return newQuery(s, name, func(tx *gorm.DB) ([]models.Session, error) {
		var sessions []models.Session
		q := orderNewestFirst(tx)
		if limit > 0 {
			q = q.Limit(limit)
		}
		err := q.Find(&sessions).Error
		return sessions, err
	}, TableSessions)
}

// RecentSessionsForSubject streams the newest limit sessions of one subject
func (s *Store) RecentSessionsForSubject(subjectID uint, limit int) *Query[[]models.Session] {
	name := fmt.Sprintf("recent %d sessions of subject #%d", limit, subjectID)
	return newQuery(s, name, func(tx *gorm.DB) ([]models.Session, error) {
		var sessions []models.Session
		q := orderNewestFirst(tx.Where("sessionSubjectId = ?", subjectID))
		if limit > 0 {
			q = q.Limit(limit)
		}
		err := q.Find(&sessions).Error
		return sessions, err
	}, TableSessions)
}

// TotalSessionDuration streams the sum of all session durations in seconds
func (s *Store) TotalSessionDuration() *Query[int64] {
	return newQuery(s, "total session duration", func(tx *gorm.DB) (int64, error) {
		var total int64
		err := tx.Model(&models.Session{}).Select("COALESCE(SUM(duration), 0)").Scan(&total).Error
		return total, err
	}, TableSessions)
}

// TotalSessionDurationForSubject streams the summed duration of one subject's sessions
func (s *Store) TotalSessionDurationForSubject(subjectID uint) *Query[int64] {
	name := fmt.Sprintf("session duration of subject #%d", subjectID)
	return newQuery(s, name, func(tx *gorm.DB) (int64, error) {
		var total int64
		err := tx.Model(&models.Session{}).
			Where("sessionSubjectId = ?", subjectID).
			Select("COALESCE(SUM(duration), 0)").
			Scan(&total).Error
		return total, err
	}, TableSessions)
}
