package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/studysmart/internal/models"
)

// UpsertSubject inserts a subject without an id or updates the one with its id.
// The id assigned by the database is written back into subject.
func (s *Store) UpsertSubject(ctx context.Context, subject *models.Subject) (uint, error) {
	err := s.Transaction(ctx, []string{TableSubjects}, func(tx *gorm.DB) error {
		return tx.Save(subject).Error
	})
	if err != nil {
		return 0, fmt.Errorf("upsert subject: %w", err)
	}
	return subject.ID, nil
}

// GetSubjectByID retrieves a subject by id
func (s *Store) GetSubjectByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	err := s.db.WithContext(ctx).Take(&subject, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("subject #%d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subject #%d: %w", id, err)
	}
	return &subject, nil
}

// requireSubject fails unless the subject exists. Writers that reference a
// subject call it with the subjects table locked so a concurrent cascade
// cannot remove the subject before they commit.
func requireSubject(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&models.Subject{}).Where("subjectId = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("subject #%d: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeleteSubjectCascade removes a subject with all of its sessions and tasks
// in one transaction
func (s *Store) DeleteSubjectCascade(ctx context.Context, id uint) error {
	tables := []string{TableSubjects, TableTasks, TableSessions}
	err := s.Transaction(ctx, tables, func(tx *gorm.DB) error {
		if err := tx.Where("sessionSubjectId = ?", id).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		if err := tx.Where("taskSubjectId = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
		if err := tx.Delete(&models.Subject{}, id).Error; err != nil {
			return fmt.Errorf("delete subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete subject #%d: %w", id, err)
	}
	return nil
}

// Subjects streams every subject in insertion order
func (s *Store) Subjects() *Query[[]models.Subject] {
	return newQuery(s, "subjects", func(tx *gorm.DB) ([]models.Subject, error) {
		var subjects []models.Subject
		err := tx.Order("subjectId").Find(&subjects).Error
		return subjects, err
	}, TableSubjects)
}

// SubjectCount streams the number of subjects
func (s *Store) SubjectCount() *Query[int] {
	return newQuery(s, "subject count", func(tx *gorm.DB) (int, error) {
		var n int64
		err := tx.Model(&models.Subject{}).Count(&n).Error
		return int(n), err
	}, TableSubjects)
}

// TotalGoalHours streams the sum of every subject's goal hours
func (s *Store) TotalGoalHours() *Query[float64] {
	return newQuery(s, "total goal hours", func(tx *gorm.DB) (float64, error) {
		var total float64
		err := tx.Model(&models.Subject{}).Select("COALESCE(SUM(goalHrs), 0)").Scan(&total).Error
		return total, err
	}, TableSubjects)
}
