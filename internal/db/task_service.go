package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/studysmart/internal/models"
)

// UpsertTask inserts a task without an id or updates the one with its id.
// The task's subject must exist.
func (s *Store) UpsertTask(ctx context.Context, task *models.Task) (uint, error) {
	err := s.Transaction(ctx, []string{TableSubjects, TableTasks}, func(tx *gorm.DB) error {
		if err := requireSubject(tx, task.SubjectID); err != nil {
			return err
		}
		return tx.Save(task).Error
	})
	if err != nil {
		return 0, fmt.Errorf("upsert task: %w", err)
	}
	return task.ID, nil
}

// DeleteTask removes a task by id
func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	err := s.Transaction(ctx, []string{TableTasks}, func(tx *gorm.DB) error {
		return tx.Delete(&models.Task{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete task #%d: %w", id, err)
	}
	return nil
}

// GetTaskByID retrieves a task by id
func (s *Store) GetTaskByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).Take(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task #%d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task #%d: %w", id, err)
	}
	return &task, nil
}

// Tasks streams every task
func (s *Store) Tasks() *Query[[]models.Task] {
	return newQuery(s, "tasks", func(tx *gorm.DB) ([]models.Task, error) {
		var tasks []models.Task
		err := tx.Order("taskId").Find(&tasks).Error
		return tasks, err
	}, TableTasks)
}

// TasksForSubject streams the tasks of one subject
func (s *Store) TasksForSubject(subjectID uint) *Query[[]models.Task] {
	name := fmt.Sprintf("tasks of subject #%d", subjectID)
	return newQuery(s, name, func(tx *gorm.DB) ([]models.Task, error) {
		var tasks []models.Task
		err := tx.Where("taskSubjectId = ?", subjectID).Order("taskId").Find(&tasks).Error
		return tasks, err
	}, TableTasks)
}
