package models

import "time"

// Task represents a todo item that belongs to a subject
type Task struct {
	ID          uint     `gorm:"column:taskId;primaryKey;autoIncrement" json:"task_id"`
	Title       string   `gorm:"column:title;not null" json:"title"`
	Description string   `gorm:"column:description" json:"description"`
	DueDate     int64    `gorm:"column:dueDate;not null" json:"due_date"` // epoch millis
	Priority    Priority `gorm:"column:priority;not null" json:"priority"`
	IsCompleted bool     `gorm:"column:isCompleted;not null;default:false" json:"is_completed"`

	// Subject name at the time the task was saved; not updated on rename
	RelatedToSubject string `gorm:"column:relatedToSubjects" json:"related_to_subject"`
	SubjectID        uint   `gorm:"column:taskSubjectId;index;not null" json:"task_subject_id"`
}

// TableName pins the table name used by the store
func (Task) TableName() string {
	return "tasks"
}

// Due returns the due date as a local time
func (t Task) Due() time.Time {
	return time.UnixMilli(t.DueDate)
}
