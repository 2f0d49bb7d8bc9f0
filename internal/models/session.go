package models

import (
	"math"
	"time"
)

// MinSessionSeconds is the shortest study session that is ever persisted
const MinSessionSeconds = 36

// Session represents a finished study session
type Session struct {
	ID               uint   `gorm:"column:sessionId;primaryKey;autoIncrement" json:"session_id"`
	SubjectID        uint   `gorm:"column:sessionSubjectId;index;not null" json:"session_subject_id"`
	RelatedToSubject string `gorm:"column:relatedToSub" json:"related_to_sub"`
	Date             int64  `gorm:"column:date;index;not null" json:"date"`   // epoch millis, set at save time
	Duration         int64  `gorm:"column:duration;not null" json:"duration"` // seconds
}

// TableName pins the table name used by the store
func (Session) TableName() string {
	return "sessions"
}

// StartedAt returns the session timestamp as a local time
func (s Session) StartedAt() time.Time {
	return time.UnixMilli(s.Date)
}

// Hours converts a number of seconds to hours rounded to two decimals
func Hours(seconds int64) float64 {
	hrs := float64(seconds) / 3600
	return math.Round(hrs*100) / 100
}
