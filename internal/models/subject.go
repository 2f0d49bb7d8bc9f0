package models

import "math/rand/v2"

// Subject is something the user studies towards a goal number of hours
type Subject struct {
	ID        uint      `gorm:"column:subjectId;primaryKey;autoIncrement" json:"subject_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	GoalHours float64   `gorm:"column:goalHrs;not null" json:"goal_hrs"`
	Colors    ColorList `gorm:"column:colors;type:text;not null" json:"colors"`
}

// TableName pins the table name used by the store
func (Subject) TableName() string {
	return "subjects"
}

// SubjectCardColors is the fixed palette of two-stop gradients (ARGB) a subject card can use
var SubjectCardColors = []ColorList{
	{0xFF5B8DEF, 0xFF8FB5FF}, // blue
	{0xFF7C3AED, 0xFFA78BFA}, // purple
	{0xFF22C55E, 0xFF86EFAC}, // green
	{0xFFF59E0B, 0xFFFCD34D}, // amber
	{0xFFEF4444, 0xFFFCA5A5}, // red
}

// PaletteColors expands a palette index into its concrete colour values.
// Out of range indexes wrap around.
func PaletteColors(index int) ColorList {
	n := len(SubjectCardColors)
	index = ((index % n) + n) % n
	return append(ColorList(nil), SubjectCardColors[index]...)
}

// RandomPaletteColors picks a palette entry for a freshly opened subject dialog
func RandomPaletteColors() ColorList {
	return PaletteColors(rand.IntN(len(SubjectCardColors)))
}
