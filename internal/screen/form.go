package screen

import (
	"strconv"
	"strings"

	"github.com/balkashynov/studysmart/internal/models"
)

// SubjectForm holds the subject dialog fields and their validation
type SubjectForm struct {
	Name      string
	GoalHours string
	Colors    models.ColorList

	NameError   string
	GoalError   string
	SaveEnabled bool
}

// NewSubjectForm returns an empty form with a random card palette
func NewSubjectForm() SubjectForm {
	return SubjectForm{Colors: models.RandomPaletteColors()}.validated()
}

// SubjectFormFrom fills the form from a stored subject
func SubjectFormFrom(s models.Subject) SubjectForm {
	return SubjectForm{
		Name:      s.Name,
		GoalHours: formatHours(s.GoalHours),
		Colors:    append(models.ColorList(nil), s.Colors...),
	}.validated()
}

func (f SubjectForm) validated() SubjectForm {
	f.NameError = models.ValidateSubjectName(f.Name)
	f.GoalError = models.ValidateGoalHours(f.GoalHours)
	f.SaveEnabled = f.NameError == "" && f.GoalError == ""
	return f
}

// subject builds the entity to persist; id 0 inserts
func (f SubjectForm) subject(id uint) *models.Subject {
	return &models.Subject{
		ID:        id,
		Name:      trim(f.Name),
		GoalHours: models.ParseGoalHours(f.GoalHours),
		Colors:    f.Colors,
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
