package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSubjectName(t *testing.T) {
	assert.NotEmpty(t, ValidateSubjectName(""))
	assert.NotEmpty(t, ValidateSubjectName("a"))
	assert.Empty(t, ValidateSubjectName("ab"))
	assert.Empty(t, ValidateSubjectName("Mathematics"))
	assert.Empty(t, ValidateSubjectName("123456789012"))
	assert.NotEmpty(t, ValidateSubjectName("1234567890123"))
}

func TestValidateGoalHours(t *testing.T) {
	assert.NotEmpty(t, ValidateGoalHours(""))
	assert.NotEmpty(t, ValidateGoalHours("abc"))
	assert.NotEmpty(t, ValidateGoalHours("0.5"))
	assert.Empty(t, ValidateGoalHours("1"))
	assert.Empty(t, ValidateGoalHours("500"))
	assert.NotEmpty(t, ValidateGoalHours("500.1"))
	for _, in := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity"} {
		assert.Equal(t, "Invalid number.", ValidateGoalHours(in), in)
	}
}

func TestValidateTaskTitle(t *testing.T) {
	assert.NotEmpty(t, ValidateTaskTitle("abc"))
	assert.Empty(t, ValidateTaskTitle("abcd"))
	assert.Empty(t, ValidateTaskTitle("  Read chapter three  "))
	assert.NotEmpty(t, ValidateTaskTitle("this title is definitely too long"))
}

func TestParseGoalHours(t *testing.T) {
	assert.Equal(t, 1.0, ParseGoalHours("0"))
	assert.Equal(t, 1.0, ParseGoalHours(""))
	assert.Equal(t, 1.0, ParseGoalHours("ten"))
	assert.Equal(t, 12.5, ParseGoalHours("12.5"))
	assert.Equal(t, 1.0, ParseGoalHours("NaN"))
	assert.Equal(t, 1.0, ParseGoalHours("Inf"))
	assert.Equal(t, 1.0, ParseGoalHours("-Inf"))
}

func TestHours(t *testing.T) {
	assert.Equal(t, 0.0, Hours(0))
	assert.Equal(t, 1.0, Hours(3600))
	assert.Equal(t, 0.01, Hours(36))
	assert.Equal(t, 1.5, Hours(5400))
}
