package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	SubjectNameMin = 2
	SubjectNameMax = 12
	GoalHoursMin   = 1
	GoalHoursMax   = 500
	TaskTitleMin   = 4
	TaskTitleMax   = 30
)

// ValidateSubjectName returns a user facing message, or "" when the name is fine
func ValidateSubjectName(name string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	switch {
	case n == 0:
		return "Please enter subject name."
	case n < SubjectNameMin:
		return "Subject name is too short."
	case n > SubjectNameMax:
		return "Subject name is too long."
	}
	return ""
}

// ValidateGoalHours returns a user facing message, or "" when the input parses into range
func ValidateGoalHours(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return "Please enter goal study hours."
	}
	hrs, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(hrs) || math.IsInf(hrs, 0) {
		return "Invalid number."
	}
	if hrs < GoalHoursMin {
		return fmt.Sprintf("Please set at least %d hour.", GoalHoursMin)
	}
	if hrs > GoalHoursMax {
		return fmt.Sprintf("Please set a maximum of %d hours.", GoalHoursMax)
	}
	return ""
}

// ValidateTaskTitle returns a user facing message, or "" when the title is fine
func ValidateTaskTitle(title string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	switch {
	case n == 0:
		return "Please enter task title."
	case n < TaskTitleMin:
		return "Task title is too short."
	case n > TaskTitleMax:
		return "Task title is too long."
	}
	return ""
}

// ParseGoalHours parses goal hours input. Blank, unparseable, infinite or
// zero input gives 1 so it is always safe to divide by.
func ParseGoalHours(input string) float64 {
	hrs, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || hrs == 0 || math.IsNaN(hrs) || math.IsInf(hrs, 0) {
		return 1
	}
	return hrs
}
