package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/studysmart/internal/models"
)

var (
	subjectRegex  = regexp.MustCompile(`@([\p{L}\p{N}_-]+)`)
	priorityRegex = regexp.MustCompile(`\+([a-zA-Z0-9]+)`)
	dueRegex      = regexp.MustCompile(`due:([^\s]+)`)
)

// ParsedTask represents a task parsed from quick-add syntax
type ParsedTask struct {
	Title       string
	Subject     string
	Priority    models.Priority
	HasPriority bool
	DueDate     *time.Time
	Errors      []string
}

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title @Subject +priority due:3days"
func ParseTitle(input string, now time.Time) ParsedTask {
	result := ParsedTask{
		Title:    input,
		Priority: models.PriorityMedium,
		Errors:   []string{},
	}

	// Extract subject (@Physics)
	if matches := subjectRegex.FindStringSubmatch(input); len(matches) > 1 {
		result.Subject = matches[1]
		input = subjectRegex.ReplaceAllString(input, "")
	}

	// Extract priority (+high, +3, +medium, etc.)
	if matches := priorityRegex.FindStringSubmatch(input); len(matches) > 1 {
		priority, err := models.ParsePriority(matches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid priority '"+matches[1]+"'. Use: low, medium, high, 1, 2, or 3")
		} else {
			result.Priority = priority
			result.HasPriority = true
		}
		input = priorityRegex.ReplaceAllString(input, "")
	}

	// Extract due date (due:3days, due:15/12/2026, etc.)
	if matches := dueRegex.FindStringSubmatch(input); len(matches) > 1 {
		dueDate, err := ParseDueDate(matches[1], now)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.DueDate = dueDate
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}

// FindSubject resolves a subject by name, ignoring case
func FindSubject(subjects []models.Subject, name string) (models.Subject, bool) {
	for _, s := range subjects {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return models.Subject{}, false
}
