package models

import (
	"fmt"
	"strings"
)

// Priority of a task, stored as 0/1/2
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// String returns the display title of the priority
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// PriorityFromInt decodes the stored integer; unknown values fall back to medium
func PriorityFromInt(value int) Priority {
	switch value {
	case 0:
		return PriorityLow
	case 1:
		return PriorityMedium
	case 2:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// ParsePriority converts user input to a priority.
// Accepts low/medium/med/high or 1/2/3 (1 being low).
func ParsePriority(input string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "low", "1":
		return PriorityLow, nil
	case "medium", "med", "2":
		return PriorityMedium, nil
	case "high", "3":
		return PriorityHigh, nil
	default:
		return PriorityMedium, fmt.Errorf("%w: priority %q, use low, medium, high, 1, 2 or 3", ErrInvalidInput, input)
	}
}
