package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/studysmart/internal/models"
)

var (
	dateRegex     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s*(hours?|days?|weeks?)$`)
)

// dueUnit is one relative amount a due date can be given in
type dueUnit struct {
	max   int
	apply func(now time.Time, n int) time.Time
}

var dueUnits = map[string]dueUnit{
	"hour": {max: 8760, apply: func(now time.Time, n int) time.Time {
		return now.Add(time.Duration(n) * time.Hour)
	}},
	"day": {max: 365, apply: func(now time.Time, n int) time.Time {
		return endOfDay(now, n)
	}},
	"week": {max: 52, apply: func(now time.Time, n int) time.Time {
		return endOfDay(now, 7*n)
	}},
}

const dueFormats = "today, tomorrow, a weekday, dd/mm/yyyy, N days, N hours or N weeks"

// ParseDueDate turns what a user typed as a task due date into a time. Dates
// resolve to the end of that day; hours are counted from now. Blank input
// returns nil.
func ParseDueDate(input string, now time.Time) (*time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, nil
	}

	var (
		due time.Time
		err error
	)
	switch {
	case input == "today":
		due = endOfDay(now, 0)
	case input == "tomorrow":
		due = endOfDay(now, 1)
	case dateRegex.MatchString(input):
		due, err = parseCalendarDate(input, now.Location())
	case relativeRegex.MatchString(input):
		due, err = parseRelative(input, now)
	default:
		wd, ok := parseWeekday(input)
		if !ok {
			return nil, fmt.Errorf("%w: unknown due date %q, use %s", models.ErrInvalidInput, input, dueFormats)
		}
		due = endOfDay(now, daysUntil(now.Weekday(), wd))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return &due, nil
}

func parseCalendarDate(input string, loc *time.Location) (time.Time, error) {
	m := dateRegex.FindStringSubmatch(input)
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if year < 2000 || year > 2100 {
		return time.Time{}, fmt.Errorf("year must be between 2000 and 2100")
	}
	due := time.Date(year, time.Month(month), day, 23, 59, 59, 0, loc)
	// time.Date normalises 31/02 into March
	if due.Day() != day || int(due.Month()) != month {
		return time.Time{}, fmt.Errorf("%s is not a calendar date", input)
	}
	return due, nil
}

func parseRelative(input string, now time.Time) (time.Time, error) {
	m := relativeRegex.FindStringSubmatch(input)
	unitName := strings.TrimSuffix(m[2], "s")
	unit := dueUnits[unitName]

	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > unit.max {
		return time.Time{}, fmt.Errorf("%ss must be between 1 and %d", unitName, unit.max)
	}
	return unit.apply(now, n), nil
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func parseWeekday(input string) (time.Weekday, bool) {
	wd, ok := weekdays[input]
	return wd, ok
}

// daysUntil counts days to the next wd, a full week when today is wd
func daysUntil(today, wd time.Weekday) int {
	d := (int(wd) - int(today) + 7) % 7
	if d == 0 {
		d = 7
	}
	return d
}

// endOfDay returns 23:59:59 of the day days after now
func endOfDay(now time.Time, days int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+days, 23, 59, 59, 0, now.Location())
}

// FormatDueDate describes how far away a due date is, always with the date
func FormatDueDate(due, now time.Time) string {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	dy, dm, dd := due.In(now.Location()).Date()
	days := int(time.Date(dy, dm, dd, 0, 0, 0, 0, now.Location()).Sub(today).Hours() / 24)

	date := due.Format("02/01/2006")
	switch {
	case days < 0:
		return "⚠️ OVERDUE (" + date + ")"
	case days == 0:
		return "🔥 Due today (" + date + ")"
	case days == 1:
		return "📅 Due tomorrow (" + date + ")"
	case days <= 7:
		return fmt.Sprintf("📅 Due %s (in %d days)", date, days)
	}
	return "📅 Due " + date
}
