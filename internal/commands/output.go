package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
	"github.com/balkashynov/studysmart/internal/screen"
	"github.com/balkashynov/studysmart/internal/timer"
)

// ErrLoad is returned when a listing could not be read from the store
var ErrLoad = errors.New("failed to load")

// load reads the current value of a repository stream. A query that failed
// delivers nothing, which must not be printed as an empty list.
func load[T any](what string, src flow.Stream[T]) (T, error) {
	v, ok := flow.First(src)
	if !ok {
		return v, fmt.Errorf("%w %s, see the log for details", ErrLoad, what)
	}
	return v, nil
}

// reporter prints the messages a screen publishes while a command runs
type reporter struct {
	out    io.Writer
	failed bool
	back   bool
}

// watch attaches r to a screen's effects until the returned func is called
func (r *reporter) watch(events flow.Stream[screen.Effect]) func() {
	return events.Subscribe(func(e screen.Effect) {
		switch e := e.(type) {
		case screen.ShowMessage:
			if e.Long {
				r.failed = true
				fmt.Fprintf(r.out, "Error: %s\n", e.Text)
				return
			}
			fmt.Fprintln(r.out, e.Text)
		case screen.NavigateBack:
			r.back = true
		}
	})
}

func (r *reporter) err() error {
	if r.failed {
		return ErrReported
	}
	return nil
}

// parseID parses a positive entity id argument
func parseID(kind, arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s ID '%s'", kind, arg)
	}
	return uint(id), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func formatDate(millis int64) string {
	return time.UnixMilli(millis).Format("Jan 02, 2006")
}

func formatDuration(seconds int64) string {
	h, m, s := timer.Decompose(seconds)
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func printTasks(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  no tasks")
		return
	}
	fmt.Fprintf(w, "%-4s %-3s %-30s %-12s %-8s %s\n", "ID", "", "TITLE", "SUBJECT", "PRIORITY", "DUE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%-4d %-3s %-30s %-12s %-8s %s\n",
			t.ID,
			checkbox(t.IsCompleted),
			truncate(t.Title, 30),
			truncate(t.RelatedToSubject, 12),
			t.Priority,
			formatDate(t.DueDate))
	}
}

func printSessions(w io.Writer, sessions []models.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "  no study sessions")
		return
	}
	fmt.Fprintf(w, "%-4s %-12s %-14s %s\n", "ID", "SUBJECT", "DATE", "DURATION")
	for _, s := range sessions {
		fmt.Fprintf(w, "%-4d %-12s %-14s %s\n",
			s.ID,
			truncate(s.RelatedToSubject, 12),
			formatDate(s.Date),
			formatDuration(s.Duration))
	}
}

func printSubjects(w io.Writer, subjects []models.Subject) {
	if len(subjects) == 0 {
		fmt.Fprintln(w, "No subjects yet. Use 'studysmart subject add NAME --goal HOURS' to add one.")
		return
	}
	fmt.Fprintf(w, "%-4s %-12s %s\n", "ID", "NAME", "GOAL")
	for _, s := range subjects {
		fmt.Fprintf(w, "%-4d %-12s %.1fh\n", s.ID, s.Name, s.GoalHours)
	}
}
