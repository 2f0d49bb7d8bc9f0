package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
	"github.com/balkashynov/studysmart/internal/parser"
	"github.com/balkashynov/studysmart/internal/repository"
	"github.com/balkashynov/studysmart/internal/screen"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}

	addCmd := &cobra.Command{
		Use:   "add [task title]",
		Short: "Add a task",
		Long: `Add a task to a subject.

Quick-add syntax:
  @subject    - Subject name
  +priority   - Priority (low/medium/high or 1/2/3)
  due:3days   - Due date (today, tomorrow, dd/mm/yyyy, X days, X hours, X weeks)

Example: studysmart task add "Read chapter 3 @Physics +high due:tomorrow"`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(runTaskAdd),
	}
	addTaskFlags(addCmd)

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List upcoming tasks",
		Args:    cobra.NoArgs,
		RunE:    withApp(runTaskList),
	}
	listCmd.Flags().Uint("subject-id", 0, "Only tasks of this subject")
	listCmd.Flags().BoolP("completed", "c", false, "List completed tasks instead")
	listCmd.Flags().BoolP("all", "a", false, "List every task")

	showCmd := &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runTaskShow),
	}

	editCmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Edit a task",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runTaskEdit),
	}
	editCmd.Flags().StringP("title", "t", "", "New title")
	addTaskFlags(editCmd)

	doneCmd := &cobra.Command{
		Use:   "done [task-id]",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runTaskDone),
	}
	doneCmd.Flags().BoolP("undo", "u", false, "Move the task back to upcoming")

	removeCmd := &cobra.Command{
		Use:     "rm [task-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE:    withApp(runTaskRemove),
	}

	cmd.AddCommand(addCmd, listCmd, showCmd, editCmd, doneCmd, removeCmd)
	return cmd
}

func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("subject", "s", "", "Subject name")
	cmd.Flags().Uint("subject-id", 0, "Subject ID")
	cmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high")
	cmd.Flags().StringP("due", "d", "", "Due date: today, tomorrow, dd/mm/yyyy, X days")
	cmd.Flags().String("desc", "", "Description")
}

// taskEdits are the editor events derived from quick-add text and flags
type taskEdits struct {
	subjectName string
	subjectID   uint
	events      []screen.TaskEvent
}

// collectTaskEdits turns the shared task flags into editor events. Flags win
// over quick-add metadata.
func collectTaskEdits(cmd *cobra.Command, a *app, parsed parser.ParsedTask) (taskEdits, error) {
	flags := cmd.Flags()
	edits := taskEdits{subjectName: parsed.Subject}
	now := a.now()

	if name, _ := flags.GetString("subject"); name != "" {
		edits.subjectName = name
	}
	edits.subjectID, _ = flags.GetUint("subject-id")

	if parsed.HasPriority {
		edits.events = append(edits.events, screen.PriorityChanged{Priority: parsed.Priority})
	}
	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		priority, err := models.ParsePriority(raw)
		if err != nil {
			return edits, err
		}
		edits.events = append(edits.events, screen.PriorityChanged{Priority: priority})
	}

	due := parsed.DueDate
	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		parsedDue, err := parser.ParseDueDate(raw, now)
		if err != nil {
			return edits, err
		}
		due = parsedDue
	}
	if due != nil {
		edits.events = append(edits.events, screen.DueDateChanged{Millis: due.UnixMilli()})
	}

	if flags.Changed("desc") {
		desc, _ := flags.GetString("desc")
		edits.events = append(edits.events, screen.DescriptionChanged{Description: desc})
	}
	return edits, nil
}

// resolveSubject looks a subject name up, ignoring case
func resolveSubject(subjects repository.SubjectRepository, name string) (models.Subject, error) {
	all, err := load("subjects", subjects.AllSubjects())
	if err != nil {
		return models.Subject{}, err
	}
	subject, ok := parser.FindSubject(all, name)
	if !ok {
		return models.Subject{}, fmt.Errorf("subject %q: %w", name, models.ErrNotFound)
	}
	return subject, nil
}

// applyTaskEdits sends edits to the editor, subject last
func applyTaskEdits(ctx context.Context, t *screen.Task, a *app, edits taskEdits) error {
	for _, ev := range edits.events {
		t.OnEvent(ctx, ev)
	}
	if edits.subjectName != "" && edits.subjectID == 0 {
		subject, err := resolveSubject(a.repos.Subjects, edits.subjectName)
		if err != nil {
			return err
		}
		t.OnEvent(ctx, screen.RelatedSubjectChanged{Subject: subject})
	}
	if st := t.Current(); st.TitleError != "" {
		return fmt.Errorf("%w: %s", models.ErrInvalidInput, st.TitleError)
	}
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	parsed := parser.ParseTitle(strings.Join(args, " "), a.now())
	if len(parsed.Errors) > 0 {
		return fmt.Errorf("%w: %s", models.ErrInvalidInput, strings.Join(parsed.Errors, ", "))
	}
	edits, err := collectTaskEdits(cmd, a, parsed)
	if err != nil {
		return err
	}

	t := screen.NewTask(ctx, a.deps(), screen.TaskArgs{SubjectID: edits.subjectID})
	defer t.Close()
	r := &reporter{out: cmd.OutOrStdout()}
	defer r.watch(t.Events())()

	t.OnEvent(ctx, screen.TitleChanged{Title: parsed.Title})
	if err := applyTaskEdits(ctx, t, a, edits); err != nil {
		return err
	}
	t.OnEvent(ctx, screen.SaveTask{})
	if err := r.err(); err != nil {
		return err
	}

	st := t.Current()
	fmt.Fprintf(cmd.OutOrStdout(), "New task \"%s\" for %s - ID: %d, due %s\n",
		st.Title, st.RelatedToSubject, st.TaskID, parser.FormatDueDate(models.Task{DueDate: st.DueDate}.Due(), a.now()))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string, a *app) error {
	flags := cmd.Flags()
	subjectID, _ := flags.GetUint("subject-id")
	completed, _ := flags.GetBool("completed")
	all, _ := flags.GetBool("all")

	tasks := a.repos.Tasks
	var src flow.Stream[[]models.Task]
	switch {
	case all:
		src = tasks.AllTasks()
	case subjectID != 0 && completed:
		src = tasks.CompletedTasksForSubject(subjectID)
	case subjectID != 0:
		src = tasks.UpcomingTasksForSubject(subjectID)
	case completed:
		src = flow.Map(tasks.AllTasks(), func(in []models.Task) []models.Task {
			var out []models.Task
			for _, t := range in {
				if t.IsCompleted {
					out = append(out, t)
				}
			}
			return out
		})
	default:
		src = tasks.AllUpcomingTasks()
	}

	list, err := load("tasks", src)
	if err != nil {
		return err
	}
	printTasks(cmd.OutOrStdout(), list)
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string, a *app) error {
	id, err := parseID("task", args[0])
	if err != nil {
		return err
	}
	task, err := a.repos.Tasks.GetTaskByID(cmd.Context(), id)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task #%d: %w", id, models.ErrNotFound)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s #%d %s\n", checkbox(task.IsCompleted), task.ID, task.Title)
	fmt.Fprintf(w, "Subject:  %s\n", task.RelatedToSubject)
	fmt.Fprintf(w, "Priority: %s\n", task.Priority)
	fmt.Fprintf(w, "Due:      %s (%s)\n", formatDate(task.DueDate), parser.FormatDueDate(task.Due(), a.now()))
	if task.Description != "" {
		fmt.Fprintf(w, "\n%s\n", task.Description)
	}
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	id, err := parseID("task", args[0])
	if err != nil {
		return err
	}
	changed := false
	for _, name := range []string{"title", "subject", "subject-id", "priority", "due", "desc"} {
		changed = changed || cmd.Flags().Changed(name)
	}
	if !changed {
		return errors.New("nothing to change, see 'studysmart task edit --help'")
	}
	edits, err := collectTaskEdits(cmd, a, parser.ParsedTask{})
	if err != nil {
		return err
	}

	t := screen.NewTask(ctx, a.deps(), screen.TaskArgs{TaskID: id, SubjectID: edits.subjectID})
	defer t.Close()
	if t.Current().TaskID == 0 {
		return fmt.Errorf("task #%d: %w", id, models.ErrNotFound)
	}
	r := &reporter{out: cmd.OutOrStdout()}
	defer r.watch(t.Events())()

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		t.OnEvent(ctx, screen.TitleChanged{Title: title})
	}
	if err := applyTaskEdits(ctx, t, a, edits); err != nil {
		return err
	}
	t.OnEvent(ctx, screen.SaveTask{})
	return r.err()
}

func runTaskDone(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	id, err := parseID("task", args[0])
	if err != nil {
		return err
	}
	undo, _ := cmd.Flags().GetBool("undo")

	task, err := a.repos.Tasks.GetTaskByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task #%d: %w", id, models.ErrNotFound)
	}
	if task.IsCompleted != undo {
		state := "completed"
		if undo {
			state = "upcoming"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task #%d is already %s\n", task.ID, state)
		return nil
	}

	d := screen.NewDashboard(a.deps())
	defer d.Close()
	r := &reporter{out: cmd.OutOrStdout()}
	defer r.watch(d.Events())()

	d.OnEvent(ctx, screen.TaskCompletionToggled{Task: *task})
	return r.err()
}

func runTaskRemove(cmd *cobra.Command, args []string, a *app) error {
	id, err := parseID("task", args[0])
	if err != nil {
		return err
	}
	t := screen.NewTask(cmd.Context(), a.deps(), screen.TaskArgs{TaskID: id})
	defer t.Close()
	r := &reporter{out: cmd.OutOrStdout()}
	defer r.watch(t.Events())()

	t.OnEvent(cmd.Context(), screen.DeleteTask{})
	return r.err()
}
