package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studysmart/internal/models"
	"github.com/balkashynov/studysmart/internal/screen"
)

func newSubjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects", "sub"},
		Short:   "Manage subjects",
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a subject",
		Long: `Add a subject with a goal number of study hours.

Names are 2 to 12 characters, goals between 1 and 500 hours.
The card colour is picked at random unless --palette is given (0-4).`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(runSubjectAdd),
	}
	addCmd.Flags().StringP("goal", "g", "", "Goal study hours")
	addCmd.Flags().IntP("palette", "p", -1, "Card colour palette index")
	_ = addCmd.MarkFlagRequired("goal")

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List subjects",
		Args:    cobra.NoArgs,
		RunE:    withApp(runSubjectList),
	}

	showCmd := &cobra.Command{
		Use:   "show [subject-id]",
		Short: "Show a subject with its progress, tasks and recent sessions",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runSubjectShow),
	}

	editCmd := &cobra.Command{
		Use:   "edit [subject-id]",
		Short: "Edit a subject",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runSubjectEdit),
	}
	editCmd.Flags().StringP("name", "n", "", "New name")
	editCmd.Flags().StringP("goal", "g", "", "New goal study hours")
	editCmd.Flags().IntP("palette", "p", -1, "New card colour palette index")

	removeCmd := &cobra.Command{
		Use:     "rm [subject-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a subject with all of its tasks and sessions",
		Args:    cobra.ExactArgs(1),
		RunE:    withApp(runSubjectRemove),
	}

	cmd.AddCommand(addCmd, listCmd, showCmd, editCmd, removeCmd)
	return cmd
}

// formErrors collects the validation messages of a subject form
func formErrors(form screen.SubjectForm) error {
	var msgs []string
	for _, msg := range []string{form.NameError, form.GoalError} {
		if msg != "" {
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, strings.Join(msgs, " "))
}

func runSubjectAdd(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	goal, _ := cmd.Flags().GetString("goal")
	palette, _ := cmd.Flags().GetInt("palette")

	d := screen.NewDashboard(a.deps())
	defer d.Close()
	r := &reporter{out: cmd.OutOrStdout()}
	defer r.watch(d.Events())()

	d.OnEvent(ctx, screen.SubjectNameChanged{Name: strings.Join(args, " ")})
	d.OnEvent(ctx, screen.GoalHoursChanged{Hours: goal})
	if palette >= 0 {
		d.OnEvent(ctx, screen.SubjectColorsChanged{Colors: models.PaletteColors(palette)})
	}
	if err := formErrors(d.Current().Form); err != nil {
		return err
	}
	d.OnEvent(ctx, screen.SaveSubject{})
	return r.err()
}

func runSubjectList(cmd *cobra.Command, args []string, a *app) error {
	subjects, err := load("subjects", a.repos.Subjects.AllSubjects())
	if err != nil {
		return err
	}
	printSubjects(cmd.OutOrStdout(), subjects)
	return nil
}

// openSubject loads the subject screen, failing when the id is unknown
func openSubject(cmd *cobra.Command, arg string, a *app) (*screen.Subject, error) {
	id, err := parseID("subject", arg)
	if err != nil {
		return nil, err
	}
	s := screen.NewSubject(cmd.Context(), a.deps(), id)
	if s.Current().SubjectID == 0 {
		s.Close()
		return nil, fmt.Errorf("subject #%d: %w", id, models.ErrNotFound)
	}
	return s, nil
}

func runSubjectShow(cmd *cobra.Command, args []string, a *app) error {
	s, err := openSubject(cmd, args[0], a)
	if err != nil {
		return err
	}
	defer s.Close()

	st := s.Current()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "📚 #%d %s\n", st.SubjectID, st.Form.Name)
	fmt.Fprintf(w, "Goal: %sh · Studied: %.2fh · Progress: %.0f%%\n\n",
		st.Form.GoalHours, st.StudiedHours, st.Progress*100)
	fmt.Fprintln(w, "Upcoming tasks")
	printTasks(w, st.UpcomingTasks)
	fmt.Fprintln(w, "\nCompleted tasks")
	printTasks(w, st.CompletedTasks)
	fmt.Fprintln(w, "\nRecent study sessions")
	printSessions(w, st.RecentSessions)
	return nil
}

func runSubjectEdit(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("goal") && !flags.Changed("palette") {
		return errors.New("nothing to change, use --name, --goal or --palette")
	}

	s, err := openSubject(cmd, args[0], a)
	if err != nil {
		return err
	}
	defer s.Close()
	r := &reporter{out: cmd.OutOrStdout()}
	defer r.watch(s.Events())()

	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		s.OnEvent(ctx, screen.SubjectNameChanged{Name: name})
	}
	if flags.Changed("goal") {
		goal, _ := flags.GetString("goal")
		s.OnEvent(ctx, screen.GoalHoursChanged{Hours: goal})
	}
	if flags.Changed("palette") {
		palette, _ := flags.GetInt("palette")
		s.OnEvent(ctx, screen.SubjectColorsChanged{Colors: models.PaletteColors(palette)})
	}
	if err := formErrors(s.Current().Form); err != nil {
		return err
	}
	s.OnEvent(ctx, screen.UpdateSubject{})
	return r.err()
}

func runSubjectRemove(cmd *cobra.Command, args []string, a *app) error {
	id, err := parseID("subject", args[0])
	if err != nil {
		return err
	}
	s := screen.NewSubject(cmd.Context(), a.deps(), id)
	defer s.Close()
	r := &reporter{out: cmd.OutOrStdout()}
	defer r.watch(s.Events())()

	missing := s.Current().SubjectID == 0
	s.OnEvent(cmd.Context(), screen.DeleteSubject{})
	if missing {
		return ErrReported
	}
	return r.err()
}
