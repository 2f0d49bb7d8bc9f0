package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studysmart/internal/models"
	"github.com/balkashynov/studysmart/internal/screen"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Manage study sessions",
	}

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List study sessions, most recent first",
		Args:    cobra.NoArgs,
		RunE:    withApp(runSessionList),
	}
	listCmd.Flags().Uint("subject-id", 0, "Only the ten most recent sessions of this subject")

	addCmd := &cobra.Command{
		Use:   "add [subject-id] [duration]",
		Short: "Log a study session that was not timed",
		Long: `Log a finished study session, e.g. 'studysmart session add 2 1h15m'.
Sessions shorter than 36 seconds are not saved.`,
		Args: cobra.ExactArgs(2),
		RunE: withApp(runSessionAdd),
	}

	removeCmd := &cobra.Command{
		Use:     "rm [session-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a study session",
		Args:    cobra.ExactArgs(1),
		RunE:    withApp(runSessionRemove),
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}

func runSessionList(cmd *cobra.Command, args []string, a *app) error {
	subjectID, _ := cmd.Flags().GetUint("subject-id")

	src := a.repos.Sessions.AllSessions()
	if subjectID != 0 {
		src = a.repos.Sessions.RecentTenSessionsForSubject(subjectID)
	}
	sessions, err := load("study sessions", src)
	if err != nil {
		return err
	}

	totalSrc := a.repos.Sessions.TotalSessionsDuration()
	if subjectID != 0 {
		totalSrc = a.repos.Sessions.TotalSessionsDurationForSubject(subjectID)
	}
	total, err := load("total study time", totalSrc)
	if err != nil {
		return err
	}

	printSessions(cmd.OutOrStdout(), sessions)
	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal studied: %.2fh\n", models.Hours(total))
	return nil
}

// parseSessionDuration accepts Go durations like 45m or 1h30m
func parseSessionDuration(arg string) (int64, error) {
	d, err := time.ParseDuration(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q, use e.g. 45m or 1h30m", models.ErrInvalidInput, arg)
	}
	secs := int64(d / time.Second)
	if secs < models.MinSessionSeconds {
		return 0, models.ErrSessionTooShort
	}
	return secs, nil
}

func runSessionAdd(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	subjectID, err := parseID("subject", args[0])
	if err != nil {
		return err
	}
	duration, err := parseSessionDuration(args[1])
	if err != nil {
		return err
	}
	subject, err := a.repos.Subjects.GetSubjectByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if subject == nil {
		return fmt.Errorf("subject #%d: %w", subjectID, models.ErrNotFound)
	}

	s := screen.NewSession(a.deps())
	defer s.Close()
	r := &reporter{out: cmd.OutOrStdout()}
	defer r.watch(s.Events())()

	s.OnEvent(ctx, screen.RelatedSubjectChanged{Subject: *subject})
	s.OnEvent(ctx, screen.SaveSession{Duration: duration})
	return r.err()
}

func runSessionRemove(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	id, err := parseID("session", args[0])
	if err != nil {
		return err
	}
	session, err := a.repos.Sessions.GetSessionByID(ctx, id)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("study session #%d: %w", id, models.ErrNotFound)
	}

	s := screen.NewSession(a.deps())
	defer s.Close()
	r := &reporter{out: cmd.OutOrStdout()}
	defer r.watch(s.Events())()

	s.OnEvent(ctx, screen.DeleteSessionRequested{Session: *session})
	s.OnEvent(ctx, screen.DeleteSession{})
	return r.err()
}
