package commands

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/balkashynov/studysmart/internal/screen"
	"github.com/balkashynov/studysmart/internal/timer"
	"github.com/balkashynov/studysmart/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash", "ui"},
		Short:   "Open the dashboard",
		Long: `Open the interactive dashboard. Tab switches to the study timer, which
keeps running while you are back on the dashboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain, _ := cmd.Flags().GetBool("plain"); plain {
				return withApp(runDashboardPlain)(cmd, args)
			}
			return runTUI(cmd, tui.ScreenDashboard)
		},
	}
	cmd.Flags().Bool("plain", false, "Print the dashboard once instead of opening the TUI")
	return cmd
}

func newTimerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "timer",
		Aliases: []string{"study", "start"},
		Short:   "Open the study session timer",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, tui.ScreenSession)
		},
	}
}

// runTUI runs the timer engine and the terminal UI under one context. The
// engine stops when the UI exits.
func runTUI(cmd *cobra.Command, start tui.Screen) error {
	titles := tui.NewTitleNotifier()
	a, err := openApp(cmd, titles)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.engine.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		err := tui.Run(ctx, tui.Options{
			Deps:   a.deps(),
			Start:  start,
			Titles: titles,
		})
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	unsaved := a.engine.Snapshot()
	if unsaved.State != timer.Idle && unsaved.Duration > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n💡 Study session of %s was not saved. Finish it with f before quitting to keep it.\n", unsaved.Clock())
	}
	return nil
}

func runDashboardPlain(cmd *cobra.Command, args []string, a *app) error {
	d := screen.NewDashboard(a.deps())
	defer d.Close()
	st := d.Current()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Subjects: %d · Studied: %.2fh · Goal: %.1fh\n\n",
		st.TotalSubjectCount, st.TotalStudiedHours, st.TotalGoalHours)
	printSubjects(w, st.Subjects)
	fmt.Fprintln(w, "\nUpcoming tasks")
	printTasks(w, st.UpcomingTasks)
	fmt.Fprintln(w, "\nRecent study sessions")
	printSessions(w, st.RecentSessions)
	return nil
}
