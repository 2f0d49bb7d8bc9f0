package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/studysmart/internal/config"
	"github.com/balkashynov/studysmart/internal/db"
	"github.com/balkashynov/studysmart/internal/logging"
	"github.com/balkashynov/studysmart/internal/notify"
	"github.com/balkashynov/studysmart/internal/repository"
	"github.com/balkashynov/studysmart/internal/screen"
	"github.com/balkashynov/studysmart/internal/timer"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ErrReported is returned when a command failed and already printed why
var ErrReported = errors.New("command failed")

// app holds everything a command runs against
type app struct {
	cfg    config.Config
	log    *zap.Logger
	store  *db.Store
	repos  repository.Repositories
	engine *timer.Engine
	now    func() time.Time
}

// deps builds the collaborators of a screen aggregator
func (a *app) deps() screen.Deps {
	return screen.Deps{
		Repos: a.repos,
		Timer: a.engine,
		Log:   a.log,
		Now:   a.now,
	}
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}

// openApp loads config, then opens the logger, store and timer engine.
// The engine is created idle; commands that need it ticking run it. title is
// the terminal title notifier of the TUI, nil for plain commands.
func openApp(cmd *cobra.Command, title notify.Notifier) (*app, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file)
	if err != nil {
		return nil, err
	}
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		cfg.DBPath = path
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.DBPath, log)
	if err != nil {
		return nil, err
	}

	var notifier notify.Notifier = notify.Nop{}
	switch cfg.Notifications {
	case config.NotifyLog:
		notifier = notify.NewLog(log)
	case config.NotifyTitle:
		// the title only exists while the TUI runs; log it otherwise
		if title != nil {
			notifier = notify.Multi{title, notify.NewLog(log)}
		} else {
			notifier = notify.NewLog(log)
		}
	}

	return &app{
		cfg:    cfg,
		log:    log,
		store:  store,
		repos:  repository.New(store),
		engine: timer.New(timer.WithNotifier(notifier), timer.WithLogger(log)),
		now:    time.Now,
	}, nil
}

// withApp wraps a command function to open the app first and close it after
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, nil)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, args, a)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "studysmart",
		Short: "A terminal study planner and session timer",
		Long: `studysmart tracks the subjects you study, the tasks due for each of them
and the time you spend studying, with a stopwatch that keeps running while
you move between screens.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.studysmart/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "database file, overrides db_path")

	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newTimerCmd())
	rootCmd.AddCommand(newSubjectCmd())
	rootCmd.AddCommand(newTaskCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "studysmart %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(file)
			if err != nil {
				return err
			}
			if path, _ := cmd.Flags().GetString("db"); path != "" {
				cfg.DBPath = path
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
