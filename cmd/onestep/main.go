package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/onestep/internal/config"
	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/imagery"
	"github.com/sandeepkv93/onestep/internal/log"
	loglogrus "github.com/sandeepkv93/onestep/internal/log/logrus"
	"github.com/sandeepkv93/onestep/internal/storage"
	"github.com/sandeepkv93/onestep/internal/update"
)

// Version is the application version (set via ldflags).
var Version = "dev"

type rootOptions struct {
	configFile string
	dbPath     string
	logFile    string
	logFormat  string
	debug      bool
	noLog      bool
	ephemeral  bool
	noImages   bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// app is everything a command needs once flags and config are resolved.
type app struct {
	cfg    config.Config
	logger log.Logger
	store  *storage.Store
	close  func()
}

func main() {
	ctx := context.Background()
	if err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts := &rootOptions{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(opts)
	root.SetArgs(args[1:])
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	runCmd := newRunCmd(opts)
	root := &cobra.Command{
		Use:           "onestep",
		Short:         "One small step at a time task assistant",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCmd.RunE,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", config.DefaultFile(), "YAML config file")
	flags.StringVar(&opts.dbPath, "db-path", "", "SQLite database path")
	flags.StringVar(&opts.logFile, "log-file", "", "log file path")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format (text or json)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noLog, "no-log", false, "disable logging")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep all data in memory for this run")
	flags.BoolVar(&opts.noImages, "no-images", false, "disable step illustrations")

	root.AddCommand(runCmd)
	root.AddCommand(newSummaryCmd(opts))
	root.AddCommand(newWipeCmd(opts))
	return root
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()
			return runTUI(cmd.Context(), a, opts)
		},
	}
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print today's micro-wins and completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			tasks, err := a.store.GetTasks(ctx)
			if err != nil {
				return err
			}
			sessions, err := a.store.GetSessions(ctx)
			if err != nil {
				return err
			}
			wins, err := a.store.GetMicroWins(ctx)
			if err != nil {
				return err
			}

			s := flow.Summarize(tasks, sessions, wins, time.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "micro-wins today: %d\n", s.WinsToday)
			fmt.Fprintf(out, "completed today:  %d\n", s.CompletedToday)
			fmt.Fprintf(out, "in progress:      %d\n", len(s.ActiveTasks))
			for i, tp := range s.ActiveTasks {
				fmt.Fprintf(out, "  %d. %s (%d/%d)\n", i+1, tp.Task.Title, tp.Done, tp.Total)
			}
			return nil
		},
	}
}

func newWipeCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every stored task, session and the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to wipe without --yes")
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.ClearAll(cmd.Context()); err != nil {
				return err
			}
			a.logger.Infof("All data wiped")
			fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}

// loadConfig layers defaults, the YAML file, ONESTEP_* env and flags.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg, err := config.LoadFile(opts.configFile, config.Default())
	if err != nil {
		return cfg, err
	}
	cfg = config.FromEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("db-path") {
		cfg.DBPath = opts.dbPath
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if opts.noImages {
		cfg.ImagesEnabled = false
	}
	return cfg, cfg.Validate()
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := getLogger(cfg, opts.noLog)
	if err != nil {
		return nil, err
	}

	var kv storage.KV
	closeKV := func() {}
	if opts.ephemeral {
		logger.Infof("Running with in-memory storage")
		kv = storage.NewMemoryKV()
	} else {
		sqlite, err := storage.OpenSQLite(cmd.Context(), storage.SQLiteConfig{Path: cfg.DBPath, Logger: logger})
		if err != nil {
			closeLog()
			return nil, fmt.Errorf("could not open database: %w", err)
		}
		kv = sqlite
		closeKV = func() {
			if err := sqlite.Close(); err != nil {
				logger.Warningf("Could not close database: %s", err)
			}
		}
	}

	store, err := storage.NewStore(storage.StoreConfig{KV: kv, Logger: logger})
	if err != nil {
		closeKV()
		closeLog()
		return nil, err
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		close: func() {
			closeKV()
			closeLog()
		},
	}, nil
}

func runTUI(ctx context.Context, a *app, opts *rootOptions) error {
	ctrl, err := flow.New(ctx, flow.Config{Store: a.store, Logger: a.logger})
	if err != nil {
		return err
	}

	var finder imagery.Finder
	if a.cfg.ImagesEnabled {
		finder = imagery.URLFinder{BaseURL: a.cfg.ImageBaseURL}
	}

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				a.logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// TUI.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		m := update.NewModel(ctrl, update.Options{
			Context:    ctx,
			Logger:     a.logger,
			Finder:     finder,
			IdlePrompt: time.Duration(a.cfg.IdlePromptSeconds) * time.Second,
		})
		program := tea.NewProgram(m,
			tea.WithContext(ctx),
			tea.WithAltScreen(),
			tea.WithInput(opts.stdin),
			tea.WithOutput(opts.stdout),
		)

		g.Add(
			func() error {
				final, err := program.Run()
				if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
					return fmt.Errorf("tui failed: %w", err)
				}
				if fm, ok := final.(update.Model); ok && fm.Err() != nil {
					return fm.Err()
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger. The TUI owns the terminal, so
// logs go to a file.
func getLogger(cfg config.Config, noLog bool) (log.Logger, func(), error) {
	if noLog || cfg.LogFile == "" {
		return log.Noop, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("could not create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}

	logrusLog := logrus.New()
	logrusLog.Out = f
	logrusLogEntry := logrus.NewEntry(logrusLog)
	if cfg.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}
	switch cfg.LogFormat {
	case config.LogFormatJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})
	logger.Debugf("Debug level is enabled")
	return logger, func() { _ = f.Close() }, nil
}
