package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/elijahr/lk/internal/config"
	"github.com/elijahr/lk/internal/dispatch"
	"github.com/elijahr/lk/internal/display"
	"github.com/elijahr/lk/internal/executor"
	"github.com/elijahr/lk/internal/fileutil"
	"github.com/elijahr/lk/internal/logger"
	"github.com/elijahr/lk/internal/models"
	"github.com/elijahr/lk/internal/pattern"
	"github.com/elijahr/lk/internal/search"
)

// runSearch implements the root command
func runSearch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 2 {
		root = args[1]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := &searchRun{
		cfg:    cfg,
		expr:   args[0],
		root:   root,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}
	_, err = run.execute(ctx)
	return err
}

// loadConfig reads the config file and applies command-line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := config.FindConfigFile(".")
		if err != nil {
			return nil, fmt.Errorf("failed to locate config: %w", err)
		}
		configPath = found
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	overrides, err := flagOverrides(cmd)
	if err != nil {
		return nil, err
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// searchRun is one invocation of the search pipeline
type searchRun struct {
	cfg    *config.Config
	expr   string
	root   string
	stdout io.Writer
	stderr io.Writer

	// dispatcher runs --open-with templates; nil means a ShellDispatcher
	dispatcher dispatch.Dispatcher
}

// execute validates every input, then walks, searches and renders. Startup
// failures return before any worker is started.
func (r *searchRun) execute(ctx context.Context) (models.RunStats, error) {
	cfg := r.cfg

	p, err := pattern.Compile(r.expr, pattern.Options{
		IgnoreCase:   cfg.IgnoreCase,
		Unicode:      cfg.Unicode,
		Multiline:    cfg.Multiline,
		DotAll:       cfg.DotAll,
		MatchTimeout: cfg.MatchTimeout,
	})
	if err != nil {
		return models.RunStats{}, err
	}

	filter, err := fileutil.NewPathFilter(cfg.Exclude, cfg.Hidden)
	if err != nil {
		return models.RunStats{}, err
	}

	joinOrder, err := executor.ParseJoinOrder(cfg.JoinOrder)
	if err != nil {
		return models.RunStats{}, err
	}

	if err := fileutil.CheckRoot(r.root); err != nil {
		return models.RunStats{}, fmt.Errorf("cannot search %s: %w", r.root, err)
	}

	stdoutColors, err := display.ColorEnabled(cfg.Color, asFile(r.stdout))
	if err != nil {
		return models.RunStats{}, err
	}
	stderrColors, _ := display.ColorEnabled(cfg.Color, asFile(r.stderr))

	var withSeparator []string
	for _, expr := range cfg.Exclude {
		if fileutil.HasSeparator(expr) {
			withSeparator = append(withSeparator, expr)
		}
	}
	if len(withSeparator) > 0 {
		display.WarnPathExcludes(withSeparator).Display(r.stderr, stderrColors)
	}

	log, closeLogs, err := r.openLoggers()
	if err != nil {
		return models.RunStats{}, err
	}
	defer closeLogs()

	log.LogDebug(fmt.Sprintf("pattern %q, %d workers, join order %s, match timeout %s",
		p.String(), cfg.Workers, joinOrder, formatTimeout(cfg.MatchTimeout)))

	walker := fileutil.NewWalker(r.root, fileutil.WalkOptions{
		Filter:      filter,
		FollowLinks: cfg.FollowLinks,
		AllowBinary: cfg.Binary,
		Logger:      log,
	})
	scheduler := executor.NewScheduler(search.NewScanner(p), log, executor.SchedulerConfig{
		Workers:   cfg.Workers,
		JoinOrder: joinOrder,
	})

	renderer := display.NewRenderer(r.stdout, stdoutColors)
	dispatcher := r.dispatcher
	if dispatcher == nil && len(cfg.OpenWith) > 0 {
		dispatcher = dispatch.NewShellDispatcher("", log)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var writeErr error
	onResult := func(result *models.DirectoryResult) {
		if err := renderer.Render(result); err != nil {
			// Output is gone (closed pipe); stop searching
			writeErr = err
			cancel()
			return
		}
		dispatch.DispatchFirst(dispatcher, cfg.OpenWith, result, func(err error) {
			log.LogWarn(err.Error())
		})
	}

	stats, err := scheduler.Run(runCtx, walker.Tasks(), onResult)
	if writeErr != nil {
		return stats, fmt.Errorf("failed to write results: %w", writeErr)
	}
	if err != nil {
		return stats, err
	}

	if cfg.Stats {
		if err := renderer.RenderStats(stats); err != nil {
			return stats, fmt.Errorf("failed to write stats: %w", err)
		}
	}
	return stats, nil
}

// openLoggers builds the stderr logger and, with a log directory, the run
// log file.
func (r *searchRun) openLoggers() (searchLogger, func(), error) {
	console := logger.NewConsoleLogger(r.stderr, r.cfg.LogLevel)
	if r.cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(r.cfg.LogDir, r.cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	closeLogs := func() {
		if err := fileLog.Close(); err != nil {
			console.LogWarn(err.Error())
		}
	}
	return &multiLogger{loggers: []searchLogger{console, fileLog}}, closeLogs, nil
}

func asFile(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}
