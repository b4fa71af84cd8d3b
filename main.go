package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/simonbystrom/hogwarts/internal/config"
	"github.com/simonbystrom/hogwarts/internal/hogwarts"
	"github.com/simonbystrom/hogwarts/internal/monitor"
	"github.com/simonbystrom/hogwarts/internal/tasks"
	"github.com/simonbystrom/hogwarts/internal/ui"
)

const usage = `usage: hogwarts [flags]                 play the module
       hogwarts [flags] seed <name>...  create pending task files
       hogwarts [flags] solve <name>    mark a task completed

flags:
`

func main() {
	tasksDir := flag.String("tasks", "", "task directory (defaults to [monitor] tasks_dir)")
	instance := flag.Int("instance", 1, "module instance number shown in logs")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := config.WriteDefault(config.Path()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write default config: %v\n", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	dir := cfg.Monitor.Dir()
	if *tasksDir != "" {
		dir = *tasksDir
	}

	args := flag.Args()
	if len(args) > 0 {
		if err := runSubcommand(dir, args[0], args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := play(cfg, dir, *instance); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runSubcommand(dir, name string, args []string) error {
	switch name {
	case "seed":
		if len(args) == 0 {
			return fmt.Errorf("seed needs at least one task name")
		}
		if err := tasks.Seed(dir, args); err != nil {
			return err
		}
		fmt.Printf("seeded %d tasks in %s\n", len(args), dir)
		return nil
	case "solve":
		task := strings.Join(args, " ")
		if task == "" {
			return fmt.Errorf("solve needs a task name")
		}
		return tasks.MarkCompleted(dir, task, time.Now())
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
}

func play(cfg config.Config, dir string, instance int) error {
	runID := uuid.NewString()
	logger, closeLog, err := openLogger(config.LogPath(), runID)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	reader := tasks.NewReader(dir)
	names, err := reader.ListTaskNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		logger.Warn("no tasks found", "dir", dir)
	}

	gen := hogwarts.NewGenerator(nil, logger.With("module", instance))
	gen.Name = cfg.Module.Name
	gen.Exclusions = cfg.Module.Exclusions
	gen.MaxRetries = cfg.Module.MaxRetries
	generation := gen.Generate(names)

	signals := ui.NewSignals()
	mod := hogwarts.New(instance, generation, signals, hogwarts.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mon := monitor.New(ctx, reader, monitor.WithInterval(cfg.Monitor.PollInterval()))

	model := ui.NewApp(cfg, mod, signals,
		ui.WithRunID(runID),
		ui.WithSolvedHook(func() error {
			err := tasks.MarkCompleted(dir, cfg.Module.Name, time.Now())
			if errors.Is(err, tasks.ErrNotFound) {
				// Playing without a task file of our own.
				return nil
			}
			return err
		}),
	)
	p := tea.NewProgram(model, tea.WithAltScreen())

	mon.SetProgram(p)
	go mon.Start()

	if _, err := p.Run(); err != nil {
		return err
	}
	slog.Info("exiting", "module", instance, "stage", mod.Stage(), "strikes", signals.Strikes())
	return nil
}

// openLogger sends structured logs to path since the TUI owns the terminal.
func openLogger(path, runID string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With("run", runID), func() { f.Close() }, nil
}
