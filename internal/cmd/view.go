package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/orrery/internal/config"
	"github.com/gravitrone/orrery/internal/frame"
	"github.com/gravitrone/orrery/internal/logging"
	"github.com/gravitrone/orrery/internal/schema"
	"github.com/gravitrone/orrery/internal/ui"
)

// ViewCmd returns the `orrery view` command.
func ViewCmd() *cobra.Command {
	return newViewCommand("view [file]", "Explore a workspace graph in the terminal")
}

// newViewCommand builds the TUI-launching command. The root command reuses it
// so `orrery file.yaml` and `orrery view file.yaml` accept the same flags.
func newViewCommand(use, short string) *cobra.Command {
	var (
		noProps bool
		fps     int
		watch   bool
		noWatch bool
		seed    int64
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			path := cfg.File
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no workspace file: pass one as an argument or set `file` in %s", config.Path())
			}

			if c.Flags().Changed("fps") {
				cfg.FPS = fps
			}
			watching := cfg.Watch
			if c.Flags().Changed("watch") {
				watching = watch
			}
			if noWatch {
				watching = false
			}
			showProps := cfg.ShowProperties
			if noProps {
				showProps = false
			}
			level := cfg.LogLevel
			if debug {
				level = "debug"
			}

			return runView(viewSettings{
				path:      path,
				fps:       cfg.FPS,
				showProps: showProps,
				watch:     watching,
				seed:      seed,
				logPath:   cfg.ResolvedLogPath(),
				logLevel:  level,
			})
		},
	}

	cmd.Flags().BoolVar(&noProps, "no-props", false, "hide property orbit nodes")
	cmd.Flags().IntVar(&fps, "fps", frame.DefaultFPS, "simulation frames per second")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload when the workspace file changes")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable file watching")
	cmd.Flags().Int64Var(&seed, "seed", 0, "orbit speed seed")
	cmd.Flags().BoolVar(&debug, "debug", false, "log at debug level")
	return cmd
}

type viewSettings struct {
	path      string
	fps       int
	showProps bool
	watch     bool
	seed      int64
	logPath   string
	logLevel  string
}

func runView(s viewSettings) error {
	ws, warns, err := schema.Load(s.path)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, closeLog, err := logging.File(s.logPath, s.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := frame.New(s.fps)
	ticks := sched.Start(ctx)
	defer sched.Stop()

	var changes <-chan struct{}
	watching := false
	if s.watch {
		changes, err = schema.Watch(ctx, s.path, logger)
		if err != nil {
			logger.Warn("file watching disabled", "err", err)
		} else {
			watching = true
		}
	}

	logger.Info("starting", "workspace", s.path, "entities", len(ws.Entities), "fps", s.fps, "watch", watching)

	app := ui.NewApp(ws, ui.AppOptions{
		Path:           s.path,
		ShowProperties: s.showProps,
		Seed:           s.seed,
		Watching:       watching,
		Warnings:       warns,
	}, logger, ticks, changes)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
