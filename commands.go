package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"zj-status/internal/config"
	"zj-status/internal/pipe"
	"zj-status/internal/plugin"
	"zj-status/internal/proc"
	"zj-status/internal/tui"
	"zj-status/internal/tui/state"
)

const stopTimeout = 6 * time.Second

/* ---------- preview ---------- */

type previewFlags struct {
	session string
	tabs    int
}

func (f *previewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.session, "session", tui.DefaultSessionName, "simulated session name")
	cmd.Flags().IntVar(&f.tabs, "tabs", 3, "number of simulated tabs")
}

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	pf := &previewFlags{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run the status bar against a simulated session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, flags, pf)
		},
	}
	pf.register(cmd)
	return cmd
}

func runPreview(cmd *cobra.Command, flags *rootFlags, pf *previewFlags) error {
	a, err := loadApp(cmd, flags, true)
	if err != nil {
		return err
	}
	defer a.closeLog()

	sup := proc.NewSupervisor(a.log)
	defer stopChildren(sup)

	p, err := a.newPlugin(sup)
	if err != nil {
		return err
	}
	pal, err := a.cfg.InitialPalette()
	if err != nil {
		return err
	}
	a.log.Info("preview starting", "session", pf.session, "tabs", pf.tabs)
	return tui.Run(p, tui.Options{
		Session:    pf.session,
		Tabs:       pf.tabs,
		Palette:    pal,
		TriggerKey: a.cfg.TriggerKey,
	}, a.log)
}

/* ---------- pipe ---------- */

func newPipeCmd(flags *rootFlags) *cobra.Command {
	var (
		cols         int
		rows         int
		renderOnLoad bool
	)
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Read JSON-lines events on stdin and write one line per render",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, flags, false)
			if err != nil {
				return err
			}
			defer a.closeLog()

			sup := proc.NewSupervisor(a.log)
			defer stopChildren(sup)

			p, err := a.newPlugin(sup)
			if err != nil {
				return err
			}
			if cols <= 0 {
				cols = terminalCols(cmd.OutOrStdout())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			host := pipe.New(p, cmd.InOrStdin(), cmd.OutOrStdout(), pipe.Options{
				Cols:         cols,
				Rows:         rows,
				RenderOnLoad: renderOnLoad,
			}, a.log)
			a.log.Debug("pipe host starting", "cols", cols)
			if err := host.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cols, "cols", 0, "columns to render (default: terminal width or 80)")
	cmd.Flags().IntVar(&rows, "rows", 1, "rows reported to the plugin")
	cmd.Flags().BoolVar(&renderOnLoad, "render-on-load", false, "write a frame before the first event")
	return cmd
}

/* ---------- render ---------- */

type renderFlags struct {
	mode    string
	tabs    int
	active  int
	session string
	counter int
	actions int
	cols    int
}

// staticHost satisfies plugin.Host for a single render; timers never fire.
type staticHost struct{}

func (staticHost) SetSelectable(bool)           {}
func (staticHost) Subscribe(...state.EventKind) {}
func (staticHost) SetTimeout(time.Duration)     {}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	rf := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a single status line built from flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, flags, false)
			if err != nil {
				return err
			}
			defer a.closeLog()

			mode, ok := state.ParseInputMode(rf.mode)
			if !ok {
				return fmt.Errorf("unknown mode %q", rf.mode)
			}
			if rf.tabs < 0 || rf.counter < 0 || rf.actions < 0 {
				return errors.New("tabs, counter and actions must not be negative")
			}

			// No dispatcher: replaying actions must not launch anything.
			p, err := a.newPlugin(nil)
			if err != nil {
				return err
			}
			p.Load(staticHost{})

			pal, err := a.cfg.InitialPalette()
			if err != nil {
				return err
			}
			p.Update(state.ModeChanged{Mode: mode, Session: rf.session, Palette: pal})
			tabs := make([]state.Tab, 0, rf.tabs)
			for i := 1; i <= rf.tabs; i++ {
				tabs = append(tabs, state.Tab{Position: i, Active: i == rf.active})
			}
			p.Update(state.TabsChanged{Tabs: tabs})
			for i := 0; i < rf.counter; i++ {
				p.Update(state.TimerFired{})
			}
			for i := 0; i < rf.actions; i++ {
				p.Update(state.KeyPressed{Key: a.cfg.TriggerKey})
			}

			cols := rf.cols
			if cols <= 0 {
				cols = terminalCols(cmd.OutOrStdout())
			}
			out := cmd.OutOrStdout()
			if err := p.Render(out, 1, cols); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out)
			return err
		},
	}
	cmd.Flags().StringVar(&rf.mode, "mode", state.ModeNormal.Label(), "input mode label")
	cmd.Flags().IntVar(&rf.tabs, "tabs", 1, "number of tabs")
	cmd.Flags().IntVar(&rf.active, "active", 1, "active tab position")
	cmd.Flags().StringVar(&rf.session, "session", "", "session name (empty: none)")
	cmd.Flags().IntVar(&rf.counter, "counter", 0, "tick counter value")
	cmd.Flags().IntVar(&rf.actions, "actions", 0, "trigger count")
	cmd.Flags().IntVar(&rf.cols, "cols", 0, "columns to render (default: terminal width or 80)")
	return cmd
}

/* ---------- init / version ---------- */

func newInitCmd(flags *rootFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(flags.configPath, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "zj-status %s\n", Version)
			return nil
		},
	}
}

func stopChildren(sup *proc.Supervisor) {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	_ = sup.StopAll(ctx)
}

var _ plugin.Host = staticHost{}
