// Copyright
// SPDX-License-Identifier: MIT
// zj-status: a single-line terminal status bar with interactive, pipe and one-shot hosts
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zj-status/internal/config"
	"zj-status/internal/logger"
	"zj-status/internal/plugin"
	"zj-status/internal/proc"
	"zj-status/internal/tui/widgets/statusbar"
)

const Version = "0.3.0"

const fallbackCols = 80

type rootFlags struct {
	configPath string
	logFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	preview := &previewFlags{}

	cmd := &cobra.Command{
		Use:           "zj-status",
		Short:         "Render a one-line terminal status bar",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runPreview(cmd, flags, preview)
			}
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: user config dir)")
	pf.StringVar(&flags.logFile, "log-file", "", "append logs to this file instead of stderr")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error, disabled")
	pf.String("variant", "", "bar variant: full or compact")
	pf.String("brand", "", "label shown after the leading spacer")
	pf.String("trigger-key", "", "key that launches the configured command")
	pf.String("color-profile", "", "truecolor, ansi256, ansi or ascii")
	pf.Bool("no-color", false, "disable colors")

	preview.register(cmd)

	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newPipeCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// app is what every host command needs: validated config and a logger.
type app struct {
	cfg      config.Config
	log      *logger.Logger
	closeLog func()
}

// loadApp reads config and opens the log sink. quiet discards logs unless a
// log file was given, for hosts that own the terminal.
func loadApp(cmd *cobra.Command, flags *rootFlags, quiet bool) (*app, error) {
	cfg, err := config.Load(flags.configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, closeLog: func() {}}
	var w io.Writer = cmd.ErrOrStderr()
	human := true
	switch {
	case flags.logFile != "":
		f, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		human = false
		a.closeLog = func() { _ = f.Close() }
	case quiet:
		a.log = logger.Nop()
		return a, nil
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, HumanReadable: human, Writer: w})
	if err != nil {
		a.closeLog()
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a.log = log
	return a, nil
}

func (a *app) newPlugin(d proc.Dispatcher) (*plugin.Plugin, error) {
	barOpts, err := a.cfg.StatusBarOptions()
	if err != nil {
		return nil, err
	}
	opts, err := a.cfg.PluginOptions()
	if err != nil {
		return nil, err
	}
	return plugin.New(statusbar.NewStatusBar(barOpts), opts, d, a.log), nil
}

// terminalCols reports the width of out when it is a terminal.
func terminalCols(out io.Writer) int {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return fallbackCols
}
