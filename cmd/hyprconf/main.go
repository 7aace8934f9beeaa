// Command hyprconf edits Hyprland monitor, keyboard and mouse settings through
// a managed override file.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hyprconf/internal/config"
	"github.com/1broseidon/hyprconf/internal/runtimepath"
	"github.com/1broseidon/hyprconf/internal/settings"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand.
type app struct {
	configPath string
	stderr     io.Writer
	logFile    *os.File
}

func newRootCmd() *cobra.Command {
	a := &app{stderr: os.Stderr}

	root := &cobra.Command{
		Use:   "hyprconf",
		Short: "Hyprland monitor, keyboard and mouse settings",
		Long: `hyprconf edits Hyprland settings without touching your own config.

Every change is merged into an override file that hyprland.conf sources, so
re-running a change replaces the previous value instead of piling up lines.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default: ~/.config/hyprconf/config.yaml)")

	root.AddCommand(
		newInitCmd(a),
		newMonitorsCmd(a),
		newMonitorCmd(a),
		newKeyboardCmd(a),
		newMouseCmd(a),
		newOverridesCmd(a),
		newConfigCmd(a),
		newTUICmd(a),
		newMCPCmd(a),
		newMenuCmd(a),
	)
	return root
}

func (a *app) load() (*config.LoadResult, error) {
	if a.configPath == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(a.configPath)
}

// service loads the config and wires the settings service. When toFile is
// set the logger writes to the log file, since the terminal or stdio is owned
// by the UI or the protocol.
func (a *app) service(toFile bool) (*settings.Service, *slog.Logger, error) {
	res, err := a.load()
	if err != nil {
		return nil, nil, err
	}
	cfg := res.Config

	w := a.stderr
	if toFile {
		f, err := runtimepath.OpenLog(cfg.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		a.logFile = f
		w = f
	}
	logger := newLogger(w, cfg.LogLevel)

	svc, err := settings.FromConfig(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, logger, nil
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// writable is service(false) plus Bootstrap, for commands that write
// overrides.
func (a *app) writable() (*settings.Service, error) {
	svc, _, err := a.service(false)
	if err != nil {
		return nil, err
	}
	if _, err := svc.Bootstrap(); err != nil {
		return nil, err
	}
	return svc, nil
}
