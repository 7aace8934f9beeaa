package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/hyprconf/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive monitor, keyboard and mouse editor",
		Long: `Interactive editor with three tabs.

Monitors: drag a monitor to move it, click to select, e to change its mode.
The monitor at 0x0 is the anchor and cannot be dragged.
Keyboard: space toggles a layout, enter applies the ordered list.
Mouse: left/right adjusts sensitivity, a toggles acceleration.

Logs go to the runtime log file while the TUI owns the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, logger, err := a.service(true)
			if err != nil {
				return err
			}
			return tui.Run(svc, logger)
		},
	}
}
