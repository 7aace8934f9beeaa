package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hyprconf/internal/palette"
)

func newMenuCmd(a *app) *cobra.Command {
	var launcher string
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Quick settings menu through fuzzel, wofi or rofi",
		Long: `Show a launcher menu for switching monitor modes, reordering or adding
keyboard layouts, and picking a mouse sensitivity preset. Bind it to a key in
hyprland.conf, for example:

  bind = SUPER, F12, exec, hyprconf menu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := palette.New(launcher)
			if err != nil {
				return err
			}
			svc, err := a.writable()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			action, err := palette.Show(ctx, l, "hyprconf", palette.QuickMenu(ctx, svc))
			if errors.Is(err, palette.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			msg, err := palette.Apply(ctx, svc, action)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&launcher, "launcher", "auto", "Launcher to use: auto, fuzzel, wofi, rofi")
	return cmd
}
