package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hyprconf/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	var writeConfig, reload bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the override file and source it from hyprland.conf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if writeConfig {
				path := a.configPath
				if path == "" {
					p, err := config.DefaultConfigPath()
					if err != nil {
						return err
					}
					path = p
				}
				if _, err := os.Stat(path); err == nil {
					fmt.Fprintf(out, "%s already exists, skipping\n", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return err
				} else {
					if err := config.DefaultConfig().Save(path); err != nil {
						return err
					}
					fmt.Fprintf(out, "wrote %s\n", path)
				}
			}

			svc, _, err := a.service(false)
			if err != nil {
				return err
			}
			created, err := svc.Bootstrap()
			if err != nil {
				return err
			}
			store := svc.Store()
			if created {
				fmt.Fprintf(out, "created %s (sourced from %s)\n", store.Path(), store.PrimaryPath())
			} else {
				fmt.Fprintf(out, "%s already exists\n", store.Path())
			}
			if reload {
				if err := svc.Reload(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "hyprland reloaded")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "Also write a default hyprconf config file if none exists")
	cmd.Flags().BoolVar(&reload, "reload", false, "Reload Hyprland afterwards so the source directive takes effect")
	return cmd
}
