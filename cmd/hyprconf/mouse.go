package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMouseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mouse",
		Short: "Pointer sensitivity and acceleration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current pointer settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := a.service(false)
			if err != nil {
				return err
			}
			m := svc.MouseSettings(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "sensitivity: %s\nforce_no_accel: %t\n", strconv.FormatFloat(m.Sensitivity, 'f', -1, 64), m.ForceNoAccel)
			return nil
		},
	}

	var sensitivity float64
	var noAccel bool
	set := &cobra.Command{
		Use:   "set",
		Short: "Set pointer sensitivity and/or acceleration",
		Example: `  hyprconf mouse set --sensitivity -0.25
  hyprconf mouse set --no-accel=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("sensitivity") && !flags.Changed("no-accel") {
				return fmt.Errorf("nothing to change: pass --sensitivity and/or --no-accel")
			}
			svc, err := a.writable()
			if err != nil {
				return err
			}
			m := svc.MouseSettings(cmd.Context())
			if flags.Changed("sensitivity") {
				m.Sensitivity = sensitivity
			}
			if flags.Changed("no-accel") {
				m.ForceNoAccel = noAccel
			}
			if err := svc.SetMouse(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sensitivity: %s\nforce_no_accel: %t\n", strconv.FormatFloat(m.Sensitivity, 'f', -1, 64), m.ForceNoAccel)
			return nil
		},
	}
	set.Flags().Float64Var(&sensitivity, "sensitivity", 0, "Sensitivity from -1.0 to 1.0")
	set.Flags().BoolVar(&noAccel, "no-accel", false, "Disable pointer acceleration")

	cmd.AddCommand(show, set)
	return cmd
}
