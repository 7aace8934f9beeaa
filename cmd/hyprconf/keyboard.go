package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newKeyboardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyboard",
		Short: "Keyboard layouts",
	}

	layouts := &cobra.Command{
		Use:   "layouts",
		Short: "List available XKB layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := a.service(false)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, l := range svc.AvailableLayouts() {
				fmt.Fprintf(tw, "%s\t%s\n", l.Code, l.Label)
			}
			return tw.Flush()
		},
	}

	current := &cobra.Command{
		Use:   "current",
		Short: "Show the active layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := a.service(false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(svc.CurrentLocales(cmd.Context()), ","))
			return nil
		},
	}

	devices := &cobra.Command{
		Use:   "devices",
		Short: "List detected keyboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := a.service(false)
			if err != nil {
				return err
			}
			keyboards, err := svc.Keyboards(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, kb := range keyboards {
				fmt.Fprintf(tw, "%s\t%s\n", kb.Name, strings.Join(kb.Layouts(), ","))
			}
			return tw.Flush()
		},
	}

	var device string
	set := &cobra.Command{
		Use:     "set <code>...",
		Short:   "Set the ordered layout list; the first code is the default",
		Example: "  hyprconf keyboard set fi us\n  hyprconf keyboard set us --device foostan-corne",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.writable()
			if err != nil {
				return err
			}
			if device != "" {
				err = svc.SetDeviceLocales(device, args)
			} else {
				err = svc.ApplyLocales(cmd.Context(), args)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "layouts set to %s\n", strings.Join(args, ","))
			return nil
		},
	}
	set.Flags().StringVar(&device, "device", "", "Write a per-device block for this keyboard only")

	cmd.AddCommand(layouts, current, devices, set)
	return cmd
}
