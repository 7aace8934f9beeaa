package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newOverridesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Inspect or edit the override file directly",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the override file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := a.service(false)
			if err != nil {
				return err
			}
			lines, err := svc.Overrides()
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	upsert := &cobra.Command{
		Use:     "upsert <line>",
		Short:   "Merge one line into the override file",
		Example: `  hyprconf overrides upsert "input:kb_layout=fi,us"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.writable()
			if err != nil {
				return err
			}
			outcome, err := svc.Upsert(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case !outcome.Classified:
				fmt.Fprintf(out, "appended unclassified line at %d\n", outcome.Index+1)
			case outcome.Replaced:
				fmt.Fprintf(out, "replaced %s %q at line %d\n", outcome.Family, outcome.Key, outcome.Index+1)
			default:
				fmt.Fprintf(out, "appended %s %q at line %d\n", outcome.Family, outcome.Key, outcome.Index+1)
			}
			return nil
		},
	}

	cmd.AddCommand(list, upsert)
	return cmd
}
