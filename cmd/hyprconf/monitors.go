package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/overrides"
	"github.com/1broseidon/hyprconf/internal/settings"
	"github.com/1broseidon/hyprconf/internal/topology"
)

func newMonitorsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List monitors with mode and layout position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := a.service(false)
			if err != nil {
				return err
			}
			monitors, err := svc.Monitors(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				doc, err := monitorsJSON(monitors)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), gjson.GetBytes(doc, "@pretty").Raw)
				return nil
			}
			printMonitors(cmd.OutOrStdout(), monitors)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printMonitors(w io.Writer, monitors []topology.Monitor) {
	if len(monitors) == 0 {
		fmt.Fprintln(w, "no monitors reported")
		return
	}
	for _, m := range monitors {
		primary := ""
		if m.IsAnchor() {
			primary = " [PRIMARY]"
		}
		fmt.Fprintf(w, "%s (ID %d): %s@%sHz at %s%s\n", m.Name, m.ID, m.Resolution, catalog.FormatRefreshLabel(m.RefreshRate), m.Position(), primary)
		for _, res := range m.UniqueResolutions() {
			fmt.Fprintf(w, "  %s:", res)
			for _, rate := range m.RefreshRates(res) {
				fmt.Fprintf(w, " %s", catalog.FormatRefreshLabel(rate))
			}
			fmt.Fprintln(w)
		}
	}
}

// monitorsJSON builds {"monitors": [...]} one field at a time so the key
// order is stable.
func monitorsJSON(monitors []topology.Monitor) ([]byte, error) {
	doc := []byte(`{"monitors":[]}`)
	for i, m := range monitors {
		fields := []struct {
			path  string
			value any
		}{
			{"name", m.Name},
			{"id", m.ID},
			{"resolution", m.Resolution},
			{"refresh_rate", m.RefreshRate},
			{"x", m.X},
			{"y", m.Y},
			{"primary", m.IsAnchor()},
			{"modes", modeStrings(m.Modes)},
		}
		for _, f := range fields {
			var err error
			doc, err = sjson.SetBytes(doc, fmt.Sprintf("monitors.%d.%s", i, f.path), f.value)
			if err != nil {
				return nil, fmt.Errorf("encode monitor %s: %w", m.Name, err)
			}
		}
	}
	return doc, nil
}

func modeStrings(modes []catalog.Mode) []string {
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		out = append(out, m.String())
	}
	return out
}

func newMonitorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Change a single monitor",
	}

	var mode, pos string
	var noApply bool
	set := &cobra.Command{
		Use:   "set <name>",
		Short: "Set a monitor's mode and/or position",
		Example: `  hyprconf monitor set DP-3 --mode 2560x1440@143.91
  hyprconf monitor set HDMI-A-1 --pos 2560x0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			change := settings.MonitorChange{Name: args[0], Apply: !noApply}
			if mode != "" {
				m, err := settings.ParseMode(mode)
				if err != nil {
					return err
				}
				change.Mode = &m
			}
			if pos != "" {
				p, err := settings.ParsePosition(pos)
				if err != nil {
					return err
				}
				change.Position = &p
			}
			if change.Mode == nil && change.Position == nil {
				return fmt.Errorf("nothing to change: pass --mode and/or --pos")
			}

			svc, err := a.writable()
			if err != nil {
				return err
			}
			m, err := svc.SetMonitor(cmd.Context(), change)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), overrides.MonitorLine(m.Name, m.CurrentMode(), m.X, m.Y))
			return nil
		},
	}
	set.Flags().StringVar(&mode, "mode", "", "Mode as WxH@R")
	set.Flags().StringVar(&pos, "pos", "", "Position as XxY")
	set.Flags().BoolVar(&noApply, "no-apply", false, "Only write the override, do not apply it to the running compositor")

	cmd.AddCommand(set)
	return cmd
}
