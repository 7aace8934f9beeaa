package palette

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/settings"
)

// Action prefixes. Fields after the prefix are separated by ':'.
const (
	actionMode        = "mode"
	actionLayouts     = "layouts"
	actionSensitivity = "sensitivity"
	actionAccel       = "accel"
)

var sensitivityPresets = []float64{-1, -0.75, -0.5, -0.25, 0, 0.25, 0.5, 0.75, 1}

// QuickMenu builds the launcher menu from the current settings.
func QuickMenu(ctx context.Context, svc *settings.Service) []Node {
	var nodes []Node
	if n, ok := monitorsNode(ctx, svc); ok {
		nodes = append(nodes, n)
	}
	nodes = append(nodes, keyboardNode(ctx, svc), mouseNode(ctx, svc))
	return nodes
}

func monitorsNode(ctx context.Context, svc *settings.Service) (Node, bool) {
	monitors, err := svc.Monitors(ctx)
	if err != nil || len(monitors) == 0 {
		return Node{}, false
	}
	root := Node{Label: "Monitors"}
	for _, m := range monitors {
		current := m.CurrentMode()
		n := Node{Label: fmt.Sprintf("%s  %s@%sHz", m.Name, m.Resolution, catalog.FormatRefreshLabel(m.RefreshRate))}
		for _, mode := range m.Modes {
			n.Children = append(n.Children, Node{
				Label:  mode.String(),
				Action: strings.Join([]string{actionMode, m.Name, mode.Resolution + "@" + catalog.FormatRate(mode.RefreshRate)}, ":"),
				Active: mode == current,
			})
		}
		if len(n.Children) == 0 {
			continue
		}
		root.Children = append(root.Children, n)
	}
	return root, len(root.Children) > 0
}

func keyboardNode(ctx context.Context, svc *settings.Service) Node {
	current := svc.CurrentLocales(ctx)
	root := Node{Label: "Keyboard  " + strings.Join(current, ",")}

	for i, code := range current {
		order := append([]string{code}, slices.Delete(slices.Clone(current), i, i+1)...)
		root.Children = append(root.Children, Node{
			Label:  "Primary: " + code,
			Action: actionLayouts + ":" + strings.Join(order, ","),
			Active: i == 0,
		})
	}

	add := Node{Label: "Add layout"}
	for _, l := range svc.AvailableLayouts() {
		if slices.Contains(current, l.Code) {
			continue
		}
		add.Children = append(add.Children, Node{
			Label:  fmt.Sprintf("%s  %s", l.Code, l.Label),
			Action: actionLayouts + ":" + strings.Join(append(slices.Clone(current), l.Code), ","),
		})
	}
	if len(add.Children) > 0 {
		root.Children = append(root.Children, add)
	}

	if len(current) > 1 {
		remove := Node{Label: "Remove layout"}
		for i, code := range current {
			remove.Children = append(remove.Children, Node{
				Label:  code,
				Action: actionLayouts + ":" + strings.Join(slices.Delete(slices.Clone(current), i, i+1), ","),
			})
		}
		root.Children = append(root.Children, remove)
	}
	return root
}

func mouseNode(ctx context.Context, svc *settings.Service) Node {
	m := svc.MouseSettings(ctx)
	root := Node{Label: fmt.Sprintf("Mouse  sensitivity %s", formatFloat(m.Sensitivity))}
	for _, s := range sensitivityPresets {
		root.Children = append(root.Children, Node{
			Label:  "Sensitivity " + formatFloat(s),
			Action: actionSensitivity + ":" + formatFloat(s),
			Active: math.Abs(s-m.Sensitivity) < 1e-9,
		})
	}
	label := "Disable acceleration"
	if m.ForceNoAccel {
		label = "Enable acceleration"
	}
	root.Children = append(root.Children, Node{
		Label:  label,
		Action: actionAccel + ":" + strconv.FormatBool(!m.ForceNoAccel),
	})
	return root
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Apply runs a menu action against svc and returns a one-line summary.
func Apply(ctx context.Context, svc *settings.Service, action string) (string, error) {
	kind, rest, _ := strings.Cut(action, ":")
	switch kind {
	case actionMode:
		name, value, ok := strings.Cut(rest, ":")
		if !ok {
			return "", fmt.Errorf("malformed action %q", action)
		}
		mode, err := settings.ParseMode(value)
		if err != nil {
			return "", err
		}
		m, err := svc.SetMonitor(ctx, settings.MonitorChange{Name: name, Mode: &mode, Apply: true})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s set to %s", m.Name, m.CurrentMode()), nil

	case actionLayouts:
		codes := strings.Split(rest, ",")
		if err := svc.ApplyLocales(ctx, codes); err != nil {
			return "", err
		}
		return "layouts set to " + rest, nil

	case actionSensitivity:
		s, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return "", fmt.Errorf("malformed action %q: %w", action, err)
		}
		m := svc.MouseSettings(ctx)
		m.Sensitivity = s
		if err := svc.SetMouse(m); err != nil {
			return "", err
		}
		return "sensitivity set to " + rest, nil

	case actionAccel:
		noAccel, err := strconv.ParseBool(rest)
		if err != nil {
			return "", fmt.Errorf("malformed action %q: %w", action, err)
		}
		m := svc.MouseSettings(ctx)
		m.ForceNoAccel = noAccel
		if err := svc.SetMouse(m); err != nil {
			return "", err
		}
		return fmt.Sprintf("force_no_accel set to %t", noAccel), nil
	}
	return "", fmt.Errorf("unknown action %q", action)
}
