package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/hyprconf/internal/overrides"
	"github.com/1broseidon/hyprconf/internal/settings"
	"github.com/1broseidon/hyprconf/internal/topology"
)

func monitorInfo(m topology.Monitor, includeModes bool) MonitorInfo {
	info := MonitorInfo{
		ID:          m.ID,
		Name:        m.Name,
		Resolution:  m.Resolution,
		RefreshRate: m.RefreshRate,
		X:           m.X,
		Y:           m.Y,
		Primary:     m.IsAnchor(),
	}
	if includeModes {
		for _, mode := range m.Modes {
			info.Modes = append(info.Modes, mode.String())
		}
	}
	return info
}

func textResult(format string, args ...any) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

func (s *Server) handleListMonitors(ctx context.Context, _ *mcpsdk.CallToolRequest, args ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	monitors, err := s.svc.Monitors(ctx)
	if err != nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("read monitors: %w", err)
	}
	out := ListMonitorsOutput{Monitors: make([]MonitorInfo, 0, len(monitors))}
	for _, m := range monitors {
		out.Monitors = append(out.Monitors, monitorInfo(m, args.IncludeModes))
	}
	return nil, out, nil
}

func (s *Server) handleSetMonitor(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetMonitorInput) (*mcpsdk.CallToolResult, SetMonitorOutput, error) {
	if strings.TrimSpace(args.Name) == "" {
		return nil, SetMonitorOutput{}, fmt.Errorf("name is required")
	}
	change := settings.MonitorChange{Name: args.Name, Apply: true}
	if args.Apply != nil {
		change.Apply = *args.Apply
	}
	if args.Mode != "" {
		mode, err := settings.ParseMode(args.Mode)
		if err != nil {
			return nil, SetMonitorOutput{}, err
		}
		change.Mode = &mode
	}
	if args.Position != "" {
		pos, err := settings.ParsePosition(args.Position)
		if err != nil {
			return nil, SetMonitorOutput{}, err
		}
		change.Position = &pos
	}
	if change.Mode == nil && change.Position == nil {
		return nil, SetMonitorOutput{}, fmt.Errorf("nothing to change: pass mode and/or position")
	}

	m, err := s.svc.SetMonitor(ctx, change)
	if err != nil {
		s.logger.Warn("set_monitor failed", "monitor", args.Name, "error", err)
		return nil, SetMonitorOutput{}, err
	}
	line := overrides.MonitorLine(m.Name, m.CurrentMode(), m.X, m.Y)
	s.logger.Info("set_monitor", "monitor", m.Name, "line", line, "apply", change.Apply)
	return textResult("Wrote %s", line), SetMonitorOutput{Monitor: monitorInfo(m, false), Line: line}, nil
}

func (s *Server) handleSetKeyboardLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetKeyboardLayoutInput) (*mcpsdk.CallToolResult, SetKeyboardLayoutOutput, error) {
	if len(args.Layouts) == 0 {
		return nil, SetKeyboardLayoutOutput{}, fmt.Errorf("layouts is required")
	}

	out := SetKeyboardLayoutOutput{Layouts: args.Layouts}
	var err error
	switch {
	case args.Device != "":
		err = s.svc.SetDeviceLocales(args.Device, args.Layouts)
		out.Devices = []string{args.Device}
	case s.svc.PerDeviceLayouts():
		err = s.svc.ApplyLocales(ctx, args.Layouts)
		if err == nil {
			if keyboards, kerr := s.svc.Keyboards(ctx); kerr == nil {
				for _, kb := range keyboards {
					out.Devices = append(out.Devices, kb.Name)
				}
			}
		}
	default:
		err = s.svc.SetLocales(args.Layouts)
	}
	if err != nil {
		s.logger.Warn("set_keyboard_layout failed", "layouts", args.Layouts, "error", err)
		return nil, SetKeyboardLayoutOutput{}, err
	}
	s.logger.Info("set_keyboard_layout", "layouts", args.Layouts, "devices", out.Devices)
	return nil, out, nil
}

func (s *Server) handleSetMouse(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetMouseInput) (*mcpsdk.CallToolResult, SetMouseOutput, error) {
	if args.Sensitivity == nil && args.ForceNoAccel == nil {
		return nil, SetMouseOutput{}, fmt.Errorf("nothing to change: pass sensitivity and/or force_no_accel")
	}
	m := s.svc.MouseSettings(ctx)
	if args.Sensitivity != nil {
		m.Sensitivity = *args.Sensitivity
	}
	if args.ForceNoAccel != nil {
		m.ForceNoAccel = *args.ForceNoAccel
	}
	if err := s.svc.SetMouse(m); err != nil {
		return nil, SetMouseOutput{}, err
	}
	return nil, SetMouseOutput(m), nil
}

func (s *Server) handleListOverrides(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListOverridesInput) (*mcpsdk.CallToolResult, ListOverridesOutput, error) {
	lines, err := s.svc.Overrides()
	if err != nil {
		return nil, ListOverridesOutput{}, err
	}
	out := ListOverridesOutput{
		Path:  s.svc.Store().Path(),
		Lines: make([]OverrideLine, 0, len(lines)),
	}
	for _, line := range lines {
		entry := OverrideLine{Line: line}
		if family, key, ok := overrides.Classify(line); ok {
			entry.Family = family.String()
			entry.Key = key
		}
		out.Lines = append(out.Lines, entry)
	}
	return nil, out, nil
}
