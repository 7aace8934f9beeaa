package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths are every top-level key plus:
//
//	canvas.<field>
//	keyboard_filter.deny
//	keyboard_filter.allow
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if len(parts) == 1 {
		switch parts[0] {
		case "hypr_config":
			return cfg.HyprConfig, nil
		case "overrides_file":
			return cfg.OverridesFile, nil
		case "hyprctl":
			return cfg.Hyprctl, nil
		case "hyprctl_timeout_seconds":
			return cfg.HyprctlTimeoutSeconds, nil
		case "topology_source":
			return cfg.TopologySource, nil
		case "locale_catalog":
			return cfg.LocaleCatalog, nil
		case "default_locales":
			return cfg.DefaultLocales, nil
		case "fallback_locales":
			return cfg.FallbackLocales, nil
		case "per_device_layouts":
			return cfg.PerDeviceLayouts, nil
		case "log_level":
			return cfg.LogLevel, nil
		case "log_file":
			return cfg.LogFile, nil
		case "canvas":
			return cfg.Canvas, nil
		case "keyboard_filter":
			return cfg.KeyboardFilter, nil
		}
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch parts[0] {
	case "canvas":
		switch parts[1] {
		case "padding":
			return cfg.Canvas.Padding, nil
		case "min_width":
			return cfg.Canvas.MinWidth, nil
		case "min_height":
			return cfg.Canvas.MinHeight, nil
		case "overall_scale":
			return cfg.Canvas.OverallScale, nil
		case "max_zoom":
			return cfg.Canvas.MaxZoom, nil
		case "drag_threshold":
			return cfg.Canvas.DragThreshold, nil
		}
	case "keyboard_filter":
		switch parts[1] {
		case "deny":
			return cfg.KeyboardFilter.Deny, nil
		case "allow":
			return cfg.KeyboardFilter.Allow, nil
		}
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}
