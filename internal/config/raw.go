package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawCanvas struct {
	Padding       *float64 `yaml:"padding"`
	MinWidth      *float64 `yaml:"min_width"`
	MinHeight     *float64 `yaml:"min_height"`
	OverallScale  *float64 `yaml:"overall_scale"`
	MaxZoom       *float64 `yaml:"max_zoom"`
	DragThreshold *float64 `yaml:"drag_threshold"`
}

type RawKeyboardFilter struct {
	Deny  []string `yaml:"deny"`
	Allow []string `yaml:"allow"`
}

type RawConfig struct {
	Include               IncludeList        `yaml:"include"`
	HyprConfig            *string            `yaml:"hypr_config"`
	OverridesFile         *string            `yaml:"overrides_file"`
	Hyprctl               *string            `yaml:"hyprctl"`
	HyprctlTimeoutSeconds *int               `yaml:"hyprctl_timeout_seconds"`
	TopologySource        *TopologySource    `yaml:"topology_source"`
	LocaleCatalog         *string            `yaml:"locale_catalog"`
	DefaultLocales        []string           `yaml:"default_locales"`
	FallbackLocales       []string           `yaml:"fallback_locales"`
	PerDeviceLayouts      *bool              `yaml:"per_device_layouts"`
	LogLevel              *string            `yaml:"log_level"`
	LogFile               *string            `yaml:"log_file"`
	Canvas                *RawCanvas         `yaml:"canvas"`
	KeyboardFilter        *RawKeyboardFilter `yaml:"keyboard_filter"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.HyprConfig != nil {
		out.HyprConfig = overlay.HyprConfig
	}
	if overlay.OverridesFile != nil {
		out.OverridesFile = overlay.OverridesFile
	}
	if overlay.Hyprctl != nil {
		out.Hyprctl = overlay.Hyprctl
	}
	if overlay.HyprctlTimeoutSeconds != nil {
		out.HyprctlTimeoutSeconds = overlay.HyprctlTimeoutSeconds
	}
	if overlay.TopologySource != nil {
		out.TopologySource = overlay.TopologySource
	}
	if overlay.LocaleCatalog != nil {
		out.LocaleCatalog = overlay.LocaleCatalog
	}
	if overlay.DefaultLocales != nil {
		out.DefaultLocales = overlay.DefaultLocales
	}
	if overlay.FallbackLocales != nil {
		out.FallbackLocales = overlay.FallbackLocales
	}
	if overlay.PerDeviceLayouts != nil {
		out.PerDeviceLayouts = overlay.PerDeviceLayouts
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != nil {
		out.LogFile = overlay.LogFile
	}

	if overlay.Canvas != nil {
		if out.Canvas == nil {
			out.Canvas = &RawCanvas{}
		}
		merged := mergeRawCanvas(*out.Canvas, *overlay.Canvas)
		out.Canvas = &merged
	}

	if overlay.KeyboardFilter != nil {
		if out.KeyboardFilter == nil {
			out.KeyboardFilter = &RawKeyboardFilter{}
		}
		merged := *out.KeyboardFilter
		if overlay.KeyboardFilter.Deny != nil {
			merged.Deny = overlay.KeyboardFilter.Deny
		}
		if overlay.KeyboardFilter.Allow != nil {
			merged.Allow = overlay.KeyboardFilter.Allow
		}
		out.KeyboardFilter = &merged
	}

	return out
}

func mergeRawCanvas(base RawCanvas, overlay RawCanvas) RawCanvas {
	out := base
	if overlay.Padding != nil {
		out.Padding = overlay.Padding
	}
	if overlay.MinWidth != nil {
		out.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		out.MinHeight = overlay.MinHeight
	}
	if overlay.OverallScale != nil {
		out.OverallScale = overlay.OverallScale
	}
	if overlay.MaxZoom != nil {
		out.MaxZoom = overlay.MaxZoom
	}
	if overlay.DragThreshold != nil {
		out.DragThreshold = overlay.DragThreshold
	}
	return out
}
