package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s: %s: %v", e.Source.position(), e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw values on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.HyprConfig != nil {
		cfg.HyprConfig = *raw.HyprConfig
	}
	if raw.OverridesFile != nil {
		cfg.OverridesFile = *raw.OverridesFile
	}
	if raw.Hyprctl != nil {
		cfg.Hyprctl = *raw.Hyprctl
	}
	if raw.HyprctlTimeoutSeconds != nil {
		cfg.HyprctlTimeoutSeconds = *raw.HyprctlTimeoutSeconds
	}
	if raw.TopologySource != nil {
		cfg.TopologySource = *raw.TopologySource
	}
	if raw.LocaleCatalog != nil {
		cfg.LocaleCatalog = *raw.LocaleCatalog
	}
	if raw.DefaultLocales != nil {
		cfg.DefaultLocales = append([]string(nil), raw.DefaultLocales...)
	}
	if raw.FallbackLocales != nil {
		cfg.FallbackLocales = append([]string(nil), raw.FallbackLocales...)
	}
	if raw.PerDeviceLayouts != nil {
		cfg.PerDeviceLayouts = *raw.PerDeviceLayouts
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}

	if raw.Canvas != nil {
		cfg.Canvas.Padding = derefFloat(raw.Canvas.Padding, cfg.Canvas.Padding)
		cfg.Canvas.MinWidth = derefFloat(raw.Canvas.MinWidth, cfg.Canvas.MinWidth)
		cfg.Canvas.MinHeight = derefFloat(raw.Canvas.MinHeight, cfg.Canvas.MinHeight)
		cfg.Canvas.OverallScale = derefFloat(raw.Canvas.OverallScale, cfg.Canvas.OverallScale)
		cfg.Canvas.MaxZoom = derefFloat(raw.Canvas.MaxZoom, cfg.Canvas.MaxZoom)
		cfg.Canvas.DragThreshold = derefFloat(raw.Canvas.DragThreshold, cfg.Canvas.DragThreshold)
	}

	if raw.KeyboardFilter != nil {
		if raw.KeyboardFilter.Deny != nil {
			cfg.KeyboardFilter.Deny = append([]string(nil), raw.KeyboardFilter.Deny...)
		}
		if raw.KeyboardFilter.Allow != nil {
			cfg.KeyboardFilter.Allow = append([]string(nil), raw.KeyboardFilter.Allow...)
		}
	}

	return cfg
}

func derefFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
