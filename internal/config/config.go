package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TopologySource selects where monitor topology is read from.
type TopologySource string

const (
	TopologyText TopologySource = "text" // `hyprctl monitors all`
	TopologyJSON TopologySource = "json" // `hyprctl monitors all -j`
	TopologyX11  TopologySource = "x11"  // RandR via XWayland or an X session
)

// Canvas tunes how the monitor layout is fitted into the editor.
type Canvas struct {
	Padding       float64 `yaml:"padding"`
	MinWidth      float64 `yaml:"min_width"`
	MinHeight     float64 `yaml:"min_height"`
	OverallScale  float64 `yaml:"overall_scale"`
	MaxZoom       float64 `yaml:"max_zoom"`
	DragThreshold float64 `yaml:"drag_threshold"`
}

// KeyboardFilter holds the name fragments used to tell real keyboards from
// other HID endpoints hyprctl lists as keyboards.
type KeyboardFilter struct {
	Deny  []string `yaml:"deny"`
	Allow []string `yaml:"allow"`
}

// Config is the effective hyprconf configuration.
type Config struct {
	HyprConfig            string         `yaml:"hypr_config"`
	OverridesFile         string         `yaml:"overrides_file"`
	Hyprctl               string         `yaml:"hyprctl"`
	HyprctlTimeoutSeconds int            `yaml:"hyprctl_timeout_seconds"` // 0 = no timeout
	TopologySource        TopologySource `yaml:"topology_source"`
	LocaleCatalog         string         `yaml:"locale_catalog"`
	DefaultLocales        []string       `yaml:"default_locales"`
	FallbackLocales       []string       `yaml:"fallback_locales"`
	PerDeviceLayouts      bool           `yaml:"per_device_layouts"`
	LogLevel              string         `yaml:"log_level"`
	LogFile               string         `yaml:"log_file"`
	Canvas                Canvas         `yaml:"canvas"`
	KeyboardFilter        KeyboardFilter `yaml:"keyboard_filter"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		HyprConfig:      "~/.config/hypr/hyprland.conf",
		OverridesFile:   "~/.config/hypr/conf-overrides.conf",
		Hyprctl:         "hyprctl",
		TopologySource:  TopologyText,
		LocaleCatalog:   "/usr/share/X11/xkb/rules/base.lst",
		DefaultLocales:  []string{"fi"},
		FallbackLocales: []string{"us", "gb", "fi", "dk", "no", "de"},
		LogLevel:        "info",
		Canvas: Canvas{
			Padding:       40,
			MinWidth:      600,
			MinHeight:     400,
			OverallScale:  0.25,
			MaxZoom:       0.3 * 0.25,
			DragThreshold: 1,
		},
		KeyboardFilter: KeyboardFilter{
			Deny: []string{
				"power-button", "power button", "sleep-button", "sleep button",
				"video bus", "headset", "camera", "mic", "mouse", "pointer",
				"hotkeys", "virtual", "system-control", "consumer-control",
				"fcitx", "usb-receiver",
			},
			Allow: []string{"corne", "tkl", "logitech"},
		},
	}
}

// HyprctlTimeout returns the per-invocation deadline, or 0 for none.
func (c *Config) HyprctlTimeout() time.Duration {
	return time.Duration(c.HyprctlTimeoutSeconds) * time.Second
}

// HyprConfigPath returns the primary Hyprland config with ~ expanded.
func (c *Config) HyprConfigPath() (string, error) {
	return ExpandHome(c.HyprConfig)
}

// OverridesPath returns the override file with ~ expanded.
func (c *Config) OverridesPath() (string, error) {
	return ExpandHome(c.OverridesFile)
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HyprConfig) == "" {
		return &ValidationError{Path: "hypr_config", Err: fmt.Errorf("hypr_config is required")}
	}
	if strings.TrimSpace(c.OverridesFile) == "" {
		return &ValidationError{Path: "overrides_file", Err: fmt.Errorf("overrides_file is required")}
	}
	if strings.TrimSpace(c.Hyprctl) == "" {
		return &ValidationError{Path: "hyprctl", Err: fmt.Errorf("hyprctl is required")}
	}
	if c.HyprctlTimeoutSeconds < 0 {
		return &ValidationError{Path: "hyprctl_timeout_seconds", Err: fmt.Errorf("hyprctl_timeout_seconds must be >= 0")}
	}
	switch c.TopologySource {
	case TopologyText, TopologyJSON, TopologyX11:
	default:
		return &ValidationError{Path: "topology_source", Err: fmt.Errorf("topology_source must be one of: text, json, x11")}
	}
	if len(c.DefaultLocales) == 0 {
		return &ValidationError{Path: "default_locales", Err: fmt.Errorf("default_locales must not be empty")}
	}
	for i, code := range c.DefaultLocales {
		if err := validateLocale(code); err != nil {
			return &ValidationError{Path: fmt.Sprintf("default_locales.%d", i), Err: err}
		}
	}
	for i, code := range c.FallbackLocales {
		if err := validateLocale(code); err != nil {
			return &ValidationError{Path: fmt.Sprintf("fallback_locales.%d", i), Err: err}
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Canvas.Padding < 0 {
		return &ValidationError{Path: "canvas.padding", Err: fmt.Errorf("padding must be >= 0")}
	}
	if c.Canvas.MinWidth <= 0 || c.Canvas.MinHeight <= 0 {
		return &ValidationError{Path: "canvas", Err: fmt.Errorf("min_width and min_height must be > 0")}
	}
	if c.Canvas.OverallScale <= 0 {
		return &ValidationError{Path: "canvas.overall_scale", Err: fmt.Errorf("overall_scale must be > 0")}
	}
	if c.Canvas.MaxZoom <= 0 {
		return &ValidationError{Path: "canvas.max_zoom", Err: fmt.Errorf("max_zoom must be > 0")}
	}
	if c.Canvas.DragThreshold < 0 {
		return &ValidationError{Path: "canvas.drag_threshold", Err: fmt.Errorf("drag_threshold must be >= 0")}
	}
	return nil
}

// Layout codes go straight into kb_layout=, so commas and whitespace would
// corrupt the line.
func validateLocale(code string) error {
	if code == "" {
		return fmt.Errorf("layout code must not be empty")
	}
	if strings.ContainsAny(code, ", \t") {
		return fmt.Errorf("layout code %q must not contain commas or whitespace", code)
	}
	return nil
}

// Save writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
