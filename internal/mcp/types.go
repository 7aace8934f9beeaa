package mcp

// MonitorInfo describes one monitor in tool output.
type MonitorInfo struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Resolution  string   `json:"resolution"`
	RefreshRate float64  `json:"refresh_rate"`
	X           int      `json:"x"`
	Y           int      `json:"y"`
	Primary     bool     `json:"primary"`
	Modes       []string `json:"modes,omitempty"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct {
	IncludeModes bool `json:"include_modes,omitempty" jsonschema:"When true, include every advertised WxH@R mode per monitor"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// SetMonitorInput is the input for the set_monitor tool.
type SetMonitorInput struct {
	Name     string `json:"name" jsonschema:"required,Connector name of the monitor (e.g. DP-3)"`
	Mode     string `json:"mode,omitempty" jsonschema:"New mode as WxH@R, e.g. 2560x1440@143.91 (default: keep current)"`
	Position string `json:"position,omitempty" jsonschema:"New position as XxY in layout pixels, e.g. 2560x0 (default: keep current)"`
	Apply    *bool  `json:"apply,omitempty" jsonschema:"Apply to the running compositor after writing the override (default: true)"`
}

// SetMonitorOutput is the output for the set_monitor tool.
type SetMonitorOutput struct {
	Monitor MonitorInfo `json:"monitor"`
	Line    string      `json:"line"`
}

// SetKeyboardLayoutInput is the input for the set_keyboard_layout tool.
type SetKeyboardLayoutInput struct {
	Layouts []string `json:"layouts" jsonschema:"required,Ordered XKB layout codes; the first is the default (e.g. [\"fi\", \"us\"])"`
	Device  string   `json:"device,omitempty" jsonschema:"Keyboard device name. When set, only that device gets a per-device block."`
}

// SetKeyboardLayoutOutput is the output for the set_keyboard_layout tool.
type SetKeyboardLayoutOutput struct {
	Layouts []string `json:"layouts"`
	Devices []string `json:"devices,omitempty"`
}

// SetMouseInput is the input for the set_mouse tool.
type SetMouseInput struct {
	Sensitivity  *float64 `json:"sensitivity,omitempty" jsonschema:"Pointer sensitivity from -1.0 to 1.0 (default: keep current)"`
	ForceNoAccel *bool    `json:"force_no_accel,omitempty" jsonschema:"Disable pointer acceleration (default: keep current)"`
}

// SetMouseOutput is the output for the set_mouse tool.
type SetMouseOutput struct {
	Sensitivity  float64 `json:"sensitivity"`
	ForceNoAccel bool    `json:"force_no_accel"`
}

// ListOverridesInput is the input for the list_overrides tool.
type ListOverridesInput struct{}

// OverrideLine is one line of the override file with its classification.
type OverrideLine struct {
	Line   string `json:"line"`
	Family string `json:"family,omitempty"`
	Key    string `json:"key,omitempty"`
}

// ListOverridesOutput is the output for the list_overrides tool.
type ListOverridesOutput struct {
	Path  string         `json:"path"`
	Lines []OverrideLine `json:"lines"`
}
