package topology

import (
	"fmt"

	"github.com/1broseidon/hyprconf/internal/catalog"
)

// Monitor is one output as reported by the compositor.
//
// X and Y live in the compositor's global layout space; the anchor monitor
// sits at (0,0) by convention.
type Monitor struct {
	ID          int
	Name        string
	Resolution  string
	RefreshRate float64
	X           int
	Y           int
	Modes       []catalog.Mode
}

// IsAnchor reports whether the monitor sits at the layout origin.
func (m Monitor) IsAnchor() bool {
	return m.X == 0 && m.Y == 0
}

// CurrentMode returns the active resolution and refresh rate as a Mode.
func (m Monitor) CurrentMode() catalog.Mode {
	return catalog.Mode{Resolution: m.Resolution, RefreshRate: m.RefreshRate}
}

// UniqueResolutions lists the distinct resolutions the monitor supports.
func (m Monitor) UniqueResolutions() []string {
	return catalog.UniqueResolutions(m.Modes)
}

// RefreshRates lists the refresh rates the monitor supports at resolution.
func (m Monitor) RefreshRates(resolution string) []float64 {
	return catalog.RefreshRates(m.Modes, resolution)
}

// Position formats the layout position as "XxY".
func (m Monitor) Position() string {
	return fmt.Sprintf("%dx%d", m.X, m.Y)
}

// Clone returns a copy that does not share the mode slice.
func (m Monitor) Clone() Monitor {
	out := m
	if m.Modes != nil {
		out.Modes = append([]catalog.Mode(nil), m.Modes...)
	}
	return out
}

// Find returns the index of the monitor called name, or -1.
func Find(monitors []Monitor, name string) int {
	for i, m := range monitors {
		if m.Name == name {
			return i
		}
	}
	return -1
}
