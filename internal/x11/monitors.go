package x11

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/topology"
)

// crtcState is the part of a CRTC reply the topology needs.
type crtcState struct {
	x, y          int
	width, height int
	mode          randr.Mode
	outputName    string
	outputModes   []randr.Mode
}

// GetMonitors reads every active CRTC through RandR.
func (c *Connection) GetMonitors() ([]topology.Monitor, error) {
	conn := c.XUtil.Conn()

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var crtcs []crtcState
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		state := crtcState{
			x:          int(crtcInfo.X),
			y:          int(crtcInfo.Y),
			width:      int(crtcInfo.Width),
			height:     int(crtcInfo.Height),
			mode:       crtcInfo.Mode,
			outputName: "Monitor" + strconv.Itoa(i),
		}
		outputInfo, err := randr.GetOutputInfo(conn, crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			state.outputName = string(outputInfo.Name)
			state.outputModes = outputInfo.Modes
		}
		crtcs = append(crtcs, state)
	}

	return buildMonitors(crtcs, resources.Modes), nil
}

// Monitors satisfies the settings topology source interface.
func (c *Connection) Monitors(context.Context) ([]topology.Monitor, error) {
	return c.GetMonitors()
}

func buildMonitors(crtcs []crtcState, modes []randr.ModeInfo) []topology.Monitor {
	byID := make(map[randr.Mode]randr.ModeInfo, len(modes))
	for _, m := range modes {
		byID[randr.Mode(m.Id)] = m
	}

	monitors := make([]topology.Monitor, 0, len(crtcs))
	for i, crtc := range crtcs {
		m := topology.Monitor{
			ID:         i,
			Name:       crtc.outputName,
			Resolution: fmt.Sprintf("%dx%d", crtc.width, crtc.height),
			X:          crtc.x,
			Y:          crtc.y,
		}
		if info, ok := byID[crtc.mode]; ok {
			m.RefreshRate = refreshRate(info)
		}
		for _, id := range crtc.outputModes {
			info, ok := byID[id]
			if !ok {
				continue
			}
			m.Modes = append(m.Modes, catalog.Mode{
				Resolution:  fmt.Sprintf("%dx%d", info.Width, info.Height),
				RefreshRate: refreshRate(info),
			})
		}
		monitors = append(monitors, m)
	}
	return monitors
}

// refreshRate derives the vertical refresh from the mode timings, rounded to
// the two decimals Hyprland prints.
func refreshRate(info randr.ModeInfo) float64 {
	vtotal := float64(info.Vtotal)
	if info.ModeFlags&randr.ModeFlagDoubleScan != 0 {
		vtotal *= 2
	}
	if info.ModeFlags&randr.ModeFlagInterlace != 0 {
		vtotal /= 2
	}
	if info.Htotal == 0 || vtotal == 0 {
		return 0
	}
	rate := float64(info.DotClock) / (float64(info.Htotal) * vtotal)
	return math.Round(rate*100) / 100
}
