package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/hyprconf/internal/canvas"
	"github.com/1broseidon/hyprconf/internal/topology"
)

func dualHead() []topology.Monitor {
	return []topology.Monitor{
		{ID: 0, Name: "DP-3", Resolution: "2560x1440", RefreshRate: 143.91},
		{ID: 1, Name: "HDMI-A-1", Resolution: "1920x1080", RefreshRate: 60, X: 2560},
	}
}

func TestFitParams_FillsCells(t *testing.T) {
	tr := canvas.Compute(dualHead(), fitParams(dualHead(), 80, 20))

	assert.InDelta(t, 80, tr.Width, 1e-9)
	assert.InDelta(t, 40, tr.Height, 1e-9)
	assert.InDelta(t, 80.0/4880, tr.Scale, 1e-9)
}

func TestFitParams_Empty(t *testing.T) {
	p := fitParams(nil, 0, 0)
	assert.Greater(t, p.OverallScale, 0.0)
	assert.Equal(t, p.OverallScale, p.MaxZoom)
}

func TestRenderBoard_Dimensions(t *testing.T) {
	b := canvas.NewBoard(dualHead(), fitParams(dualHead(), 80, 20), nil)
	out := renderBoard(b, 80, 20)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		assert.Equal(t, 80, lipgloss.Width(line))
	}
	assert.Contains(t, out, "DP-3")
	assert.Contains(t, out, "HDMI-A-1")
}

func TestToggle(t *testing.T) {
	chosen := []string{"us", "de"}

	assert.Equal(t, []string{"de"}, toggle(chosen, "us"))
	assert.Equal(t, []string{"us", "de", "fr"}, toggle(chosen, "fr"))
	assert.Equal(t, []string{"us", "de"}, chosen)
}

func TestValidateSensitivity(t *testing.T) {
	assert.NoError(t, validateSensitivity("0.5"))
	assert.NoError(t, validateSensitivity(" -1 "))
	assert.Error(t, validateSensitivity("1.5"))
	assert.Error(t, validateSensitivity("fast"))
}
