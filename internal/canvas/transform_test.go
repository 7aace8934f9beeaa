package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/hyprconf/internal/topology"
)

func dualHead() []topology.Monitor {
	return []topology.Monitor{
		{ID: 0, Name: "DP-3", Resolution: "2560x1440", RefreshRate: 155, X: 0, Y: 0},
		{ID: 1, Name: "HDMI-A-1", Resolution: "1920x1080", RefreshRate: 60, X: 2560, Y: 0},
	}
}

func TestCompute_Empty(t *testing.T) {
	tr := Compute(nil, DefaultParams())
	assert.Equal(t, Transform{Scale: 1, Width: 150, Height: 100}, tr)
}

func TestCompute_DualHead(t *testing.T) {
	tr := Compute(dualHead(), DefaultParams())

	assert.InDelta(t, 0.075, tr.Scale, 1e-9)
	assert.InDelta(t, 1140, tr.Width, 1e-9)
	assert.InDelta(t, 380, tr.Height, 1e-9)
	assert.InDelta(t, 402, tr.OffsetX, 1e-9)
	assert.InDelta(t, 136, tr.OffsetY, 1e-9)
}

func TestCompute_FloorsAtMinimumCanvas(t *testing.T) {
	p := DefaultParams()
	p.MinWidth, p.MinHeight = 10000, 8000
	tr := Compute([]topology.Monitor{{Name: "eDP-1", Resolution: "800x600"}}, p)

	assert.InDelta(t, 2500, tr.Width, 1e-9)
	assert.InDelta(t, 2000, tr.Height, 1e-9)
	assert.Greater(t, tr.Scale, 0.0)
}

func TestCompute_ScaleCappedByMaxZoom(t *testing.T) {
	p := DefaultParams()
	p.MinWidth, p.MinHeight = 100000, 100000
	tr := Compute([]topology.Monitor{{Name: "eDP-1", Resolution: "1920x1080"}}, p)
	assert.InDelta(t, p.MaxZoom, tr.Scale, 1e-12)
}

func TestCompute_CentersLayout(t *testing.T) {
	tr := Compute(dualHead(), DefaultParams())

	left := tr.Forward(0, 0)
	right := tr.Forward(2560+1920, 1440)
	assert.InDelta(t, tr.Width-right.X, left.X, 1e-9)
	assert.InDelta(t, tr.Height-right.Y, left.Y, 1e-9)
}

func TestDimensions_Fallback(t *testing.T) {
	w, h := Dimensions("bogus")
	assert.Equal(t, FallbackWidth, w)
	assert.Equal(t, FallbackHeight, h)

	w, h = Dimensions("3440x1440")
	assert.Equal(t, 3440, w)
	assert.Equal(t, 1440, h)
}

func TestTransform_RoundTrip(t *testing.T) {
	monitors := append(dualHead(),
		topology.Monitor{Name: "DP-1", Resolution: "1920x1080", X: -1920, Y: 180},
		topology.Monitor{Name: "DP-2", Resolution: "bogus", X: 1234, Y: -1440},
	)
	tr := Compute(monitors, DefaultParams())
	require.Greater(t, tr.Scale, 0.0)

	for _, m := range monitors {
		x, y := tr.Inverse(tr.Forward(m.X, m.Y))
		assert.Equal(t, m.X, x, m.Name)
		assert.Equal(t, m.Y, y, m.Name)
	}
}

func TestTransform_BoxFor(t *testing.T) {
	tr := Compute(dualHead(), DefaultParams())
	box := tr.BoxFor(dualHead()[1])

	assert.InDelta(t, 594, box.X, 1e-9)
	assert.InDelta(t, 136, box.Y, 1e-9)
	assert.InDelta(t, 144, box.Width, 1e-9)
	assert.InDelta(t, 81, box.Height, 1e-9)
	assert.True(t, box.Contains(Point{X: 600, Y: 150}))
	assert.False(t, box.Contains(Point{X: 738, Y: 150}))
}
