package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleMonitor(t *testing.T) {
	sample := "Monitor DP-3 (ID 0):\n\t2560x1440@155.00000 at 0x0\n\tavailableModes: 2560x1440@59.95Hz 2560x1440@155.00Hz"

	monitors := Parse(sample)
	require.Len(t, monitors, 1)

	m := monitors[0]
	assert.Equal(t, 0, m.ID)
	assert.Equal(t, "DP-3", m.Name)
	assert.Equal(t, "2560x1440", m.Resolution)
	assert.Equal(t, 155.0, m.RefreshRate)
	assert.Len(t, m.Modes, 2)
	assert.True(t, m.IsAnchor())
}

func TestParse_MultipleMonitorsKeepInputOrder(t *testing.T) {
	sample := `Monitor HDMI-A-1 (ID 1):
	1920x1080@60.00000 at -1920x180
	description: Dell P2419H
	make: Dell Inc.
	availableModes: 1920x1080@60.00Hz 1280x720@60.00Hz

Monitor DP-3 (ID 0):
	2560x1440@155.00000 at 0x0
	description: AOC Q27G2SG4 XFXP8HA003779
	availableModes: 2560x1440@59.95Hz 2560x1440@155.00Hz 1920x1080@60.00Hz
`
	monitors := Parse(sample)
	require.Len(t, monitors, 2)

	assert.Equal(t, "HDMI-A-1", monitors[0].Name)
	assert.Equal(t, 1, monitors[0].ID)
	assert.Equal(t, -1920, monitors[0].X)
	assert.Equal(t, 180, monitors[0].Y)
	assert.False(t, monitors[0].IsAnchor())

	assert.Equal(t, "DP-3", monitors[1].Name)
	assert.Len(t, monitors[1].Modes, 3)
	assert.Equal(t, []string{"1920x1080", "2560x1440"}, monitors[1].UniqueResolutions())
	assert.Equal(t, []float64{59.95, 155}, monitors[1].RefreshRates("2560x1440"))
}

func TestParse_MalformedModeTokenIsSkipped(t *testing.T) {
	sample := "Monitor DP-1 (ID 2):\n\t1920x1080@144.00000 at 2560x0\n\tavailableModes: 1920x1080@144.00Hz bogus@token 1920x1080@60.00"

	monitors := Parse(sample)
	require.Len(t, monitors, 1)

	m := monitors[0]
	assert.Equal(t, "DP-1", m.Name)
	assert.Equal(t, "1920x1080", m.Resolution)
	assert.Equal(t, 144.0, m.RefreshRate)
	assert.Equal(t, 2560, m.X)
	require.Len(t, m.Modes, 1)
	assert.Equal(t, 144.0, m.Modes[0].RefreshRate)
}

func TestParse_MalformedHeaderIsDropped(t *testing.T) {
	sample := `Monitor DP-1 (ID 0):
	1920x1080@60.00000 at 0x0
Monitor BROKEN (ID abc):
	2560x1440@144.00000 at 1920x0
`
	monitors := Parse(sample)
	require.Len(t, monitors, 1)
	assert.Equal(t, "DP-1", monitors[0].Name)
	// Detail lines after a dropped header stay with the monitor that was open.
	assert.Equal(t, "2560x1440", monitors[0].Resolution)
	assert.Equal(t, 1920, monitors[0].X)
}

func TestParse_DetailLinesWithoutHeaderAreDiscarded(t *testing.T) {
	sample := "\t1920x1080@60.00000 at 0x0\nMonitor (ID 1\n\tavailableModes: 1920x1080@60.00Hz\n"
	assert.Empty(t, Parse(sample))
}

func TestParse_BadFieldsKeepDefaults(t *testing.T) {
	sample := "Monitor eDP-1 (ID 3):\n\t1920x1200@fast at nowhere\n"

	monitors := Parse(sample)
	require.Len(t, monitors, 1)
	assert.Equal(t, "1920x1200", monitors[0].Resolution)
	assert.Equal(t, 0.0, monitors[0].RefreshRate)
	assert.Equal(t, 0, monitors[0].X)
	assert.Equal(t, 0, monitors[0].Y)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestFind(t *testing.T) {
	monitors := []Monitor{{Name: "DP-1"}, {Name: "DP-2"}}
	assert.Equal(t, 1, Find(monitors, "DP-2"))
	assert.Equal(t, -1, Find(monitors, "HDMI-A-1"))
}

func TestClone_DoesNotShareModes(t *testing.T) {
	orig := Parse("Monitor DP-1 (ID 0):\n\tavailableModes: 1920x1080@60.00Hz\n")[0]
	cp := orig.Clone()
	cp.Modes[0].Resolution = "changed"
	assert.Equal(t, "1920x1080", orig.Modes[0].Resolution)
}
