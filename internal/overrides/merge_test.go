package overrides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMerge(t *testing.T, lines []string, line string) ([]string, Outcome) {
	t.Helper()
	got, outcome, err := Merge(lines, line)
	require.NoError(t, err)
	return got, outcome
}

func TestMerge_ReplacesInPlace(t *testing.T) {
	lines := []string{"monitor=DP-3,2560x1440@155,0x0,1", "input:sensitivity=0.2"}

	got, outcome := mustMerge(t, lines, "monitor=DP-3,1920x1080@60,0x0,1")

	assert.Equal(t, []string{"monitor=DP-3,1920x1080@60,0x0,1", "input:sensitivity=0.2"}, got)
	assert.True(t, outcome.Replaced)
	assert.Equal(t, 0, outcome.Index)
	assert.Equal(t, FamilyMonitor, outcome.Family)
	assert.Equal(t, "DP-3", outcome.Key)
	// Input is left untouched.
	assert.Equal(t, "monitor=DP-3,2560x1440@155,0x0,1", lines[0])
}

func TestMerge_Idempotent(t *testing.T) {
	lines := []string{Header, "general:gaps_in=5"}
	for _, line := range []string{
		"monitor=DP-3,2560x1440@155,0x0,1",
		"input:kb_layout=us,fi",
		"input:sensitivity=0.2",
		"input:force_no_accel=1",
	} {
		once, _ := mustMerge(t, lines, line)
		twice, outcome := mustMerge(t, once, line)
		assert.Equal(t, once, twice, line)
		assert.True(t, outcome.Replaced, line)
	}
}

func TestMerge_KeyIsolation(t *testing.T) {
	lines := []string{
		"monitor=HDMI-A-1,1920x1080@60,-1920x0,1",
		"monitor=DP-3,2560x1440@155,0x0,1",
	}

	got, outcome := mustMerge(t, lines, "monitor=DP-3,2560x1440@59.95,0x0,1")
	assert.Equal(t, "monitor=HDMI-A-1,1920x1080@60,-1920x0,1", got[0])
	assert.Equal(t, "monitor=DP-3,2560x1440@59.95,0x0,1", got[1])
	assert.Equal(t, 1, outcome.Index)

	got, outcome = mustMerge(t, lines, "monitor=DP-1,1920x1080@144,2560x0,1")
	assert.Len(t, got, 3)
	assert.False(t, outcome.Replaced)
	assert.Equal(t, lines, got[:2])
}

func TestMerge_UnclassifiedAlwaysAppends(t *testing.T) {
	lines := []string{"general:gaps_in=5"}

	got, outcome := mustMerge(t, lines, "general:gaps_in=5")
	assert.Equal(t, []string{"general:gaps_in=5", "general:gaps_in=5"}, got)
	assert.False(t, outcome.Classified)
	assert.False(t, outcome.Replaced)
	assert.Equal(t, 1, outcome.Index)
}

func TestMerge_FamiliesDoNotCrossReplace(t *testing.T) {
	lines := []string{"input:sensitivity=0.5", "input:force_no_accel=0"}

	got, _ := mustMerge(t, lines, "input:kb_layout=us")
	assert.Equal(t, []string{"input:sensitivity=0.5", "input:force_no_accel=0", "input:kb_layout=us"}, got)

	got, _ = mustMerge(t, got, "input:force_no_accel=1")
	assert.Equal(t, "input:force_no_accel=1", got[1])
	assert.Len(t, got, 3)
}

func TestMerge_FirstMatchOnlyIsReplaced(t *testing.T) {
	lines := []string{"input:sensitivity=0.1", "# keep", "input:sensitivity=0.3"}

	got, outcome := mustMerge(t, lines, "input:sensitivity=0.2")
	assert.Equal(t, []string{"input:sensitivity=0.2", "# keep", "input:sensitivity=0.3"}, got)
	assert.Equal(t, 0, outcome.Index)
}

func TestMerge_EmptyFile(t *testing.T) {
	got, outcome := mustMerge(t, nil, "input:sensitivity=0")
	assert.Equal(t, []string{"input:sensitivity=0"}, got)
	assert.False(t, outcome.Replaced)
}

func TestMerge_RejectsLineBreaks(t *testing.T) {
	lines := []string{"monitor=DP-3,2560x1440@155,0x0,1"}

	for _, line := range []string{
		"monitor=HDMI-A-1,1920x1080@60,2560x0,1\nmonitor=DP-3,640x480@60,0x0,1",
		"input:kb_layout=us\rinput:sensitivity=1",
		"general:gaps_in=5\r\n",
	} {
		got, _, err := Merge(lines, line)
		assert.ErrorIs(t, err, ErrMultiline, line)
		assert.Nil(t, got)
	}
	assert.Equal(t, []string{"monitor=DP-3,2560x1440@155,0x0,1"}, lines)
}
