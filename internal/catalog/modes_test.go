package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModeToken(t *testing.T) {
	tests := []struct {
		token string
		want  Mode
		ok    bool
	}{
		{"2560x1440@59.95Hz", Mode{Resolution: "2560x1440", RefreshRate: 59.95}, true},
		{"1920x1080@60.00Hz", Mode{Resolution: "1920x1080", RefreshRate: 60}, true},
		{"1920x1080@60.00", Mode{}, false},
		{"1920x1080", Mode{}, false},
		{"1920x1080@fastHz", Mode{}, false},
		{"1920x1080@60@1Hz", Mode{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseModeToken(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseModes_SkipsMalformedTokensAndKeepsDuplicates(t *testing.T) {
	modes := ParseModes("  2560x1440@59.95Hz garbage 2560x1440@155.00Hz 2560x1440@155.00Hz 1920x1080@60  ")
	require.Len(t, modes, 3)
	assert.Equal(t, "2560x1440", modes[0].Resolution)
	assert.Equal(t, 155.0, modes[1].RefreshRate)
	assert.Equal(t, modes[1], modes[2])
}

func TestUniqueResolutionsAndRefreshRates(t *testing.T) {
	modes := ParseModes("2560x1440@59.95Hz 1920x1080@60.00Hz 2560x1440@155.00Hz 1920x1080@75.00Hz")

	assert.Equal(t, []string{"1920x1080", "2560x1440"}, UniqueResolutions(modes))
	assert.Equal(t, []float64{59.95, 155}, RefreshRates(modes, "2560x1440"))
	assert.Empty(t, RefreshRates(modes, "800x600"))
}

func TestParseResolution(t *testing.T) {
	w, h, ok := ParseResolution("2560x1440")
	require.True(t, ok)
	assert.Equal(t, 2560, w)
	assert.Equal(t, 1440, h)

	_, _, ok = ParseResolution("preferred")
	assert.False(t, ok)
	_, _, ok = ParseResolution("axb")
	assert.False(t, ok)
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "155", FormatRate(155.0))
	assert.Equal(t, "59.95", FormatRate(59.95))
	assert.Equal(t, "155.00", FormatRefreshLabel(155))
	assert.Equal(t, "2560x1440@59.95Hz", Mode{Resolution: "2560x1440", RefreshRate: 59.95}.String())
}
