package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Mode is one resolution/refresh-rate pair advertised by a monitor.
type Mode struct {
	Resolution  string
	RefreshRate float64
}

// String formats the mode the way hyprctl lists it, e.g. "2560x1440@155.00Hz".
func (m Mode) String() string {
	return fmt.Sprintf("%s@%sHz", m.Resolution, FormatRefreshLabel(m.RefreshRate))
}

// ParseModeToken parses a single "<res>@<rate>Hz" token.
func ParseModeToken(token string) (Mode, bool) {
	res, rate, ok := strings.Cut(token, "@")
	if !ok {
		return Mode{}, false
	}
	num, ok := strings.CutSuffix(rate, "Hz")
	if !ok {
		return Mode{}, false
	}
	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Mode{}, false
	}
	return Mode{Resolution: res, RefreshRate: value}, true
}

// ParseModes tokenizes a whitespace-separated mode list. Tokens that are not
// of the "<res>@<rate>Hz" shape are skipped; duplicates are kept.
func ParseModes(list string) []Mode {
	var modes []Mode
	for _, token := range strings.Fields(list) {
		if mode, ok := ParseModeToken(token); ok {
			modes = append(modes, mode)
		}
	}
	return modes
}

// UniqueResolutions returns the sorted set of resolutions found in modes.
func UniqueResolutions(modes []Mode) []string {
	seen := make(map[string]struct{}, len(modes))
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		if _, ok := seen[m.Resolution]; ok {
			continue
		}
		seen[m.Resolution] = struct{}{}
		out = append(out, m.Resolution)
	}
	sort.Strings(out)
	return out
}

// RefreshRates returns the refresh rates offered for resolution, in list order.
func RefreshRates(modes []Mode, resolution string) []float64 {
	var rates []float64
	for _, m := range modes {
		if m.Resolution == resolution {
			rates = append(rates, m.RefreshRate)
		}
	}
	return rates
}

// ParseResolution splits "WxH" into its integer width and height.
func ParseResolution(resolution string) (width, height int, ok bool) {
	w, h, found := strings.Cut(resolution, "x")
	if !found {
		return 0, 0, false
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil {
		return 0, 0, false
	}
	return width, height, true
}

// FormatRate renders a refresh rate with the shortest exact representation
// ("155", "59.95"), the form used in override lines.
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// FormatRefreshLabel renders a refresh rate with two decimals for display.
func FormatRefreshLabel(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64)
}
