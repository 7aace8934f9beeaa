package overrides

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/hyprconf/internal/catalog"
)

// ErrMultiline is returned for text that would not read back from the
// override file as a single line.
var ErrMultiline = errors.New("override text must not contain line breaks")

// ValidateLine rejects text containing CR or LF.
func ValidateLine(line string) error {
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("%q: %w", line, ErrMultiline)
	}
	return nil
}

// MonitorValue formats the monitor rule value shared by override lines and
// `hyprctl keyword monitor`: "<name>,<res>@<rate>,<x>x<y>,1".
func MonitorValue(name string, mode catalog.Mode, x, y int) string {
	return fmt.Sprintf("%s,%s@%s,%dx%d,1", name, mode.Resolution, catalog.FormatRate(mode.RefreshRate), x, y)
}

// MonitorLine formats a monitor override line.
func MonitorLine(name string, mode catalog.Mode, x, y int) string {
	return MonitorPrefix + MonitorValue(name, mode, x, y)
}

// KeyboardLayoutLine formats "input:kb_layout=us,fi".
func KeyboardLayoutLine(codes []string) string {
	return KeyboardLayoutPrefix + strings.Join(codes, ",")
}

// SensitivityLine formats "input:sensitivity=<float>".
func SensitivityLine(sensitivity float64) string {
	return SensitivityPrefix + strconv.FormatFloat(sensitivity, 'f', -1, 64)
}

// ForceNoAccelLine formats "input:force_no_accel=<0|1>".
func ForceNoAccelLine(forceNoAccel bool) string {
	if forceNoAccel {
		return ForceNoAccelPrefix + "1"
	}
	return ForceNoAccelPrefix + "0"
}
