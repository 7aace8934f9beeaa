package topology

import (
	"strconv"
	"strings"

	"github.com/1broseidon/hyprconf/internal/catalog"
)

const (
	headerPrefix      = "Monitor "
	idMarker          = "(ID "
	idTerminator      = "):"
	modesPrefix       = "availableModes:"
	positionSeparator = " at "
)

// Parse reads the text output of `hyprctl monitors all`.
//
//	Monitor DP-3 (ID 0):
//		2560x1440@155.00000 at 0x0
//		description: AOC Q27G2SG4
//		availableModes: 2560x1440@59.95Hz 2560x1440@155.00Hz
//
// Parsing never fails: malformed headers are dropped, unparsable fields keep
// their previous value and malformed mode tokens are skipped. Monitors are
// returned in the order their blocks appear.
func Parse(output string) []Monitor {
	var monitors []Monitor
	var current *Monitor

	flush := func() {
		if current != nil {
			monitors = append(monitors, *current)
			current = nil
		}
	}

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, headerPrefix) {
			if mon, ok := parseHeader(line); ok {
				flush()
				current = &mon
			}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.Contains(line, "@") && strings.Contains(line, positionSeparator):
			applyCurrentMode(current, line)
		case strings.HasPrefix(line, modesPrefix):
			current.Modes = append(current.Modes, catalog.ParseModes(strings.TrimPrefix(line, modesPrefix))...)
		}
	}
	flush()

	return monitors
}

// parseHeader extracts name and id from "Monitor <name> (ID <id>):".
func parseHeader(line string) (Monitor, bool) {
	rest := strings.TrimPrefix(line, headerPrefix)

	idStart := strings.Index(rest, idMarker)
	if idStart < 0 {
		return Monitor{}, false
	}
	idEnd := strings.Index(rest, idTerminator)
	if idEnd < idStart+len(idMarker) {
		return Monitor{}, false
	}

	id, err := strconv.Atoi(rest[idStart+len(idMarker) : idEnd])
	if err != nil {
		return Monitor{}, false
	}

	return Monitor{
		ID:   id,
		Name: strings.TrimSpace(rest[:idStart]),
	}, true
}

// applyCurrentMode handles "<res>@<rate> at <x>x<y>". Each field is parsed on
// its own so one bad value does not discard the others.
func applyCurrentMode(m *Monitor, line string) {
	modePart, posPart, _ := strings.Cut(line, positionSeparator)

	if res, rate, ok := strings.Cut(modePart, "@"); ok {
		m.Resolution = strings.TrimSpace(res)
		if value, err := strconv.ParseFloat(strings.TrimSpace(rate), 64); err == nil {
			m.RefreshRate = value
		}
	}

	if xs, ys, ok := strings.Cut(strings.TrimSpace(posPart), "x"); ok {
		x, errX := strconv.Atoi(xs)
		y, errY := strconv.Atoi(ys)
		if errX == nil && errY == nil {
			m.X, m.Y = x, y
		}
	}
}
