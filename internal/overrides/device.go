package overrides

import (
	"strings"
)

// DeviceBlock renders a per-device keyboard layout section.
func DeviceBlock(name string, layouts []string) []string {
	return []string{
		"device {",
		"    name = " + name,
		"    kb_layout = " + strings.Join(layouts, ","),
		"}",
	}
}

type deviceSpan struct {
	start, end int // inclusive line range
	name       string
}

// findDeviceBlocks locates "device {" ... "}" sections. A block without a
// closing brace is ignored.
func findDeviceBlocks(lines []string) []deviceSpan {
	var spans []deviceSpan
	for i := 0; i < len(lines); i++ {
		if !isDeviceOpen(lines[i]) {
			continue
		}
		span := deviceSpan{start: i, end: -1}
		for j := i + 1; j < len(lines); j++ {
			trimmed := strings.TrimSpace(lines[j])
			if trimmed == "}" {
				span.end = j
				break
			}
			if name, ok := blockField(trimmed, "name"); ok && span.name == "" {
				span.name = name
			}
		}
		if span.end < 0 {
			break
		}
		spans = append(spans, span)
		i = span.end
	}
	return spans
}

func isDeviceOpen(line string) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "device")
	if !ok {
		return false
	}
	return strings.TrimSpace(rest) == "{"
}

func blockField(trimmed, field string) (string, bool) {
	rest, ok := strings.CutPrefix(trimmed, field)
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	value, ok := strings.CutPrefix(rest, "=")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// MergeDevice upserts a device block keyed by device name: the first block
// with the same name is replaced in place, otherwise the block is appended.
func MergeDevice(lines []string, name string, block []string) ([]string, Outcome) {
	outcome := Outcome{Key: name, Classified: true, Family: FamilyKeyboardLayout}

	for _, span := range findDeviceBlocks(lines) {
		if span.name != name {
			continue
		}
		out := make([]string, 0, len(lines)-(span.end-span.start+1)+len(block))
		out = append(out, lines[:span.start]...)
		out = append(out, block...)
		out = append(out, lines[span.end+1:]...)
		outcome.Replaced = true
		outcome.Index = span.start
		return out, outcome
	}

	out := append([]string(nil), lines...)
	outcome.Index = len(out)
	out = append(out, block...)
	return out, outcome
}
