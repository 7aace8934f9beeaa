package overrides

import "strings"

// Family identifies a class of override lines that share a prefix and a key
// extraction rule. The set is closed; adding a family means adding a constant
// and extending every switch below.
type Family int

const (
	FamilyMonitor Family = iota
	FamilyKeyboardLayout
	FamilySensitivity
	FamilyForceNoAccel
	familyCount // sentinel for iteration
)

const (
	MonitorPrefix        = "monitor="
	KeyboardLayoutPrefix = "input:kb_layout="
	SensitivityPrefix    = "input:sensitivity="
	ForceNoAccelPrefix   = "input:force_no_accel="
)

// Families returns every family in matching order.
func Families() []Family {
	out := make([]Family, 0, familyCount)
	for f := Family(0); f < familyCount; f++ {
		out = append(out, f)
	}
	return out
}

func (f Family) String() string {
	switch f {
	case FamilyMonitor:
		return "monitor"
	case FamilyKeyboardLayout:
		return "kb_layout"
	case FamilySensitivity:
		return "sensitivity"
	case FamilyForceNoAccel:
		return "force_no_accel"
	default:
		return "unknown"
	}
}

// Prefix returns the literal line prefix owned by the family.
func (f Family) Prefix() string {
	switch f {
	case FamilyMonitor:
		return MonitorPrefix
	case FamilyKeyboardLayout:
		return KeyboardLayoutPrefix
	case FamilySensitivity:
		return SensitivityPrefix
	case FamilyForceNoAccel:
		return ForceNoAccelPrefix
	default:
		return ""
	}
}

// ReplaceOnConflict reports whether a new line replaces an existing line with
// the same key. Every current family replaces.
func (f Family) ReplaceOnConflict() bool {
	switch f {
	case FamilyMonitor, FamilyKeyboardLayout, FamilySensitivity, FamilyForceNoAccel:
		return true
	default:
		return false
	}
}

// ExtractKey returns the identity of line within the family, or false if the
// line does not belong to it.
func (f Family) ExtractKey(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(trimmed, f.Prefix())
	if !ok || f.Prefix() == "" {
		return "", false
	}

	switch f {
	case FamilyMonitor:
		name, _, found := strings.Cut(rest, ",")
		if !found {
			return "", false
		}
		return name, true
	case FamilyKeyboardLayout, FamilySensitivity, FamilyForceNoAccel:
		// Single global setting: the key is the setting name itself.
		return f.String(), true
	default:
		return "", false
	}
}

// Classify returns the first family that claims line and its key.
func Classify(line string) (Family, string, bool) {
	for _, f := range Families() {
		if key, ok := f.ExtractKey(line); ok {
			return f, key, true
		}
	}
	return 0, "", false
}
