package hyprctl

import "strings"

// DefaultDeny lists name fragments of devices hyprctl reports as keyboards
// that are not.
var DefaultDeny = []string{
	"power-button",
	"power button",
	"sleep-button",
	"sleep button",
	"video bus",
	"headset",
	"camera",
	"mic",
	"mouse",
	"pointer",
	"hotkeys",
	"virtual",
	"system-control",
	"consumer-control",
	"fcitx",
	"usb-receiver",
}

// DefaultAllow lists model fragments accepted without "keyboard" in the name.
var DefaultAllow = []string{"corne", "tkl", "logitech"}

// FilterKeyboards keeps devices that look like real keyboards. Matching is
// case-insensitive; deny wins over allow.
func FilterKeyboards(keyboards []Keyboard, deny, allow []string) []Keyboard {
	var out []Keyboard
	for _, kb := range keyboards {
		if isKeyboard(strings.ToLower(kb.Name), deny, allow) {
			out = append(out, kb)
		}
	}
	return out
}

func isKeyboard(name string, deny, allow []string) bool {
	if containsAny(name, deny) {
		return false
	}
	if strings.Contains(name, "keyboard") {
		return true
	}
	return containsAny(name, allow)
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if f != "" && strings.Contains(s, strings.ToLower(f)) {
			return true
		}
	}
	return false
}
