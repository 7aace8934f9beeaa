package topology

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/1broseidon/hyprconf/internal/catalog"
)

// ParseJSON reads `hyprctl monitors all -j`. Like Parse it is lenient: entries
// without a name are skipped and missing numeric fields default to zero.
func ParseJSON(data []byte) []Monitor {
	if !gjson.ValidBytes(data) {
		return nil
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil
	}

	var monitors []Monitor
	root.ForEach(func(_, entry gjson.Result) bool {
		name := entry.Get("name").String()
		if name == "" {
			return true
		}

		mon := Monitor{
			ID:          int(entry.Get("id").Int()),
			Name:        name,
			RefreshRate: entry.Get("refreshRate").Float(),
			X:           int(entry.Get("x").Int()),
			Y:           int(entry.Get("y").Int()),
		}
		if w, h := entry.Get("width"), entry.Get("height"); w.Exists() && h.Exists() {
			mon.Resolution = fmt.Sprintf("%dx%d", w.Int(), h.Int())
		}
		entry.Get("availableModes").ForEach(func(_, token gjson.Result) bool {
			if mode, ok := catalog.ParseModeToken(token.String()); ok {
				mon.Modes = append(mon.Modes, mode)
			}
			return true
		})

		monitors = append(monitors, mon)
		return true
	})
	return monitors
}
