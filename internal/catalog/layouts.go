package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// DefaultLayoutCatalogPath is the XKB rules listing shipped by xkeyboard-config.
const DefaultLayoutCatalogPath = "/usr/share/X11/xkb/rules/base.lst"

// Layout is a keyboard layout entry from the XKB catalog.
type Layout struct {
	Code  string
	Label string
}

// LoadLayouts reads the layout section of an XKB base.lst file.
func LoadLayouts(path string) ([]Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout catalog: %w", err)
	}
	defer f.Close()

	layouts, err := ParseLayouts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layouts, nil
}

// ParseLayouts extracts "code  label" pairs between the "! layout" header and
// the next "!" section. Entries are indented by two spaces; anything else in
// the section is ignored.
func ParseLayouts(r io.Reader) ([]Layout, error) {
	var layouts []Layout
	inSection := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "! layout" {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(line, "!") {
			break
		}
		if !strings.HasPrefix(line, "  ") {
			continue
		}

		trimmed := strings.TrimSpace(line)
		idx := strings.IndexFunc(trimmed, unicode.IsSpace)
		if idx < 0 {
			continue
		}
		layouts = append(layouts, Layout{
			Code:  strings.TrimSpace(trimmed[:idx]),
			Label: strings.TrimSpace(trimmed[idx:]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return layouts, nil
}

// LayoutsFromCodes builds catalog entries for bare codes, labelled by code.
func LayoutsFromCodes(codes []string) []Layout {
	out := make([]Layout, 0, len(codes))
	for _, code := range codes {
		out = append(out, Layout{Code: code, Label: code})
	}
	return out
}
