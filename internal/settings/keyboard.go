package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/hyprctl"
	"github.com/1broseidon/hyprconf/internal/overrides"
)

// CurrentLocales returns the active layouts of the first keyboard, falling
// back to the configured defaults when hyprctl has nothing to say.
func (s *Service) CurrentLocales(ctx context.Context) []string {
	locales, err := s.hypr.CurrentLocales(ctx)
	if err != nil {
		s.logger.Warn("failed to read keyboard layouts, using defaults", "error", err)
		return append([]string(nil), s.defaultLocales...)
	}
	if len(locales) == 0 {
		return append([]string(nil), s.defaultLocales...)
	}
	return locales
}

// AvailableLayouts returns the XKB layout catalog, or the fallback codes when
// the catalog cannot be read.
func (s *Service) AvailableLayouts() []catalog.Layout {
	layouts, err := catalog.LoadLayouts(s.localeCatalog)
	if err != nil || len(layouts) == 0 {
		s.logger.Warn("layout catalog unavailable, using fallback list", "path", s.localeCatalog, "error", err)
		return catalog.LayoutsFromCodes(s.fallbackLocales)
	}
	return layouts
}

// Keyboards lists the devices that look like real keyboards.
func (s *Service) Keyboards(ctx context.Context) ([]hyprctl.Keyboard, error) {
	all, err := s.hypr.Keyboards(ctx)
	if err != nil {
		return nil, err
	}
	return hyprctl.FilterKeyboards(all, s.deny, s.allow), nil
}

// PerDeviceLayouts reports whether layout changes target each keyboard
// individually.
func (s *Service) PerDeviceLayouts() bool { return s.perDeviceLayouts }

// SetLocales writes the global layout list.
func (s *Service) SetLocales(codes []string) error {
	codes, err := cleanCodes(codes)
	if err != nil {
		return err
	}
	line := overrides.KeyboardLayoutLine(codes)
	if _, err := s.store.Upsert(line); err != nil {
		return err
	}
	s.logger.Info("keyboard layouts written", "layouts", codes)
	return nil
}

// SetDeviceLocales writes a per-device layout block for keyboard name.
func (s *Service) SetDeviceLocales(name string, codes []string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("device name is required")
	}
	codes, err := cleanCodes(codes)
	if err != nil {
		return err
	}
	if _, err := s.store.UpsertDevice(name, codes); err != nil {
		return err
	}
	s.logger.Info("device keyboard layouts written", "device", name, "layouts", codes)
	return nil
}

// ApplyLocales writes codes either globally or, when per-device layouts are
// enabled, to every detected keyboard.
func (s *Service) ApplyLocales(ctx context.Context, codes []string) error {
	if !s.perDeviceLayouts {
		return s.SetLocales(codes)
	}
	keyboards, err := s.Keyboards(ctx)
	if err != nil {
		return err
	}
	if len(keyboards) == 0 {
		s.logger.Warn("no keyboards detected, writing global layouts")
		return s.SetLocales(codes)
	}
	for _, kb := range keyboards {
		if err := s.SetDeviceLocales(kb.Name, codes); err != nil {
			return err
		}
	}
	return nil
}

// cleanCodes trims and dedupes codes, keeping the first occurrence's order.
func cleanCodes(codes []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		if strings.ContainsAny(c, ", \t\r\n") {
			return nil, fmt.Errorf("invalid layout code %q", c)
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one layout is required")
	}
	return out, nil
}
