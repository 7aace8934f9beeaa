package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/config"
	"github.com/1broseidon/hyprconf/internal/hyprctl"
	"github.com/1broseidon/hyprconf/internal/overrides"
	"github.com/1broseidon/hyprconf/internal/topology"
	"github.com/1broseidon/hyprconf/internal/x11"
)

// TextSource parses `hyprctl monitors all`.
type TextSource struct {
	Client *hyprctl.Client
}

func (s TextSource) Monitors(ctx context.Context) ([]topology.Monitor, error) {
	return s.Client.Monitors(ctx)
}

// JSONSource parses `hyprctl monitors all -j`.
type JSONSource struct {
	Client *hyprctl.Client
}

func (s JSONSource) Monitors(ctx context.Context) ([]topology.Monitor, error) {
	data, err := s.Client.MonitorsJSON(ctx)
	if err != nil {
		return nil, err
	}
	return topology.ParseJSON(data), nil
}

// X11Source reads RandR through a short-lived X connection per call.
type X11Source struct{}

func (X11Source) Monitors(ctx context.Context) ([]topology.Monitor, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("x11 connect: %w", err)
	}
	defer conn.Close()
	return conn.Monitors(ctx)
}

// NewTopologySource picks the source named in the configuration.
func NewTopologySource(kind config.TopologySource, client *hyprctl.Client) (TopologySource, error) {
	switch kind {
	case config.TopologyText, "":
		return TextSource{Client: client}, nil
	case config.TopologyJSON:
		return JSONSource{Client: client}, nil
	case config.TopologyX11:
		return X11Source{}, nil
	default:
		return nil, fmt.Errorf("unknown topology source %q", kind)
	}
}

// Monitors returns the current topology. On failure the error is logged and
// returned with an empty list so callers can still render.
func (s *Service) Monitors(ctx context.Context) ([]topology.Monitor, error) {
	monitors, err := s.topology.Monitors(ctx)
	if err != nil {
		s.logger.Warn("failed to read monitor topology", "error", err)
		return []topology.Monitor{}, err
	}
	s.logger.Debug("monitor topology", "count", len(monitors))
	return monitors, nil
}

// CommitMonitor persists m's current mode and position and asks the
// compositor to apply it. Apply failures are logged, not returned.
func (s *Service) CommitMonitor(m topology.Monitor) error {
	return s.commitMonitor(context.Background(), m, true)
}

func (s *Service) commitMonitor(ctx context.Context, m topology.Monitor, apply bool) error {
	mode := m.CurrentMode()
	line := overrides.MonitorLine(m.Name, mode, m.X, m.Y)
	if _, err := s.store.Upsert(line); err != nil {
		return err
	}
	s.logger.Info("monitor override written", "monitor", m.Name, "line", line)

	if !apply {
		return nil
	}
	if err := s.hypr.ApplyMonitor(ctx, overrides.MonitorValue(m.Name, mode, m.X, m.Y)); err != nil {
		s.logger.Warn("failed to apply monitor", "monitor", m.Name, "error", err)
	}
	return nil
}

// MonitorChange describes an edit to one monitor. Nil fields keep the
// current value.
type MonitorChange struct {
	Name     string
	Mode     *catalog.Mode
	Position *[2]int
	Apply    bool
}

// SetMonitor applies change on top of the monitor's current state and
// persists it.
func (s *Service) SetMonitor(ctx context.Context, change MonitorChange) (topology.Monitor, error) {
	monitors, err := s.Monitors(ctx)
	if err != nil {
		return topology.Monitor{}, err
	}
	i := topology.Find(monitors, change.Name)
	if i < 0 {
		return topology.Monitor{}, fmt.Errorf("monitor %q not found", change.Name)
	}

	m := monitors[i]
	if change.Mode != nil {
		if len(m.Modes) > 0 && !hasMode(m.Modes, *change.Mode) {
			s.logger.Warn("mode not advertised by monitor", "monitor", m.Name, "mode", change.Mode.String())
		}
		m.Resolution = change.Mode.Resolution
		m.RefreshRate = change.Mode.RefreshRate
	}
	if change.Position != nil {
		m.X, m.Y = change.Position[0], change.Position[1]
	}

	if err := s.commitMonitor(ctx, m, change.Apply); err != nil {
		return topology.Monitor{}, err
	}
	return m, nil
}

func hasMode(modes []catalog.Mode, want catalog.Mode) bool {
	for _, m := range modes {
		if m.Resolution == want.Resolution && m.RefreshRate == want.RefreshRate {
			return true
		}
	}
	return false
}

// ParsePosition parses "XxY", allowing negative coordinates.
func ParsePosition(s string) ([2]int, error) {
	xs, ys, ok := strings.Cut(s, "x")
	if !ok {
		return [2]int{}, fmt.Errorf("invalid position %q: want XxY", s)
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return [2]int{}, fmt.Errorf("invalid position %q: want XxY", s)
	}
	return [2]int{x, y}, nil
}

// ParseMode parses "WxH@R" with an optional "Hz" suffix.
func ParseMode(s string) (catalog.Mode, error) {
	mode, ok := catalog.ParseModeToken(s)
	if !ok {
		if mode, ok = catalog.ParseModeToken(s + "Hz"); !ok {
			return catalog.Mode{}, fmt.Errorf("invalid mode %q: want WxH@RATE", s)
		}
	}
	if _, _, ok := catalog.ParseResolution(mode.Resolution); !ok {
		return catalog.Mode{}, fmt.Errorf("invalid mode %q: want WxH@RATE", s)
	}
	return mode, nil
}
