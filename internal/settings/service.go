package settings

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/config"
	"github.com/1broseidon/hyprconf/internal/hyprctl"
	"github.com/1broseidon/hyprconf/internal/overrides"
	"github.com/1broseidon/hyprconf/internal/topology"
)

// TopologySource produces the current monitor topology.
type TopologySource interface {
	Monitors(ctx context.Context) ([]topology.Monitor, error)
}

// Options configures a Service.
type Options struct {
	Store            *overrides.Store
	Hyprctl          *hyprctl.Client
	Topology         TopologySource // defaults to the hyprctl text report
	LocaleCatalog    string
	DefaultLocales   []string
	FallbackLocales  []string
	PerDeviceLayouts bool
	KeyboardDeny     []string
	KeyboardAllow    []string
	Logger           *slog.Logger
}

// Service is the single entry point the CLI, TUI and MCP server use to read
// and change settings. Every change goes through the override store.
type Service struct {
	store            *overrides.Store
	hypr             *hyprctl.Client
	topology         TopologySource
	localeCatalog    string
	defaultLocales   []string
	fallbackLocales  []string
	perDeviceLayouts bool
	deny             []string
	allow            []string
	logger           *slog.Logger
}

// New builds a Service from opts.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	hypr := opts.Hyprctl
	if hypr == nil {
		hypr = hyprctl.NewClient("", nil, logger)
	}
	source := opts.Topology
	if source == nil {
		source = TextSource{Client: hypr}
	}
	localeCatalog := opts.LocaleCatalog
	if localeCatalog == "" {
		localeCatalog = catalog.DefaultLayoutCatalogPath
	}
	return &Service{
		store:            opts.Store,
		hypr:             hypr,
		topology:         source,
		localeCatalog:    localeCatalog,
		defaultLocales:   opts.DefaultLocales,
		fallbackLocales:  opts.FallbackLocales,
		perDeviceLayouts: opts.PerDeviceLayouts,
		deny:             opts.KeyboardDeny,
		allow:            opts.KeyboardAllow,
		logger:           logger,
	}
}

// FromConfig wires a Service from the effective configuration.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	primary, err := cfg.HyprConfigPath()
	if err != nil {
		return nil, err
	}
	overridesPath, err := cfg.OverridesPath()
	if err != nil {
		return nil, err
	}

	client := hyprctl.NewClient(cfg.Hyprctl, hyprctl.ExecRunner{Timeout: cfg.HyprctlTimeout()}, logger)
	source, err := NewTopologySource(cfg.TopologySource, client)
	if err != nil {
		return nil, err
	}

	return New(Options{
		Store:            overrides.NewStore(primary, overridesPath, logger),
		Hyprctl:          client,
		Topology:         source,
		LocaleCatalog:    cfg.LocaleCatalog,
		DefaultLocales:   cfg.DefaultLocales,
		FallbackLocales:  cfg.FallbackLocales,
		PerDeviceLayouts: cfg.PerDeviceLayouts,
		KeyboardDeny:     cfg.KeyboardFilter.Deny,
		KeyboardAllow:    cfg.KeyboardFilter.Allow,
		Logger:           logger,
	}), nil
}

// Store returns the override store.
func (s *Service) Store() *overrides.Store { return s.store }

// Bootstrap makes sure the override file exists and is sourced. It must run
// before any other write.
func (s *Service) Bootstrap() (bool, error) {
	created, err := s.store.EnsureExists()
	if err != nil {
		return created, err
	}
	if created {
		s.logger.Info("override file bootstrapped", "path", s.store.Path())
	}
	return created, nil
}

// Reload asks the running compositor to re-read hyprland.conf, so a freshly
// added source directive takes effect without restarting the session.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.hypr.Reload(ctx); err != nil {
		return fmt.Errorf("reload hyprland: %w", err)
	}
	s.logger.Info("hyprland reloaded")
	return nil
}

// Overrides returns the override file lines.
func (s *Service) Overrides() ([]string, error) {
	return s.store.Lines()
}

// Upsert merges an arbitrary line into the override file.
func (s *Service) Upsert(line string) (overrides.Outcome, error) {
	return s.store.Upsert(line)
}

func (s *Service) upsertAll(lines ...string) error {
	for _, line := range lines {
		if _, err := s.store.Upsert(line); err != nil {
			return fmt.Errorf("upsert %q: %w", line, err)
		}
	}
	return nil
}
