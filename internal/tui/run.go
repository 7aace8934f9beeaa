package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/hyprconf/internal/settings"
)

// ErrNotTerminal is returned when stdin or stdout is not a TTY.
var ErrNotTerminal = errors.New("tui requires an interactive terminal (stdin/stdout must be TTYs)")

// Run bootstraps the override file and starts the TUI main loop.
func Run(svc *settings.Service, logger *slog.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	if _, err := svc.Bootstrap(); err != nil {
		return fmt.Errorf("bootstrap overrides: %w", err)
	}

	p := tea.NewProgram(newModel(svc, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
