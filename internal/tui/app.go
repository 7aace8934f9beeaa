package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/hyprconf/internal/settings"
)

// model is the root bubbletea model for the TUI.
type model struct {
	overridePath string

	// Tab navigation
	activeTab Tab

	// Sub-models
	monitorsTab MonitorsTab
	keyboardTab KeyboardTab
	mouseTab    MouseTab

	status statusMsg

	// Terminal dimensions
	width  int
	height int
}

func newModel(svc *settings.Service, logger *slog.Logger) model {
	return model{
		overridePath: svc.Store().Path(),
		activeTab:    TabMonitors,
		monitorsTab:  NewMonitorsTab(svc, logger),
		keyboardTab:  NewKeyboardTab(svc),
		mouseTab:     NewMouseTab(svc),
	}
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	return max(m.height-headerHeight-1, 1)
}

func (m model) capturing() bool {
	switch m.activeTab {
	case TabMonitors:
		return m.monitorsTab.Capturing()
	case TabKeyboard:
		return m.keyboardTab.Capturing()
	case TabMouse:
		return m.mouseTab.Capturing()
	}
	return false
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = msg
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		subMsg := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
		m.monitorsTab, _ = m.monitorsTab.Update(subMsg)
		m.keyboardTab, _ = m.keyboardTab.Update(subMsg)
		m.mouseTab, _ = m.mouseTab.Update(subMsg)
		return m, nil

	case tea.MouseMsg:
		if m.activeTab != TabMonitors {
			return m, nil
		}
		msg.Y -= headerHeight
		var cmd tea.Cmd
		m.monitorsTab, cmd = m.monitorsTab.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// When a sub-model captures input it gets every key.
		if m.capturing() {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabMonitors
			return m, nil
		case "2":
			m.activeTab = TabKeyboard
			return m, nil
		case "3":
			m.activeTab = TabMouse
			return m, nil
		}
	}

	// Delegate to active tab's sub-model
	var cmd tea.Cmd
	switch m.activeTab {
	case TabMonitors:
		m.monitorsTab, cmd = m.monitorsTab.Update(msg)
	case TabKeyboard:
		m.keyboardTab, cmd = m.keyboardTab.Update(msg)
	case TabMouse:
		m.mouseTab, cmd = m.mouseTab.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.overridePath, m.status, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.activeTab, m.width)

	var content string
	switch m.activeTab {
	case TabMonitors:
		content = m.monitorsTab.View()
	case TabKeyboard:
		content = m.keyboardTab.View()
	case TabMouse:
		content = m.mouseTab.View()
	}
	content = lipgloss.NewStyle().Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
