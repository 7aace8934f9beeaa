package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab identifies a TUI tab.
type Tab int

const (
	TabMonitors Tab = iota
	TabKeyboard
	TabMouse
	tabCount // sentinel for iteration
)

func (t Tab) String() string {
	switch t {
	case TabMonitors:
		return "Monitors"
	case TabKeyboard:
		return "Keyboard"
	case TabMouse:
		return "Mouse"
	default:
		return "?"
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	tabGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// headerHeight is the number of rows above tab content: status bar plus the
// tab bar and its margin.
const headerHeight = 3

// renderTabBar renders the tab bar with the given active tab and width.
func renderTabBar(active Tab, width int) string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		label := string(rune('1'+i)) + ":" + i.String()
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(tabs, tabGap.Render())...)
	return tabBarStyle.Width(width).Render(row)
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// statusMsg carries a one-line outcome from a tab to the status bar.
type statusMsg struct {
	text string
	err  bool
}

func setStatus(text string, err error) tea.Cmd {
	return func() tea.Msg {
		if err != nil {
			return statusMsg{text: text + ": " + err.Error(), err: true}
		}
		return statusMsg{text: text}
	}
}

// renderStatusBar shows the override file and the last action's outcome.
func renderStatusBar(overridePath string, status statusMsg, width int) string {
	parts := []string{mutedStyle.Render("●") + " " + overridePath}
	if status.text != "" {
		if status.err {
			parts = append(parts, errStyle.Render(status.text))
		} else {
			parts = append(parts, okStyle.Render(status.text))
		}
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(strings.Join(parts, "  "))
}

// renderHelpBar renders the bottom help/keybinding bar for the active tab.
func renderHelpBar(active Tab, width int) string {
	help := "tab/shift-tab: switch tabs  1-3: jump to tab  q/ctrl-c: quit"
	switch active {
	case TabMonitors:
		help = "drag: move  click: details  e: edit mode  r: reload  " + help
	case TabKeyboard:
		help = "space: toggle  enter: apply  /: filter  " + help
	case TabMouse:
		help = "←/→: sensitivity  a: acceleration  e: edit  enter: apply  " + help
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
