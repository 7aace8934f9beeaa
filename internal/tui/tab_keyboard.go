package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/settings"
)

// layoutItem is a list item for one XKB layout.
type layoutItem struct {
	layout catalog.Layout
	order  int // 1-based position in the active list, 0 when inactive
}

func (i layoutItem) Title() string {
	if i.order > 0 {
		return okStyle.Render(fmt.Sprintf("%d", i.order)) + " " + i.layout.Code
	}
	return mutedStyle.Render("·") + " " + i.layout.Code
}

func (i layoutItem) Description() string { return i.layout.Label }

func (i layoutItem) FilterValue() string { return i.layout.Code + " " + i.layout.Label }

// KeyboardTab picks the ordered list of active layouts from the catalog.
type KeyboardTab struct {
	svc     *settings.Service
	list    list.Model
	layouts []catalog.Layout
	chosen  []string
	devices []string
	width   int
	height  int
}

// NewKeyboardTab loads the catalog and the current layouts.
func NewKeyboardTab(svc *settings.Service) KeyboardTab {
	ctx := context.Background()
	k := KeyboardTab{
		svc:     svc,
		layouts: svc.AvailableLayouts(),
		chosen:  svc.CurrentLocales(ctx),
	}
	if svc.PerDeviceLayouts() {
		if keyboards, err := svc.Keyboards(ctx); err == nil {
			for _, kb := range keyboards {
				k.devices = append(k.devices, kb.Name)
			}
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(k.items(), delegate, 0, 0)
	l.Title = "Keyboard layouts"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	k.list = l
	return k
}

func (k KeyboardTab) items() []list.Item {
	items := make([]list.Item, 0, len(k.layouts))
	for _, l := range k.layouts {
		items = append(items, layoutItem{layout: l, order: slices.Index(k.chosen, l.Code) + 1})
	}
	return items
}

// Capturing reports whether the filter input owns the keyboard.
func (k KeyboardTab) Capturing() bool {
	return k.list.FilterState() == list.Filtering
}

// toggle adds code to the end of the active list or removes it.
func toggle(chosen []string, code string) []string {
	if i := slices.Index(chosen, code); i >= 0 {
		return slices.Delete(slices.Clone(chosen), i, i+1)
	}
	return append(slices.Clone(chosen), code)
}

// Update handles messages for the keyboard tab.
func (k KeyboardTab) Update(msg tea.Msg) (KeyboardTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		k.width = msg.Width
		k.height = msg.Height
		k.list.SetSize(k.leftWidth(), k.height)
		return k, nil

	case tea.KeyMsg:
		if k.Capturing() {
			break
		}
		switch msg.String() {
		case " ":
			if item, ok := k.list.SelectedItem().(layoutItem); ok {
				k.chosen = toggle(k.chosen, item.layout.Code)
				cmd := k.list.SetItems(k.items())
				return k, cmd
			}
			return k, nil
		case "enter":
			if len(k.chosen) == 0 {
				return k, setStatus("keyboard", fmt.Errorf("select at least one layout"))
			}
			err := k.svc.ApplyLocales(context.Background(), k.chosen)
			return k, setStatus("layouts set to "+strings.Join(k.chosen, ","), err)
		}
	}

	var cmd tea.Cmd
	k.list, cmd = k.list.Update(msg)
	return k, cmd
}

func (k KeyboardTab) leftWidth() int {
	return max(k.width*3/5, 20)
}

// View implements tea.Model.
func (k KeyboardTab) View() string {
	if k.width == 0 || k.height == 0 {
		return ""
	}
	leftWidth := k.leftWidth()
	rightWidth := max(k.width-leftWidth, 10)

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(k.height).
		Render(k.list.View())

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Active layouts"))
	b.WriteString("\n\n")
	if len(k.chosen) == 0 {
		b.WriteString(mutedStyle.Render("none selected"))
	}
	for i, code := range k.chosen {
		fmt.Fprintf(&b, "%d. %s\n", i+1, code)
	}
	b.WriteString("\n")
	if len(k.devices) > 0 {
		b.WriteString(mutedStyle.Render("per-device: " + strings.Join(k.devices, ", ")))
	} else {
		b.WriteString(mutedStyle.Render("written as input:kb_layout"))
	}

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(k.height).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
