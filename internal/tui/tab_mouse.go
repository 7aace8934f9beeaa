package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/hyprconf/internal/settings"
)

// Slider step in percent; 2.5% is 0.05 sensitivity.
const sliderStep = 2.5

// MouseTab edits pointer sensitivity and acceleration.
type MouseTab struct {
	svc     *settings.Service
	percent float64
	noAccel bool
	width   int
	height  int

	editing bool
	form    *huh.Form
	fields  *mouseFields
}

type mouseFields struct {
	sensitivity string
	noAccel     bool
}

// NewMouseTab reads the current pointer settings.
func NewMouseTab(svc *settings.Service) MouseTab {
	m := svc.MouseSettings(context.Background())
	return MouseTab{
		svc:     svc,
		percent: settings.SensitivityToPercent(m.Sensitivity),
		noAccel: m.ForceNoAccel,
	}
}

func (t MouseTab) current() settings.Mouse {
	return settings.Mouse{
		Sensitivity:  settings.PercentToSensitivity(t.percent),
		ForceNoAccel: t.noAccel,
	}
}

// Capturing reports whether the form owns the keyboard.
func (t MouseTab) Capturing() bool { return t.editing }

// Update handles messages for the mouse tab.
func (t MouseTab) Update(msg tea.Msg) (MouseTab, tea.Cmd) {
	if t.editing {
		return t.updateEditing(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			t.percent = math.Max(t.percent-sliderStep, 0)
		case "right", "l":
			t.percent = math.Min(t.percent+sliderStep, 100)
		case "a":
			t.noAccel = !t.noAccel
		case "e":
			t.startEditing()
			return t, t.form.Init()
		case "enter":
			return t, t.save()
		}
	}
	return t, nil
}

func (t MouseTab) save() tea.Cmd {
	m := t.current()
	err := t.svc.SetMouse(m)
	return setStatus(fmt.Sprintf("sensitivity %s, force_no_accel %t", strconv.FormatFloat(m.Sensitivity, 'f', -1, 64), m.ForceNoAccel), err)
}

func (t *MouseTab) startEditing() {
	m := t.current()
	fields := &mouseFields{
		sensitivity: strconv.FormatFloat(m.Sensitivity, 'f', -1, 64),
		noAccel:     m.ForceNoAccel,
	}
	t.fields = fields
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("sensitivity").
				Title("Sensitivity (-1.0 to 1.0)").
				Value(&fields.sensitivity).
				Validate(validateSensitivity),
			huh.NewConfirm().
				Key("force_no_accel").
				Title("Disable pointer acceleration?").
				Value(&fields.noAccel),
		),
	).WithWidth(max(t.width-4, 40)).WithShowHelp(true)
	t.editing = true
}

func validateSensitivity(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v < settings.MinSensitivity || v > settings.MaxSensitivity {
		return fmt.Errorf("must be between -1 and 1")
	}
	return nil
}

func (t MouseTab) updateEditing(msg tea.Msg) (MouseTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			t.editing = false
			t.form = nil
			return t, nil
		}
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		v, _ := strconv.ParseFloat(strings.TrimSpace(t.fields.sensitivity), 64)
		t.percent = settings.SensitivityToPercent(v)
		t.noAccel = t.fields.noAccel
		t.editing = false
		t.form = nil
		t.fields = nil
		return t, t.save()
	}
	return t, cmd
}

// View implements tea.Model.
func (t MouseTab) View() string {
	if t.width == 0 || t.height == 0 {
		return ""
	}
	if t.editing {
		return lipgloss.NewStyle().Width(t.width).Height(t.height).Padding(1, 2).Render(t.form.View())
	}

	m := t.current()
	barWidth := max(min(t.width-24, 60), 10)
	filled := int(math.Round(t.percent / 100 * float64(barWidth)))
	bar := okStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", barWidth-filled))

	accel := "on"
	if m.ForceNoAccel {
		accel = "off (force_no_accel)"
	}

	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render("Mouse settings"),
		"",
		fmt.Sprintf("Sensitivity   %.2f", m.Sensitivity),
		"Slow " + bar + " Fast",
		"",
		"Acceleration  " + accel,
	}, "\n")

	return lipgloss.NewStyle().Width(t.width).Height(t.height).Padding(1, 2).Render(body)
}
