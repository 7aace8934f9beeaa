package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/hyprconf/internal/canvas"
	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/settings"
	"github.com/1broseidon/hyprconf/internal/topology"
)

// Real-space padding around the layout when fitted into the terminal.
const cellPadding = 200.0

// Rows reserved under the canvas for the detail panel.
const detailHeight = 3

// MonitorsTab arranges monitors on a character-cell canvas. Canvas X is one
// unit per column and canvas Y two units per row, so terminal cells (about
// twice as tall as wide) keep monitor proportions.
type MonitorsTab struct {
	svc    *settings.Service
	logger *slog.Logger

	board   *canvas.Board
	loadErr error

	width  int
	height int

	editing bool
	form    *huh.Form
	fields  *modeFields
}

// modeFields is bound to the mode form. It lives on the heap so the binding
// survives the tab being copied through Update.
type modeFields struct {
	resolution string
	rate       float64
}

// NewMonitorsTab reads the topology and lays it out.
func NewMonitorsTab(svc *settings.Service, logger *slog.Logger) MonitorsTab {
	t := MonitorsTab{svc: svc, logger: logger}
	monitors, err := svc.Monitors(context.Background())
	t.loadErr = err
	t.board = canvas.NewBoard(monitors, fitParams(monitors, 80, 20), svc)
	return t
}

// fitParams scales the layout so its padded bounding box fills cols x rows.
func fitParams(monitors []topology.Monitor, cols, rows int) canvas.Params {
	cols = max(cols, 1)
	rows = max(rows, 1)
	w, h := layoutExtent(monitors)
	scale := math.Min(float64(cols)/(w+2*cellPadding), float64(2*rows)/(h+2*cellPadding))
	return canvas.Params{
		Padding:       cellPadding,
		MinWidth:      float64(cols) / scale,
		MinHeight:     float64(2*rows) / scale,
		OverallScale:  scale,
		MaxZoom:       scale,
		DragThreshold: 0.5,
	}
}

func layoutExtent(monitors []topology.Monitor) (float64, float64) {
	if len(monitors) == 0 {
		return canvas.FallbackWidth, canvas.FallbackHeight
	}
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for _, m := range monitors {
		w, h := canvas.Dimensions(m.Resolution)
		minX, maxX = min(minX, m.X), max(maxX, m.X+w)
		minY, maxY = min(minY, m.Y), max(maxY, m.Y+h)
	}
	return float64(max(maxX-minX, 1)), float64(max(maxY-minY, 1))
}

func (t MonitorsTab) canvasSize() (int, int) {
	return max(t.width, 1), max(t.height-1-detailHeight, 1)
}

// relayout rebuilds the board for the current size from its in-memory
// topology, keeping the selection.
func (t *MonitorsTab) relayout(monitors []topology.Monitor) {
	selected := t.board.Selected()
	cols, rows := t.canvasSize()
	t.board = canvas.NewBoard(monitors, fitParams(monitors, cols, rows), t.svc)
	if selected < len(monitors) {
		t.board.Select(selected)
	}
}

// Capturing reports whether the tab wants every key, including quit keys.
func (t MonitorsTab) Capturing() bool { return t.editing }

// Update handles messages for the monitors tab.
func (t MonitorsTab) Update(msg tea.Msg) (MonitorsTab, tea.Cmd) {
	if t.editing {
		return t.updateEditing(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		t.relayout(t.board.Monitors())
		return t, nil

	case tea.MouseMsg:
		return t.updateMouse(msg)

	case tea.KeyMsg:
		n := len(t.board.Monitors())
		switch msg.String() {
		case "r":
			monitors, err := t.svc.Monitors(context.Background())
			t.loadErr = err
			t.relayout(monitors)
			return t, setStatus("reloaded monitors", err)
		case "esc":
			t.board.Select(-1)
		case "right", "l":
			if n > 0 {
				t.board.Select((t.board.Selected() + 1) % n)
			}
		case "left", "h":
			if n > 0 {
				t.board.Select((t.board.Selected() - 1 + n) % n)
			}
		case "e", "enter":
			if t.board.Selected() >= 0 {
				t.startEditing()
				return t, t.form.Init()
			}
		}
	}
	return t, nil
}

// cellPoint maps a content-relative cell to the canvas point at its center.
func cellPoint(col, row int) canvas.Point {
	return canvas.Point{X: float64(col) + 0.5, Y: float64(2*row) + 1}
}

func (t MonitorsTab) updateMouse(msg tea.MouseMsg) (MonitorsTab, tea.Cmd) {
	// Row 0 of the tab is the title line.
	p := cellPoint(msg.X, msg.Y-1)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		t.board.PointerDown(p)
	case msg.Action == tea.MouseActionMotion:
		t.board.PointerMove(p)
	case msg.Action == tea.MouseActionRelease:
		r := t.board.PointerUp(p)
		if r.Kind == canvas.ReleaseCommit {
			return t, t.committed(r)
		}
	}
	return t, nil
}

func (t MonitorsTab) committed(r canvas.Release) tea.Cmd {
	t.logger.Info("monitor positions", "positions", t.board.Positions())
	m := r.Monitor
	return setStatus(fmt.Sprintf("%s → %s@%sHz at %s", m.Name, m.Resolution, catalog.FormatRate(m.RefreshRate), m.Position()), r.Err)
}

func (t *MonitorsTab) startEditing() {
	m := t.board.Monitors()[t.board.Selected()]
	fields := &modeFields{resolution: m.Resolution, rate: m.RefreshRate}
	t.fields = fields

	resolutions := m.UniqueResolutions()
	if len(resolutions) == 0 {
		resolutions = []string{m.Resolution}
	}
	resOpts := make([]huh.Option[string], 0, len(resolutions))
	for _, r := range resolutions {
		resOpts = append(resOpts, huh.NewOption(r, r))
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("resolution").
				Title("Resolution · "+m.Name).
				Options(resOpts...).
				Value(&fields.resolution),
			huh.NewSelect[float64]().
				Key("refresh").
				Title("Refresh rate").
				OptionsFunc(func() []huh.Option[float64] {
					return refreshOptions(m, fields.resolution)
				}, &fields.resolution).
				Value(&fields.rate),
		),
	).WithWidth(max(t.width-4, 40)).WithShowHelp(true)
	t.editing = true
}

func refreshOptions(m topology.Monitor, resolution string) []huh.Option[float64] {
	rates := m.RefreshRates(resolution)
	if len(rates) == 0 {
		rates = []float64{m.RefreshRate}
	}
	opts := make([]huh.Option[float64], 0, len(rates))
	for _, r := range rates {
		opts = append(opts, huh.NewOption(catalog.FormatRefreshLabel(r)+" Hz", r))
	}
	return opts
}

func (t MonitorsTab) updateEditing(msg tea.Msg) (MonitorsTab, tea.Cmd) {
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
		t.editing = false
		t.form = nil
		r := t.board.ApplyMode(t.board.Selected(), t.fields.resolution, t.fields.rate)
		t.fields = nil
		return t, t.committed(r)
	}
	return t, cmd
}

// View implements tea.Model.
func (t MonitorsTab) View() string {
	if t.width == 0 || t.height == 0 {
		return ""
	}
	if t.editing {
		return lipgloss.NewStyle().Width(t.width).Height(t.height).Padding(1, 2).Render(t.form.View())
	}

	title := lipgloss.NewStyle().Bold(true).Render("Monitor layout")
	if t.loadErr != nil {
		title += "  " + errStyle.Render("topology unavailable: "+t.loadErr.Error())
	}

	cols, rows := t.canvasSize()
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(t.width).Render(title),
		renderBoard(t.board, cols, rows),
		t.renderDetail(),
	)
}

func (t MonitorsTab) renderDetail() string {
	style := lipgloss.NewStyle().Width(t.width).Height(detailHeight).Padding(0, 1)
	monitors := t.board.Monitors()
	sel := t.board.Selected()
	if sel < 0 {
		if len(monitors) == 0 {
			return style.Render(mutedStyle.Render("No monitors reported. Press r to reload."))
		}
		return style.Render(mutedStyle.Render(strings.Join(t.board.Positions(), "   ")))
	}

	m := monitors[sel]
	head := fmt.Sprintf("%s (ID %d)  %s@%sHz  at %s", m.Name, m.ID, m.Resolution, catalog.FormatRefreshLabel(m.RefreshRate), m.Position())
	if m.IsAnchor() {
		head += "  [PRIMARY]"
	}
	sub := fmt.Sprintf("%d modes available · e: change mode · esc: close", len(m.Modes))
	return style.Render(lipgloss.NewStyle().Bold(true).Render(head) + "\n" + mutedStyle.Render(sub))
}

// Box fill styles, indexed by boxStyle.
const (
	styleNone = iota
	styleBox
	styleAnchor
	styleSelected
	styleDragging
)

var boxStyles = map[int]lipgloss.Style{
	styleBox:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("24")),
	styleAnchor:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("60")),
	styleSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Bold(true),
	styleDragging: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("166")).Bold(true),
}

type gridCell struct {
	r     rune
	style int
}

// renderBoard rasterizes the board's boxes into cols x rows cells. A cell
// belongs to a box when its center does; later boxes paint over earlier ones.
func renderBoard(b *canvas.Board, cols, rows int) string {
	grid := make([][]gridCell, rows)
	for r := range grid {
		grid[r] = make([]gridCell, cols)
		for c := range grid[r] {
			grid[r][c] = gridCell{r: ' '}
		}
	}

	monitors := b.Monitors()
	for i, box := range b.Boxes() {
		style := styleBox
		switch {
		case i == b.Dragging():
			style = styleDragging
		case i == b.Selected():
			style = styleSelected
		case monitors[i].IsAnchor():
			style = styleAnchor
		}

		top, left, bottom, right := rows, cols, -1, -1
		for r := max(int(box.Y/2)-1, 0); r < min(int((box.Y+box.Height)/2)+1, rows); r++ {
			for c := max(int(box.X)-1, 0); c < min(int(box.X+box.Width)+1, cols); c++ {
				if !box.Contains(cellPoint(c, r)) {
					continue
				}
				grid[r][c] = gridCell{r: ' ', style: style}
				top, bottom = min(top, r), max(bottom, r)
				left, right = min(left, c), max(right, c)
			}
		}
		if bottom < 0 {
			continue
		}

		m := monitors[i]
		labels := []string{m.Name, m.Resolution, m.Position()}
		for j, label := range labels {
			r := top + j
			if r > bottom {
				break
			}
			width := right - left + 1
			runes := []rune(label)
			if len(runes) > width {
				runes = runes[:width]
			}
			start := left + (width-len(runes))/2
			for k, ch := range runes {
				grid[r][start+k].r = ch
			}
		}
	}

	lines := make([]string, rows)
	for r, row := range grid {
		var sb strings.Builder
		runStart := 0
		for c := 1; c <= len(row); c++ {
			if c < len(row) && row[c].style == row[runStart].style {
				continue
			}
			text := make([]rune, 0, c-runStart)
			for _, cell := range row[runStart:c] {
				text = append(text, cell.r)
			}
			if style, ok := boxStyles[row[runStart].style]; ok {
				sb.WriteString(style.Render(string(text)))
			} else {
				sb.WriteString(string(text))
			}
			runStart = c
		}
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}
