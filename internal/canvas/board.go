package canvas

import (
	"fmt"

	"github.com/1broseidon/hyprconf/internal/topology"
)

// Committer persists a monitor whose position or mode changed on the board.
type Committer interface {
	CommitMonitor(m topology.Monitor) error
}

// ReleaseKind describes what a pointer release did.
type ReleaseKind int

const (
	ReleaseNone ReleaseKind = iota
	ReleaseClick
	ReleaseCommit
)

// Release is the outcome of PointerUp.
type Release struct {
	Kind    ReleaseKind
	Index   int
	Monitor topology.Monitor
	Err     error
}

// Board is the interactive arrangement of monitors on a canvas. All methods
// are meant to be called from a single UI event loop.
type Board struct {
	params    Params
	monitors  []topology.Monitor
	transform Transform
	boxes     []Box
	drag      *DragSession
	pressed   int
	selected  int
	committer Committer
}

// NewBoard lays out monitors using params. committer may be nil.
func NewBoard(monitors []topology.Monitor, params Params, committer Committer) *Board {
	b := &Board{
		params:    params,
		drag:      NewDragSession(params.DragThreshold),
		committer: committer,
	}
	b.Reload(monitors)
	return b
}

// Reload replaces the topology, recomputes the transform and clears any
// in-flight interaction.
func (b *Board) Reload(monitors []topology.Monitor) {
	b.monitors = make([]topology.Monitor, len(monitors))
	for i, m := range monitors {
		b.monitors[i] = m.Clone()
	}
	b.transform = Compute(b.monitors, b.params)
	b.boxes = make([]Box, len(b.monitors))
	for i, m := range b.monitors {
		b.boxes[i] = b.transform.BoxFor(m)
	}
	b.drag.Cancel()
	b.pressed = -1
	b.selected = -1
}

// Transform returns the transform in effect since the last Reload.
func (b *Board) Transform() Transform { return b.transform }

// Monitors returns the board's in-memory topology.
func (b *Board) Monitors() []topology.Monitor { return b.monitors }

// Boxes returns the current visual boxes, including an in-progress drag.
func (b *Board) Boxes() []Box { return b.boxes }

// Selected returns the monitor whose detail view is open, or -1.
func (b *Board) Selected() int { return b.selected }

// Dragging returns the monitor being dragged, or -1.
func (b *Board) Dragging() int { return b.drag.Index() }

// Select opens the detail view for index, or closes it when index is -1.
func (b *Board) Select(index int) {
	if index < -1 || index >= len(b.monitors) {
		return
	}
	b.selected = index
}

// HitTest returns the topmost monitor under p, or -1.
func (b *Board) HitTest(p Point) int {
	for i := len(b.boxes) - 1; i >= 0; i-- {
		if b.boxes[i].Contains(p) {
			return i
		}
	}
	return -1
}

// PointerDown starts an interaction with the monitor under p.
func (b *Board) PointerDown(p Point) {
	if b.drag.State() == Dragging {
		return
	}
	b.pressed = b.HitTest(p)
	if b.pressed < 0 {
		return
	}
	m := b.monitors[b.pressed]
	b.drag.Begin(b.pressed, m.IsAnchor(), b.boxes[b.pressed], b.transform, p)
}

// PointerMove drags the pressed monitor, if any.
func (b *Board) PointerMove(p Point) {
	i := b.drag.Index()
	if i < 0 {
		return
	}
	b.drag.Move(p)
	b.boxes[i] = b.drag.Box()
}

// PointerUp ends the interaction. A drag past the threshold moves the monitor
// and hands it to the committer; anything else toggles the detail view.
func (b *Board) PointerUp(p Point) Release {
	pressed := b.pressed
	b.pressed = -1

	if b.drag.State() == Dragging {
		b.PointerMove(p)
		index, x, y, committed := b.drag.End()
		if committed {
			return b.commitPosition(index, x, y)
		}
		b.boxes[index] = b.transform.BoxFor(b.monitors[index])
	}

	if pressed < 0 {
		return Release{Kind: ReleaseNone, Index: -1}
	}
	if b.selected == pressed {
		b.selected = -1
	} else {
		b.selected = pressed
	}
	return Release{Kind: ReleaseClick, Index: pressed, Monitor: b.monitors[pressed]}
}

func (b *Board) commitPosition(index, x, y int) Release {
	m := &b.monitors[index]
	m.X, m.Y = x, y
	b.boxes[index] = b.transform.BoxFor(*m)
	return b.commit(index)
}

// ApplyMode changes a monitor's resolution and refresh rate and commits it.
func (b *Board) ApplyMode(index int, resolution string, rate float64) Release {
	if index < 0 || index >= len(b.monitors) {
		return Release{Kind: ReleaseNone, Index: -1, Err: fmt.Errorf("monitor index %d out of range", index)}
	}
	m := &b.monitors[index]
	m.Resolution = resolution
	m.RefreshRate = rate
	b.boxes[index] = b.transform.BoxFor(*m)
	return b.commit(index)
}

func (b *Board) commit(index int) Release {
	r := Release{Kind: ReleaseCommit, Index: index, Monitor: b.monitors[index].Clone()}
	if b.committer != nil {
		r.Err = b.committer.CommitMonitor(r.Monitor)
	}
	return r
}

// Positions describes every monitor's real position, one line each.
func (b *Board) Positions() []string {
	out := make([]string, 0, len(b.monitors))
	for _, m := range b.monitors {
		line := fmt.Sprintf("%s: %s", m.Name, m.Position())
		if m.IsAnchor() {
			line += " [PRIMARY]"
		}
		out = append(out, line)
	}
	return out
}
