package canvas

import "math"

// Point is a position in canvas space.
type Point struct {
	X float64
	Y float64
}

// DragState is the state of a DragSession.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragSession tracks one pointer interaction with a monitor box. The
// transform is frozen for the lifetime of the session so that moves are
// applied in a stable coordinate space.
type DragSession struct {
	state     DragState
	index     int
	box       Box
	frozen    Transform
	last      Point
	travelled float64
	threshold float64
}

// NewDragSession returns an idle session using the given movement threshold.
func NewDragSession(threshold float64) *DragSession {
	return &DragSession{index: -1, threshold: threshold}
}

// State returns the current state.
func (d *DragSession) State() DragState { return d.state }

// Index returns the monitor being dragged, or -1 when idle.
func (d *DragSession) Index() int {
	if d.state != Dragging {
		return -1
	}
	return d.index
}

// Box returns the dragged monitor's current visual box.
func (d *DragSession) Box() Box { return d.box }

// Moved reports whether cumulative pointer travel has exceeded the threshold.
func (d *DragSession) Moved() bool { return d.travelled > d.threshold }

// Begin starts dragging monitor index from box. Anchored monitors are refused
// and leave the session idle.
func (d *DragSession) Begin(index int, anchored bool, box Box, t Transform, at Point) bool {
	if d.state == Dragging || anchored {
		return false
	}
	d.state = Dragging
	d.index = index
	d.box = box
	d.frozen = t
	d.last = at
	d.travelled = 0
	return true
}

// Move shifts the box by the pointer delta since the last event.
func (d *DragSession) Move(at Point) {
	if d.state != Dragging {
		return
	}
	dx := at.X - d.last.X
	dy := at.Y - d.last.Y
	d.box.X += dx
	d.box.Y += dy
	d.travelled += math.Abs(dx) + math.Abs(dy)
	d.last = at
}

// End finishes the session. When the threshold was exceeded it returns the
// real position under the box origin and committed=true; otherwise the
// interaction was a click.
func (d *DragSession) End() (index, x, y int, committed bool) {
	if d.state != Dragging {
		return -1, 0, 0, false
	}
	index = d.index
	committed = d.Moved()
	if committed {
		x, y = d.frozen.Inverse(Point{X: d.box.X, Y: d.box.Y})
	}
	d.state = Idle
	d.index = -1
	d.travelled = 0
	return index, x, y, committed
}

// Cancel abandons the session without a commit.
func (d *DragSession) Cancel() {
	d.state = Idle
	d.index = -1
	d.travelled = 0
}
